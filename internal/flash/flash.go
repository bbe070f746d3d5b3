// Package flash carries one-shot notices across redirects on the signed
// session cookie. A message queued during one request is rendered by the
// next page load and cleared in the same read.
package flash

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	errorKey   = "flash_error"
	successKey = "flash_success"
)

// Messages holds the notices pending for the next rendered page.
type Messages struct {
	Error   []string
	Success []string
}

// Error queues an error notice.
func Error(c *gin.Context, msg string) {
	add(c, errorKey, msg)
}

// Success queues a success notice.
func Success(c *gin.Context, msg string) {
	add(c, successKey, msg)
}

// Take drains all queued notices; reading clears them from the session.
func Take(c *gin.Context) Messages {
	session := sessions.Default(c)
	m := Messages{
		Error:   toStrings(session.Flashes(errorKey)),
		Success: toStrings(session.Flashes(successKey)),
	}
	_ = session.Save()
	return m
}

func add(c *gin.Context, key, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, key)
	_ = session.Save()
}

func toStrings(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
