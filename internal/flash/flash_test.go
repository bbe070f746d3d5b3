package flash_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakinvest/oak-backend/internal/flash"
)

func newFlashRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("oak_session", cookie.NewStore([]byte("test-session-secret"))))
	r.POST("/queue", func(c *gin.Context) {
		if msg := c.PostForm("error"); msg != "" {
			flash.Error(c, msg)
		}
		if msg := c.PostForm("success"); msg != "" {
			flash.Success(c, msg)
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/drain", func(c *gin.Context) {
		c.JSON(http.StatusOK, flash.Take(c))
	})
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFlashSurvivesOneRequest(t *testing.T) {
	r := newFlashRouter()

	rec := do(t, r, http.MethodPost, "/queue", url.Values{
		"error": {"Invalid Credentials."}, "success": {"Welcome back!"},
	}, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "queueing a flash must set the session cookie")

	rec = do(t, r, http.MethodGet, "/drain", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Error":["Invalid Credentials."],"Success":["Welcome back!"]}`, rec.Body.String())
}

func TestFlashIsOneShot(t *testing.T) {
	r := newFlashRouter()

	rec := do(t, r, http.MethodPost, "/queue", url.Values{"error": {"oops"}}, nil)
	cookies := rec.Result().Cookies()

	first := do(t, r, http.MethodGet, "/drain", nil, cookies)
	assert.JSONEq(t, `{"Error":["oops"],"Success":[]}`, first.Body.String())

	// Draining rewrites the session cookie; the second read uses it.
	second := do(t, r, http.MethodGet, "/drain", nil, first.Result().Cookies())
	assert.JSONEq(t, `{"Error":[],"Success":[]}`, second.Body.String())
}

func TestFlashEmptyWithoutQueue(t *testing.T) {
	r := newFlashRouter()

	rec := do(t, r, http.MethodGet, "/drain", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Error":[],"Success":[]}`, rec.Body.String())
}

func TestFlashMessagesQueueInOrder(t *testing.T) {
	r := newFlashRouter()

	rec := do(t, r, http.MethodPost, "/queue", url.Values{"error": {"first"}}, nil)
	cookies := rec.Result().Cookies()
	rec = do(t, r, http.MethodPost, "/queue", url.Values{"error": {"second"}}, cookies)
	cookies = rec.Result().Cookies()

	rec = do(t, r, http.MethodGet, "/drain", nil, cookies)
	assert.JSONEq(t, `{"Error":["first","second"],"Success":[]}`, rec.Body.String())
}
