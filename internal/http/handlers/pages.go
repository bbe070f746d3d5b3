package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oakinvest/oak-backend/internal/flash"
	"github.com/oakinvest/oak-backend/internal/middleware"
)

// PageHandler renders the public forms and the protected dashboards.
type PageHandler struct{}

// NewPageHandler constructs the handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Register attaches page routes. The session gate runs on both dashboards;
// the admin gate only on the admin one, strictly after the session gate.
func (h *PageHandler) Register(r gin.IRouter, session, admin gin.HandlerFunc) {
	r.GET("/", h.handleRoot)
	r.GET("/login", h.handleLoginForm)
	r.GET("/signup", h.handleSignupForm)
	r.GET("/dashboard", session, h.handleDashboard)
	r.GET("/adminDashboard", session, admin, h.handleAdminDashboard)
}

func (h *PageHandler) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "OAK Investment Backend API is running...")
}

func (h *PageHandler) handleLoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"messages": flash.Take(c),
	})
}

func (h *PageHandler) handleSignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"messages": flash.Take(c),
	})
}

func (h *PageHandler) handleDashboard(c *gin.Context) {
	user, _ := middleware.Principal(c)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"user":     user,
		"messages": flash.Take(c),
	})
}

func (h *PageHandler) handleAdminDashboard(c *gin.Context) {
	user, _ := middleware.Principal(c)
	c.HTML(http.StatusOK, "adminDashboard.html", gin.H{
		"user":     user,
		"messages": flash.Take(c),
	})
}
