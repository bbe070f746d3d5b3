package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/oakinvest/oak-backend/internal/auth"
	"github.com/oakinvest/oak-backend/internal/config"
	"github.com/oakinvest/oak-backend/internal/http/handlers"
	"github.com/oakinvest/oak-backend/internal/middleware"
	"github.com/oakinvest/oak-backend/internal/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

// sessionMaxAge bounds the flash-message session cookie, not the token.
const sessionMaxAge = 24 * 60 * 60

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg *config.Config, store storage.UserStore) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))

	sessionStore := cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
	})
	router.Use(sessions.Sessions("oak_session", sessionStore))

	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.TokenTTL())
	sessionGate := middleware.RequireSession(tokens, store)
	adminGate := middleware.RequireAdmin()

	handlers.NewHealthHandler(time.Now()).Register(router)
	handlers.NewAuthHandler(store, tokens, cfg).Register(router)
	handlers.NewPageHandler().Register(router, sessionGate, adminGate)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the configured routes; tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Content-Type", "Accept"}

	allowAll := len(cfg.Server.Origins) == 0
	for _, origin := range cfg.Server.Origins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.Origins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}
