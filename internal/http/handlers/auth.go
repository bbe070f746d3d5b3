package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oakinvest/oak-backend/internal/auth"
	"github.com/oakinvest/oak-backend/internal/config"
	"github.com/oakinvest/oak-backend/internal/flash"
	"github.com/oakinvest/oak-backend/internal/logger"
	"github.com/oakinvest/oak-backend/internal/middleware"
	"github.com/oakinvest/oak-backend/internal/models"
	"github.com/oakinvest/oak-backend/internal/models/dto"
	"github.com/oakinvest/oak-backend/internal/storage"
)

// AuthHandler owns the signup, login, and logout flows. Every failure is a
// redirect with a flash message; no raw error reaches the client.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	cfg    *config.Config
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, cfg: cfg}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r gin.IRouter) {
	api := r.Group("/api/auth")
	api.POST("/signup", h.handleSignup)
	api.POST("/login", h.handleLogin)
	r.GET("/logout", h.handleLogout)
}

func (h *AuthHandler) handleSignup(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		rejectSignup(c, "Please fill in all fields.")
		return
	}

	if strings.TrimSpace(form.Username) == "" ||
		strings.TrimSpace(form.Email) == "" ||
		form.Password == "" || form.ConfirmPassword == "" ||
		strings.TrimSpace(form.PhoneForWithdrawal) == "" {
		rejectSignup(c, "Please fill in all fields.")
		return
	}
	if form.Password != form.ConfirmPassword {
		rejectSignup(c, "Passwords do not match.")
		return
	}
	if len(form.Password) < 6 {
		rejectSignup(c, "Password must be at least 6 characters long.")
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(form.Email))
	username := strings.TrimSpace(form.Username)
	phone := strings.TrimSpace(form.PhoneForWithdrawal)

	// Uniqueness pre-checks in messaging order: email, username, phone.
	// The insert below is the authoritative check; these only pick the
	// user-facing reason.
	if taken, err := h.exists(c, func() (models.User, error) { return h.store.FindByEmail(ctx, email) }); err != nil {
		return
	} else if taken {
		rejectSignup(c, "User with that email already exists.")
		return
	}
	if taken, err := h.exists(c, func() (models.User, error) { return h.store.FindByUsername(ctx, username) }); err != nil {
		return
	} else if taken {
		rejectSignup(c, "User with that username already exists.")
		return
	}
	if taken, err := h.exists(c, func() (models.User, error) { return h.store.FindByPhone(ctx, phone) }); err != nil {
		return
	} else if taken {
		rejectSignup(c, "User with that phone number already exists.")
		return
	}

	user, err := models.NewUser(username, email, phone, form.Password)
	if err != nil {
		rejectSignup(c, capitalize(err.Error()))
		return
	}

	if _, err := h.store.CreateUser(ctx, user); err != nil {
		rejectSignup(c, signupConflictMessage(err))
		return
	}

	flash.Success(c, "Sign up successful! Please log in.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) handleLogin(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		rejectLogin(c, "Please fill in all fields.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))
	if email == "" || form.Password == "" {
		rejectLogin(c, "Please fill in all fields.")
		return
	}

	user, err := h.store.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Error().Err(err).Msg("login user lookup failed")
			rejectLogin(c, "An error occurred during login. Please try again.")
			return
		}
		// Unknown email and bad password share one message, so the
		// response never reveals whether an account exists.
		rejectLogin(c, "Invalid Credentials.")
		return
	}

	if !auth.CheckPassword(form.Password, user.PasswordHash) {
		rejectLogin(c, "Invalid Credentials.")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("issue session token failed")
		rejectLogin(c, "An error occurred during login. Please try again.")
		return
	}

	middleware.SetTokenCookie(c, token, h.cfg.TokenTTL(), h.cfg.IsProduction())
	flash.Success(c, "Login successful!")

	if user.IsAdmin {
		c.Redirect(http.StatusSeeOther, "/adminDashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) handleLogout(c *gin.Context) {
	middleware.ClearTokenCookie(c)
	flash.Success(c, "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/login")
}

// exists runs a lookup and folds the result into taken / not-taken. A store
// failure redirects to signup with a generic message and reports err != nil
// so the caller stops.
func (h *AuthHandler) exists(c *gin.Context, find func() (models.User, error)) (bool, error) {
	_, err := find()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	logger.Error().Err(err).Msg("signup uniqueness check failed")
	rejectSignup(c, "An error occurred during sign up. Please try again.")
	return false, err
}

func signupConflictMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrEmailTaken):
		return "User with that email already exists."
	case errors.Is(err, storage.ErrUsernameTaken):
		return "User with that username already exists."
	case errors.Is(err, storage.ErrPhoneTaken):
		return "User with that phone number already exists."
	case errors.Is(err, storage.ErrAlreadyExists):
		return "User already exists."
	default:
		logger.Error().Err(err).Msg("create user failed")
		return "An error occurred during sign up. Please try again."
	}
}

func rejectSignup(c *gin.Context, msg string) {
	flash.Error(c, msg)
	c.Redirect(http.StatusSeeOther, "/signup")
}

func rejectLogin(c *gin.Context, msg string) {
	flash.Error(c, msg)
	c.Redirect(http.StatusSeeOther, "/login")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
