package auth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// stateCookieName holds the OAuth state nonce between the consent redirect
// and the provider callback.
const stateCookieName = "oauth_state"

// stateCookieMaxAge bounds how long a pending OAuth round trip stays valid.
const stateCookieMaxAge = 600 // seconds

// Controller handles the authentication HTTP endpoints.
type Controller struct {
	service            *Service
	backend            SessionBackend
	google             GoogleVerifier
	frontendOrigin     string
	frontendFailureURL string
	secureCookies      bool
	logger             *slog.Logger
}

// ControllerConfig carries the Controller dependencies.
type ControllerConfig struct {
	Service            *Service
	Backend            SessionBackend
	Google             GoogleVerifier // nil disables the federated routes
	FrontendOrigin     string
	FrontendFailureURL string
	SecureCookies      bool
	Logger             *slog.Logger
}

// NewController creates the authentication controller.
func NewController(cfg ControllerConfig) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		service:            cfg.Service,
		backend:            cfg.Backend,
		google:             cfg.Google,
		frontendOrigin:     cfg.FrontendOrigin,
		frontendFailureURL: cfg.FrontendFailureURL,
		secureCookies:      cfg.SecureCookies,
		logger:             logger,
	}
}

// RegisterRoutes registers the auth routes on the given group.
func (ac *Controller) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", ac.Register)
	rg.POST("/login", ac.Login)
	rg.POST("/logout", ac.Logout)
	if ac.google != nil {
		rg.GET("/google", ac.GoogleLogin)
		rg.GET("/google/callback", ac.GoogleCallback)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates a new user with password credentials.
func (ac *Controller) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request payload",
			"errors":  err.Error(),
		})
		return
	}

	user, err := ac.service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email is already registered"})
			return
		}
		ac.logger.Error("registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": MsgInternalError})
		return
	}

	ac.logger.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{"message": MsgUserCreated})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login runs the local strategy: credential verification followed by
// session establishment through the active backend.
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request payload",
			"errors":  err.Error(),
		})
		return
	}

	user, err := ac.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			ac.logger.Info("login rejected", "outcome", "invalid_credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"message": MsgInvalidCredentials})
			return
		}
		ac.logger.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": MsgInternalError})
		return
	}

	token, err := ac.backend.Establish(c, user)
	if err != nil {
		ac.logger.Error("session establishment failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": MsgInternalError})
		return
	}

	ac.logger.Info("login succeeded", "user_id", user.ID, "mode", string(ac.backend.Mode()))

	resp := gin.H{
		"message": MsgLoggedIn,
		"user":    user,
	}
	if token != "" {
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

// Logout invalidates the current session artifact. It always reports
// success: logging out without an active session is harmless, and cleanup
// failures are logged rather than surfaced.
func (ac *Controller) Logout(c *gin.Context) {
	if err := ac.backend.Clear(c); err != nil {
		ac.logger.Warn("logout cleanup failed", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgLoggedOut})
}

// GoogleLogin starts the federated flow by redirecting to the provider's
// consent screen with a fresh state nonce bound to a short-lived cookie.
func (ac *Controller) GoogleLogin(c *gin.Context) {
	state, err := GenerateSecret()
	if err != nil {
		ac.logger.Error("failed to generate oauth state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": MsgInternalError})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, stateCookieMaxAge, "/", "", ac.secureCookies, true)
	c.Redirect(http.StatusFound, ac.google.AuthURL(state))
}

// GoogleCallback completes the federated flow. Login only completes when
// the resolved user has a current workspace association; otherwise the
// browser is sent to the frontend failure URL and no session is
// established.
func (ac *Controller) GoogleCallback(c *gin.Context) {
	failure := ac.frontendFailureURL + "?status=failure"

	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != cookieState {
		ac.logger.Info("oauth callback rejected", "outcome", "state_mismatch")
		c.Redirect(http.StatusFound, failure)
		return
	}
	// One-shot nonce: drop it regardless of the outcome below.
	c.SetCookie(stateCookieName, "", -1, "/", "", ac.secureCookies, true)

	if errParam := c.Query("error"); errParam != "" {
		ac.logger.Info("oauth callback rejected", "outcome", "provider_error")
		c.Redirect(http.StatusFound, failure)
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, failure)
		return
	}

	ctx := c.Request.Context()
	oauthToken, err := ac.google.Exchange(ctx, code)
	if err != nil {
		ac.logger.Error("oauth code exchange failed", "error", err)
		c.Redirect(http.StatusFound, failure)
		return
	}

	profile, err := ac.google.Profile(ctx, oauthToken)
	if err != nil {
		ac.logger.Error("oauth profile fetch failed", "error", err)
		c.Redirect(http.StatusFound, failure)
		return
	}

	user, err := ac.service.LoginWithGoogle(profile)
	if err != nil {
		ac.logger.Error("federated login failed", "error", err)
		c.Redirect(http.StatusFound, failure)
		return
	}

	if user.CurrentWorkspaceID == nil {
		ac.logger.Info("federated login incomplete", "user_id", user.ID, "outcome", "workspace_missing")
		c.Redirect(http.StatusFound, failure)
		return
	}

	token, err := ac.backend.Establish(c, user)
	if err != nil {
		ac.logger.Error("session establishment failed", "user_id", user.ID, "error", err)
		c.Redirect(http.StatusFound, failure)
		return
	}

	target := fmt.Sprintf("%s/workspace/%d", ac.frontendOrigin, *user.CurrentWorkspaceID)
	if token != "" {
		// Token mode has no cookie to carry the artifact across the
		// redirect; the SPA reads it from the query and stores it.
		target += "?access_token=" + url.QueryEscape(token)
	}

	ac.logger.Info("login succeeded", "user_id", user.ID, "mode", string(ac.backend.Mode()), "strategy", "google")
	c.Redirect(http.StatusFound, target)
}
