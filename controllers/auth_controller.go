package controllers

import (
	"net/http"
	"net/url"

	"jewels-backend/middleware"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthController serves signup, login, logout and the Google OAuth flow.
type AuthController struct {
	auth        *services.AuthService
	frontendURL string
}

func NewAuthController(auth *services.AuthService, frontendURL string) *AuthController {
	return &AuthController{auth: auth, frontendURL: frontendURL}
}

// Signup handles POST /api/auth/signup.
func (ac *AuthController) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}

	user, err := ac.auth.Signup(c.Request.Context(), input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}

	token, user, err := ac.auth.Login(c.Request.Context(), input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"role":         user.Role,
	})
}

// Logout handles POST /api/auth/logout. The presented token is revoked for
// the rest of its lifetime.
func (ac *AuthController) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		apperrors.Respond(c, apperrors.Validation("Invalid Authorization header"))
		return
	}

	if err := ac.auth.Logout(c.Request.Context(), token); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GoogleLogin handles GET /api/auth/google.
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, ac.auth.GoogleAuthURL(state))
}

// GoogleCallback handles GET /api/auth/google/callback. On success the
// browser is sent back to the frontend with the token in the fragment.
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		apperrors.Respond(c, apperrors.Unauthorized("Invalid OAuth state"))
		return
	}
	code := c.Query("code")
	if code == "" {
		apperrors.Respond(c, apperrors.Validation("Missing authorization code"))
		return
	}

	token, user, err := ac.auth.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	zap.L().Info("google login", zap.String("user_id", user.ID.Hex()))

	redirect := ac.frontendURL + "/auth/callback#" + url.Values{
		"access_token": {token},
		"token_type":   {"bearer"},
	}.Encode()
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}
