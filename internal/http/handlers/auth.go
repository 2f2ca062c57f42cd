package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pactify-backend/internal/http/middleware"
	"github.com/yungbote/pactify-backend/internal/http/response"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/services"
)

// CookieConfig controls the access token cookie used by the pages.
type CookieConfig struct {
	Secure bool
	Domain string
}

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService, cookies: cookies}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		if ae, ok := apierr.As(err); ok {
			response.RespondError(c, ae.Status, ae.Code, ae)
			return
		}
		ah.log.Error("Register failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "registration_failed", errors.New("registration failed"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ah.respondAuthFailure(c, err, "invalid_credentials")
		return
	}
	ah.setAccessCookie(c, accessToken)
	ah.respondTokens(c, accessToken, refreshToken)
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// An empty body falls back to the refresh token carried on the request context.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	accessToken, refreshToken, err := ah.authService.RefreshUser(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ah.respondAuthFailure(c, err, "refresh_failed")
		return
	}
	ah.setAccessCookie(c, accessToken)
	ah.respondTokens(c, accessToken, refreshToken)
}

// Logout never fails from the caller's point of view.
func (ah *AuthHandler) Logout(c *gin.Context) {
	ah.signOut(c)
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AuthHandler) signOut(c *gin.Context) {
	if err := ah.authService.LogoutUser(c.Request.Context()); err != nil && !errors.Is(err, services.ErrAuthenticationMissing) {
		ah.log.Warn("Logout failed", "error", err)
	}
	ah.clearAccessCookie(c)
}

func (ah *AuthHandler) respondTokens(c *gin.Context, accessToken, refreshToken string) {
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) respondAuthFailure(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrRefreshTokenInvalid):
		response.RespondError(c, http.StatusUnauthorized, code, err)
	default:
		ah.log.Error("Token issue failed", "code", code, "error", err)
		response.RespondError(c, http.StatusInternalServerError, code, errors.New("could not sign in"))
	}
}

func (ah *AuthHandler) setAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(ah.authService.GetAccessTTL()/time.Second), "/", ah.cookies.Domain, ah.cookies.Secure, true)
}

func (ah *AuthHandler) clearAccessCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", ah.cookies.Domain, ah.cookies.Secure, true)
}
