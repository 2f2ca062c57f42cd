package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/http/response"
	"github.com/yungbote/pactify-backend/internal/platform/ctxutil"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/services"
)

// AccessTokenCookie carries the access token for the server-rendered pages.
const AccessTokenCookie = "access_token"

const SignInPath = "/sign-in"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireAuth guards the JSON API: unresolved identity answers 401.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !am.resolve(c) {
			c.Abort()
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrAuthenticationMissing)
			return
		}
		c.Next()
	}
}

// RequireSession guards the pages: unresolved identity redirects to the sign-in page.
func (am *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !am.resolve(c) {
			target := SignInPath
			if c.Request.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the identity when one resolves and never aborts.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		am.resolve(c)
		c.Next()
	}
}

func (am *AuthMiddleware) resolve(c *gin.Context) bool {
	tokenString := ExtractToken(c)
	if tokenString == "" {
		return false
	}
	ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
	if err != nil {
		am.log.Debug("Token rejected", "path", c.Request.URL.Path, "error", err)
		return false
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return false
	}
	c.Request = c.Request.WithContext(ctx)
	return true
}

// ExtractToken reads the bearer header, then the token query parameter (used by
// EventSource), then the access token cookie.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if qToken := strings.TrimSpace(c.Query("token")); qToken != "" {
		return qToken
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
