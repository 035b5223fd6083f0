package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/pkg/auth"
	"github.com/nitt-hospital/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	principalCtx        = "principal"
)

// identityMiddleware reads the access token from the auth cookie and falls
// back to the Authorization header.
func (h *Handler) identityMiddleware(c *gin.Context) {
	token := h.extractToken(c)
	if token == "" {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	principal, err := h.tokenManager.Parse(token)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn("parse access token failed", zap.Error(err))
		}
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	c.Set(principalCtx, principal)
	c.Next()
}

func (h *Handler) requireSubject(subject string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := getPrincipal(c)
		if !ok || principal.Type != subject {
			errorResponse(c, http.StatusForbidden, ForbiddenCode)
			return
		}
		c.Next()
	}
}

func (h *Handler) requirePermission(perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := getPrincipal(c)
		if !ok || principal.Type != auth.SubjectStaff || !domain.Role(principal.Role).Can(perm) {
			errorResponse(c, http.StatusForbidden, ForbiddenCode)
			return
		}
		c.Next()
	}
}

func (h *Handler) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(h.config.Auth.Cookie.Name); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader(authorizationHeader)
	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return ""
	}

	return headerParts[1]
}

func getPrincipal(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(principalCtx)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*auth.Principal)
	return principal, ok
}

func getPrincipalID(c *gin.Context) (uuid.UUID, error) {
	principal, ok := getPrincipal(c)
	if !ok {
		return uuid.Nil, errors.New("principal not found")
	}
	return uuid.Parse(principal.ID)
}

func (h *Handler) setAuthCookie(c *gin.Context, token string, ttl time.Duration) {
	cfg := h.config.Auth.Cookie
	c.SetSameSite(sameSite(cfg.SameSite))
	c.SetCookie(cfg.Name, token, int(ttl.Seconds()), cfg.Path, cfg.Domain, cfg.Secure, true)
}

func (h *Handler) clearAuthCookie(c *gin.Context) {
	cfg := h.config.Auth.Cookie
	c.SetSameSite(sameSite(cfg.SameSite))
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
