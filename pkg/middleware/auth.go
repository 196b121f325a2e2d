package middleware

import (
	"context"
	"strings"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/jwt"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	ContextUserID       = "user_id"
	ContextUserRole     = "user_role"
	ContextTokenID      = "token_id"
	ContextTokenExpires = "token_expires_at"
)

// TokenDenylist reports access tokens revoked before their expiry.
type TokenDenylist interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware requires a valid access token from the accessToken cookie
// or an "Authorization: Bearer" header.
func AuthMiddleware(jwtService *jwt.Service, denylist TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, apperror.Unauthorized("Unauthorized request"))
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			response.Error(c, apperror.Unauthorized("Invalid access token"))
			return
		}

		if denylist != nil {
			revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				response.Error(c, apperror.Internal("Failed to verify session", err))
				return
			}
			if revoked {
				response.Error(c, apperror.Unauthorized("Access token has been revoked"))
				return
			}
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(jwtService *jwt.Service, denylist TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		if denylist != nil {
			if revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID); err != nil || revoked {
				c.Next()
				return
			}
		}

		setIdentity(c, claims)
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserRole, claims.Role)
	c.Set(ContextTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ContextTokenExpires, claims.ExpiresAt.Time)
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// TokenExpiry returns the expiry of the access token used for this request.
func TokenExpiry(c *gin.Context) time.Time {
	if v, ok := c.Get(ContextTokenExpires); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
