package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-jobboard-gateway/config"
	"go-jobboard-gateway/internal/delivery/http/response"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the HttpOnly cookie carrying the gateway session ID.
const SessionCookieName = "session_id"

// AuthMiddleware resolves the caller's identity. A gateway session cookie is
// preferred; a bearer token issued by the platform API is accepted for
// non-browser clients. Either way the handlers downstream see the same
// context keys, including the platform access token for outbound calls.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, sessionUC domain.SessionUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Gateway session cookie
		if sessionID, err := c.Cookie(SessionCookieName); err == nil && sessionID != "" {
			session, err := sessionUC.Current(c.Request.Context(), sessionID)
			if err == nil {
				c.Set(string(domain.KeySessionID), session.ID)
				c.Set(string(domain.KeyUserID), session.User.ID)
				c.Set(string(domain.KeyUserEmail), session.User.Email)
				c.Set(string(domain.KeyUserRole), string(session.Role))
				c.Set(string(domain.KeyAccessToken), session.AccessToken)
				c.Next()
				return
			}
			// An expired cookie is not fatal if a bearer token is also present.
		}

		// 2. Bearer token from the platform API
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Session cookie or Authorization header required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - Use Secret
				if cfg.PlatformJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but PLATFORM_JWT_SECRET is not configured")
				}
				return []byte(cfg.PlatformJWTSecret), nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - Use JWKS
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		rawRole, _ := claims["role"].(string)
		role := domain.NormalizeRole(rawRole)

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), string(role))
		c.Set(string(domain.KeyAccessToken), tokenString)

		c.Next()
	}
}

// RequireRole guards role-scoped route groups. AuthMiddleware must run first.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := domain.NormalizeRole(c.GetString(string(domain.KeyUserRole)))
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Access denied for this persona", nil)
		c.Abort()
	}
}
