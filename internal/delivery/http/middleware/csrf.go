package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"go-jobboard-gateway/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the header that must echo the token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	CSRFTokenExpiry = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. The gateway
// session rides in a cookie, so every state-changing request must echo the
// csrf_token cookie in the X-CSRF-Token header. Cross-origin pages cannot
// read the cookie, so they cannot forge the header.
//
// Public auth routes are exempt: the caller has no session yet and those
// endpoints are covered by rate limiting instead.
func CSRFMiddleware() gin.HandlerFunc {
	csrfExemptPaths := map[string]bool{
		"/v1/auth/login":           true,
		"/v1/auth/register":        true,
		"/v1/auth/verify-email":    true,
		"/v1/auth/resend-otp":      true,
		"/v1/auth/forgot-password": true,
		"/v1/auth/reset-password":  true,
		"/v1/health":               true,
	}

	return func(c *gin.Context) {
		if csrfExemptPaths[c.Request.URL.Path] {
			// Still seed the cookie for future requests, but don't validate
			if cookie, err := c.Cookie(CSRFTokenCookieName); err != nil || cookie == "" {
				if newToken, err := generateCSRFToken(); err == nil {
					setCSRFCookie(c, newToken)
				}
			}
			c.Next()
			return
		}

		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			setCSRFCookie(c, newToken)
			csrfCookie = newToken
		}

		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token", nil)
			c.Abort()
			return
		}
		if headerToken != csrfCookie {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func setCSRFCookie(c *gin.Context, token string) {
	// SameSite=Lax sends the cookie on top-level navigations but not on
	// cross-site subrequests. HttpOnly stays off so the frontend can read
	// the token to echo it.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		CSRFTokenCookieName,
		token,
		int(CSRFTokenExpiry.Seconds()),
		"/",
		"",
		true,
		false,
	)
}
