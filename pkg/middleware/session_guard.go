package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"smilecare/pkg/utils"
)

// TokenDecoder turns a raw cookie value into session claims, or nil when the
// token is absent, malformed, tampered with, or expired. Injected explicitly
// so guards and handlers can be tested without ambient state.
type TokenDecoder func(token string) *utils.SessionClaims

const claimsContextKey = "session_claims"

const (
	loginPath   = "/login"
	landingPath = "/admin"
)

// ClaimsFromContext returns the claims attached by a guard, or nil.
func ClaimsFromContext(c *gin.Context) *utils.SessionClaims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.SessionClaims)
	return claims
}

// SessionGuard protects a page area. Requests without a decodable session
// cookie are redirected to the login page with the original path in the
// `next` query parameter; an invalid or expired token is treated exactly
// like an absent one.
func SessionGuard(decode TokenDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		claims := decode(token)
		if claims == nil {
			redirectToLogin(c)
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// PageRole gates a sub-area to one role. The visitor is authenticated at this
// point, so a mismatch sends them to the admin landing page, not to login.
func PageRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Role != role {
			c.Redirect(http.StatusFound, landingPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalSession attaches claims when a decodable session cookie is present
// and lets the request through either way. Public routes use it so a
// signed-in caller can unlock extra capability without gating the route.
func OptionalSession(decode TokenDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(utils.SessionCookieName); err == nil && token != "" {
			if claims := decode(token); claims != nil {
				c.Set(claimsContextKey, claims)
			}
		}
		c.Next()
	}
}

// RequireSession is the API variant of SessionGuard: missing or invalid
// sessions get a 401 JSON body instead of a redirect.
func RequireSession(decode TokenDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		claims := decode(token)
		if claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not in the allowed
// set with a 403. Must run after RequireSession.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, loginPath+"?next="+queryEscapePath(c.Request.URL.Path))
	c.Abort()
}

// queryEscapePath escapes a path for use as a query value. Slashes are legal
// inside a query component (RFC 3986), so they stay readable.
func queryEscapePath(path string) string {
	return strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
}
