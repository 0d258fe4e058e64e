package utils

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "smilecare_session"
	SessionLifetime   = 7 * 24 * time.Hour
)

type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func sessionKey() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	return []byte(secret), nil
}

// CreateSessionToken signs a 7-day HS256 token carrying identity and role claims.
func CreateSessionToken(userID uuid.UUID, email, name, role string) (string, error) {
	key, err := sessionKey()
	if err != nil {
		return "", err
	}

	claims := &SessionClaims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// DecodeSessionToken returns the claims for a valid token, or nil on any
// failure (bad signature, malformed, expired). A nil result means "no
// session" and is never surfaced to the caller as an error.
func DecodeSessionToken(tokenString string) *SessionClaims {
	key, err := sessionKey()
	if err != nil {
		return nil
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	return claims
}

// SetSessionCookie stores the token as an HTTP-only, SameSite=Lax cookie
// scoped to the whole site. Secure is enabled in production.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(SessionLifetime.Seconds()), "/", "", isProduction(), true)
}

// ClearSessionCookie overwrites the cookie with an immediately expired value.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", isProduction(), true)
}

func isProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}
