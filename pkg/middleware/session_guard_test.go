package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"smilecare/pkg/utils"
)

func stubDecoder(valid map[string]*utils.SessionClaims) TokenDecoder {
	return func(token string) *utils.SessionClaims {
		return valid[token]
	}
}

func doctorClaims() *utils.SessionClaims {
	return &utils.SessionClaims{Name: "Dr. Ana", Role: "DOCTOR"}
}

func adminClaims() *utils.SessionClaims {
	return &utils.SessionClaims{Name: "Ops", Role: "ADMIN"}
}

func pageRouter(decode TokenDecoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	admin := r.Group("/admin", SessionGuard(decode), PageRole("ADMIN"))
	admin.GET("/services", func(c *gin.Context) { c.String(http.StatusOK, "admin services") })

	dentist := r.Group("/dentist", SessionGuard(decode), PageRole("DOCTOR"))
	dentist.GET("", func(c *gin.Context) { c.String(http.StatusOK, "dentist home") })
	dentist.GET("/patients/:name", func(c *gin.Context) { c.String(http.StatusOK, c.Param("name")) })

	return r
}

func get(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionGuardRedirectsAnonymousToLogin(t *testing.T) {
	r := pageRouter(stubDecoder(nil))

	w := get(r, "/dentist", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=/dentist", w.Header().Get("Location"))
}

func TestSessionGuardTreatsInvalidTokenAsAnonymous(t *testing.T) {
	r := pageRouter(stubDecoder(nil))

	w := get(r, "/admin/services", "garbage")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=/admin/services", w.Header().Get("Location"))
}

func TestSessionGuardEscapesNextQueryValue(t *testing.T) {
	r := pageRouter(stubDecoder(nil))

	w := get(r, "/dentist/patients/a&b", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=/dentist/patients/a%26b", w.Header().Get("Location"))
}

func TestPageRoleRedirectsWrongRoleToLanding(t *testing.T) {
	decode := stubDecoder(map[string]*utils.SessionClaims{"doc": doctorClaims()})
	r := pageRouter(decode)

	w := get(r, "/admin/services", "doc")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestPageRoleAllowsMatchingRole(t *testing.T) {
	decode := stubDecoder(map[string]*utils.SessionClaims{
		"doc":   doctorClaims(),
		"admin": adminClaims(),
	})
	r := pageRouter(decode)

	assert.Equal(t, http.StatusOK, get(r, "/dentist", "doc").Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin/services", "admin").Code)
}

func apiRouter(decode TokenDecoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api", RequireSession(decode), RequireRole("ADMIN"))
	api.GET("/dentists", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	return r
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	r := apiRouter(stubDecoder(nil))

	w := get(r, "/api/dentists", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionRejectsInvalidToken(t *testing.T) {
	r := apiRouter(stubDecoder(nil))

	w := get(r, "/api/dentists", "expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	decode := stubDecoder(map[string]*utils.SessionClaims{"doc": doctorClaims()})
	r := apiRouter(decode)

	w := get(r, "/api/dentists", "doc")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	decode := stubDecoder(map[string]*utils.SessionClaims{"admin": adminClaims()})
	r := apiRouter(decode)

	w := get(r, "/api/dentists", "admin")
	assert.Equal(t, http.StatusOK, w.Code)
}

func optionalRouter(decode TokenDecoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/services", OptionalSession(decode), func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.Role)
	})
	return r
}

func TestOptionalSessionAttachesClaims(t *testing.T) {
	decode := stubDecoder(map[string]*utils.SessionClaims{"admin": adminClaims()})
	r := optionalRouter(decode)

	w := get(r, "/services", "admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ADMIN", w.Body.String())
}

func TestOptionalSessionPassesAnonymousThrough(t *testing.T) {
	r := optionalRouter(stubDecoder(nil))

	w := get(r, "/services", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestOptionalSessionIgnoresBadToken(t *testing.T) {
	r := optionalRouter(stubDecoder(nil))

	w := get(r, "/services", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestClaimsFromContextAfterGuard(t *testing.T) {
	decode := stubDecoder(map[string]*utils.SessionClaims{"doc": doctorClaims()})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireSession(decode), RequireRole("DOCTOR"), func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.String(http.StatusInternalServerError, "no claims")
			return
		}
		c.String(http.StatusOK, claims.Name)
	})

	w := get(r, "/whoami", "doc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dr. Ana", w.Body.String())
}
