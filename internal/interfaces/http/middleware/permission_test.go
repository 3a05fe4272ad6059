package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRolleRouter(handler gin.HandlerFunc, claims *auth.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		if claims != nil {
			c.Set(JWTClaimsKey, claims)
		}
		c.Next()
	}, handler, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireRollen_Allowed(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Rollen: []string{"verkauf"}}
	r := setupRolleRouter(RequireRollen(mitarbeiter.RolleVerkauf), claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRollen_Denied(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Rollen: []string{"fahrer"}}
	r := setupRolleRouter(RequireRollen(mitarbeiter.RolleVerkauf), claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
}

func TestRequireRollen_AdminImpliesAll(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Rollen: []string{"admin"}}
	r := setupRolleRouter(RequireRollen(mitarbeiter.RolleZerleger), claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRollen_AnyOfSeveral(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Rollen: []string{"kontrolle"}}
	r := setupRolleRouter(RequireRollen(mitarbeiter.RolleKommissionierung, mitarbeiter.RolleKontrolle), claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRollen_NoClaims(t *testing.T) {
	r := setupRolleRouter(RequireRollen(mitarbeiter.RolleVerkauf), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHasRolle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(JWTClaimsKey, &auth.Claims{UserID: "u1", Rollen: []string{"lager"}})

	assert.True(t, HasRolle(c, mitarbeiter.RolleLager))
	assert.False(t, HasRolle(c, mitarbeiter.RolleVerkauf))
	assert.True(t, HasAnyRolle(c, mitarbeiter.RolleVerkauf, mitarbeiter.RolleLager))
}

func TestRequireCustom(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Rollen: []string{"fahrer"}}
	check := func(claims *auth.Claims, c *gin.Context) bool {
		return claims.HasRolle("fahrer")
	}
	r := setupRolleRouter(RequireCustom(check), claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
