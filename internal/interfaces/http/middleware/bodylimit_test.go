package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/auftraege", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	t.Run("payload within limit passes", func(t *testing.T) {
		router := bodyLimitRouter(1024)

		req := httptest.NewRequest("POST", "/auftraege", strings.NewReader(`{"kunde_id":"k1"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared Content-Length over the limit is rejected", func(t *testing.T) {
		router := bodyLimitRouter(100)

		req := httptest.NewRequest("POST", "/auftraege", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	})

	t.Run("GET requests are not limited", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(10))
		router.GET("/artikel", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/artikel", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("streaming body without Content-Length hits MaxBytesReader", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(50))
		router.POST("/auftraege", func(c *gin.Context) {
			buf := make([]byte, 200)
			if _, err := c.Request.Body.Read(buf); err != nil {
				c.String(http.StatusBadRequest, "body too large")
				return
			}
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("POST", "/auftraege", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
