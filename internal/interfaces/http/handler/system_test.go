package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSystemRouter(h *SystemHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/system/info", h.GetSystemInfo)
	r.GET("/system/ping", h.Ping)
	return r
}

func TestSystemHandler_Ping(t *testing.T) {
	router := setupSystemRouter(NewSystemHandler(nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/system/ping", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	router := setupSystemRouter(NewSystemHandler(nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/system/info", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), "go_version")
}

func TestSystemHandler_Health_NoDatabase(t *testing.T) {
	router := setupSystemRouter(NewSystemHandler(nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
	assert.Contains(t, w.Body.String(), "not configured")
}
