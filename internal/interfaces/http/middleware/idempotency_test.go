package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fleischhandel/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type failingIdempotencyStore struct{}

func (failingIdempotencyStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("store down")
}

func (failingIdempotencyStore) IsProcessed(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func (failingIdempotencyStore) Close() error { return nil }

func setupIdempotencyRouter(mw gin.HandlerFunc, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auftraege", func(c *gin.Context) {
		if userID != "" {
			c.Set(JWTUserIDKey, userID)
		}
		c.Next()
	}, mw, func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auftraege", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_FirstRequestPasses(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	r := setupIdempotencyRouter(Idempotency(store, time.Hour), "u1")

	w := postWithKey(r, "key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_ReplayRejected(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	r := setupIdempotencyRouter(Idempotency(store, time.Hour), "u1")

	first := postWithKey(r, "key-1")
	assert.Equal(t, http.StatusCreated, first.Code)

	replay := postWithKey(r, "key-1")
	assert.Equal(t, http.StatusConflict, replay.Code)
	assert.Contains(t, replay.Body.String(), "ERR_IDEMPOTENT_REPLAY")
}

func TestIdempotency_DifferentKeysPass(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	r := setupIdempotencyRouter(Idempotency(store, time.Hour), "u1")

	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-1").Code)
	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-2").Code)
}

func TestIdempotency_NoHeaderPasses(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	r := setupIdempotencyRouter(Idempotency(store, time.Hour), "u1")

	assert.Equal(t, http.StatusCreated, postWithKey(r, "").Code)
	assert.Equal(t, http.StatusCreated, postWithKey(r, "").Code)
}

func TestIdempotency_KeysScopedPerUser(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	alice := setupIdempotencyRouter(Idempotency(store, time.Hour), "alice")
	bob := setupIdempotencyRouter(Idempotency(store, time.Hour), "bob")

	assert.Equal(t, http.StatusCreated, postWithKey(alice, "shared-key").Code)
	assert.Equal(t, http.StatusCreated, postWithKey(bob, "shared-key").Code)
	assert.Equal(t, http.StatusConflict, postWithKey(alice, "shared-key").Code)
}

func TestIdempotency_ExpiredKeyAccepted(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	r := setupIdempotencyRouter(Idempotency(store, 10*time.Millisecond), "u1")

	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-1").Code)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-1").Code)
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	r := setupIdempotencyRouter(Idempotency(store, time.Hour), "u1")

	w := postWithKey(r, strings.Repeat("x", MaxIdempotencyKeyLength+1))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_BAD_REQUEST")
}

func TestIdempotency_StoreFailureFailsOpen(t *testing.T) {
	r := setupIdempotencyRouter(Idempotency(failingIdempotencyStore{}, time.Hour), "u1")

	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-1").Code)
	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-1").Code)
}

func TestIdempotency_NilStorePassesThrough(t *testing.T) {
	r := setupIdempotencyRouter(Idempotency(nil, time.Hour), "u1")

	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-1").Code)
	assert.Equal(t, http.StatusCreated, postWithKey(r, "key-1").Code)
}
