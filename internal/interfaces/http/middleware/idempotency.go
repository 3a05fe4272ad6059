package middleware

import (
	"net/http"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the request header carrying the client key
	IdempotencyKeyHeader = "Idempotency-Key"

	// MaxIdempotencyKeyLength caps the accepted key length
	MaxIdempotencyKeyLength = 128

	// idempotencyKeyPrefix namespaces the keys in the store so they do
	// not collide with event-dedup entries
	idempotencyKeyPrefix = "http:"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	// Store records which keys have been seen
	Store shared.IdempotencyStore
	// TTL is how long a key stays claimed
	TTL time.Duration
	// Logger for middleware logging
	Logger *zap.Logger
}

// Idempotency returns middleware that rejects replays of requests
// carrying an Idempotency-Key header. The key is claimed before the
// handler runs; a second request with the same key inside the TTL is
// answered with 409 and ERR_IDEMPOTENT_REPLAY. Requests without the
// header pass through untouched.
//
// Keys are scoped per authenticated user so two clients cannot block
// each other by picking the same key.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return IdempotencyWithConfig(IdempotencyConfig{Store: store, TTL: ttl})
}

// IdempotencyWithConfig returns idempotency middleware with custom config
func IdempotencyWithConfig(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	return func(c *gin.Context) {
		if cfg.Store == nil {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_BAD_REQUEST",
					"message": "Idempotency-Key exceeds maximum length",
				},
			})
			return
		}

		storeKey := idempotencyKeyPrefix + key
		if userID := GetJWTUserID(c); userID != "" {
			storeKey = idempotencyKeyPrefix + userID + ":" + key
		}

		isNew, err := cfg.Store.MarkProcessed(c.Request.Context(), storeKey, cfg.TTL)
		if err != nil {
			// Store outage must not block order entry; fail open
			if cfg.Logger != nil {
				cfg.Logger.Error("Idempotency store unavailable, skipping replay check",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.Next()
			return
		}

		if !isNew {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Rejected idempotent replay",
					zap.String("idempotency_key", key),
					zap.String("user_id", GetJWTUserID(c)),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_IDEMPOTENT_REPLAY",
					"message": "A request with this Idempotency-Key was already processed",
				},
			})
			return
		}

		c.Next()
	}
}
