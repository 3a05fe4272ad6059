package middleware

import (
	"net/http"

	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for the role middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, requiredRollen []string)
}

// RequireRolle creates middleware that requires a specific staff role.
// Admin always passes.
func RequireRolle(rolle mitarbeiter.Rolle) gin.HandlerFunc {
	return RequireRollen(rolle)
}

// RequireRollen creates middleware that requires any of the given staff
// roles. A Mitarbeiter with the admin role passes every check.
func RequireRollen(rollen ...mitarbeiter.Rolle) gin.HandlerFunc {
	return RequireRollenWithConfig(PermissionConfig{}, rollen...)
}

// RequireRollenWithConfig creates role middleware with custom config
func RequireRollenWithConfig(cfg PermissionConfig, rollen ...mitarbeiter.Rolle) gin.HandlerFunc {
	required := rollenStrings(rollen)

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRolleDenied(c, cfg, required, "No authentication claims found")
			return
		}

		if !claimsErlauben(claims, required) {
			handleRolleDenied(c, cfg, required, "User lacks required Rolle")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Rolle check passed",
				zap.String("user_id", claims.UserID),
				zap.Strings("required_any", required),
				zap.Strings("user_rollen", claims.Rollen),
			)
		}

		c.Next()
	}
}

// claimsErlauben reports whether the claims satisfy the role requirement.
// Admin implies every role.
func claimsErlauben(claims *auth.Claims, required []string) bool {
	if claims.HasRolle(string(mitarbeiter.RolleAdmin)) {
		return true
	}
	return claims.HasAnyRolle(required...)
}

// rollenStrings converts domain roles to their claim string form
func rollenStrings(rollen []mitarbeiter.Rolle) []string {
	out := make([]string, len(rollen))
	for i, r := range rollen {
		out[i] = string(r)
	}
	return out
}

// handleRolleDenied handles denied access
func handleRolleDenied(c *gin.Context, cfg PermissionConfig, required []string, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, required)
		return
	}

	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		userRollen := []string{}
		if claims != nil {
			userID = claims.UserID
			userRollen = claims.Rollen
		}

		cfg.Logger.Warn("Rolle denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.Strings("required_rollen", required),
			zap.Strings("user_rollen", userRollen),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient Rolle",
		},
	})
}

// HasRolle is a helper function to check a role in handlers.
// Admin implies every role.
func HasRolle(c *gin.Context, rolle mitarbeiter.Rolle) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claimsErlauben(claims, []string{string(rolle)})
}

// HasAnyRolle is a helper function to check if the user has any of the roles
func HasAnyRolle(c *gin.Context, rollen ...mitarbeiter.Rolle) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claimsErlauben(claims, rollenStrings(rollen))
}

// CheckRolleFunc is a function type for custom access checks
type CheckRolleFunc func(claims *auth.Claims, c *gin.Context) bool

// RequireCustom creates middleware with a custom access check. This is
// for checks that cannot be expressed as a plain role list, e.g. "fahrer
// may only read their own tour".
func RequireCustom(checkFunc CheckRolleFunc) gin.HandlerFunc {
	return RequireCustomWithConfig(checkFunc, PermissionConfig{})
}

// RequireCustomWithConfig creates custom access middleware with config
func RequireCustomWithConfig(checkFunc CheckRolleFunc, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRolleDenied(c, cfg, []string{"custom"}, "No authentication claims found")
			return
		}

		if !checkFunc(claims, c) {
			handleRolleDenied(c, cfg, []string{"custom"}, "Custom access check failed")
			return
		}

		c.Next()
	}
}
