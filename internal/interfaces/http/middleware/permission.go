package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/infrastructure/logger"
	"github.com/grocery/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RequirePermission requires the caller's token to grant permission
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireAnyPermission(permission)
}

// RequireAnyPermission requires at least one of the listed permissions
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthenticated(c)
			return
		}
		if !claims.HasAnyPermission(permissions...) {
			denyPermission(c, claims.UserID, "Permission denied", zap.Strings("required_any", permissions))
			return
		}
		c.Next()
	}
}

// RequireRole requires the caller to hold role
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthenticated(c)
			return
		}
		if claims.Role != role.String() {
			denyPermission(c, claims.UserID, "This operation requires the "+role.String()+" role",
				zap.String("required_role", role.String()),
				zap.String("role", claims.Role))
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireRole for administrators
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}

// HasPermission reports whether the authenticated caller holds permission
func HasPermission(c *gin.Context, permission string) bool {
	claims := GetJWTClaims(c)
	return claims != nil && claims.HasPermission(permission)
}

// IsAdmin reports whether the authenticated caller is an administrator
func IsAdmin(c *gin.Context) bool {
	return GetJWTRole(c) == identity.RoleAdmin.String()
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", c.GetString(logger.GinRequestIDKey)))
}

func denyPermission(c *gin.Context, userID, message string, fields ...zap.Field) {
	logger.FromContext(c.Request.Context()).Warn("permission denied",
		append(fields, zap.String("user_id", userID), zap.String("path", c.Request.URL.Path))...)
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, message, c.GetString(logger.GinRequestIDKey)))
}
