package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/infrastructure/auth"
	"github.com/grocery/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenFor(t *testing.T, jwtService *auth.JWTService, role identity.Role) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      uuid.New(),
		Email:       "someone@example.com",
		Role:        role.String(),
		Permissions: identity.DefaultPermissions[role],
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func setupRouterWithJWT(jwtService *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService}))
	return router
}

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

func TestRequirePermission(t *testing.T) {
	jwtService := newTestJWTService()
	userToken := newTokenFor(t, jwtService, identity.RoleUser)
	adminToken := newTokenFor(t, jwtService, identity.RoleAdmin)

	router := setupRouterWithJWT(jwtService)
	router.GET("/groceries", RequirePermission(identity.PermGroceryRead), okHandler)
	router.POST("/admin/groceries", RequirePermission(identity.PermGroceryCreate), okHandler)
	router.POST("/orders", RequirePermission(identity.PermOrderCreate), okHandler)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"user reads groceries", http.MethodGet, "/groceries", userToken, http.StatusOK},
		{"admin reads groceries", http.MethodGet, "/groceries", adminToken, http.StatusOK},
		{"user cannot create grocery", http.MethodPost, "/admin/groceries", userToken, http.StatusForbidden},
		{"admin creates grocery", http.MethodPost, "/admin/groceries", adminToken, http.StatusOK},
		{"user places order", http.MethodPost, "/orders", userToken, http.StatusOK},
		{"admin cannot place order", http.MethodPost, "/orders", adminToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set(AuthHeaderKey, BearerPrefix+tt.token)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, rec).Code)
			}
		})
	}
}

func TestRequireAnyPermission(t *testing.T) {
	jwtService := newTestJWTService()
	userToken := newTokenFor(t, jwtService, identity.RoleUser)

	router := setupRouterWithJWT(jwtService)
	router.GET("/either", RequireAnyPermission(identity.PermUserDelete, identity.PermOrderCreate), okHandler)
	router.GET("/neither", RequireAnyPermission(identity.PermGroceryCreate, identity.PermUserDelete), okHandler)

	for path, want := range map[string]int{"/either": http.StatusOK, "/neither": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+userToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()

	router := setupRouterWithJWT(jwtService)
	router.GET("/admin/orders", RequirePermission(identity.PermOrderRead), RequireAdmin(), func(c *gin.Context) {
		assert.True(t, IsAdmin(c))
		c.Status(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+newTokenFor(t, jwtService, identity.RoleAdmin))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user with order:read is still rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+newTokenFor(t, jwtService, identity.RoleUser))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "admin")
	})
}

func TestPermissionMiddleware_WithoutClaims(t *testing.T) {
	router := gin.New()
	router.GET("/perm", RequirePermission(identity.PermGroceryRead), okHandler)
	router.GET("/role", RequireAdmin(), okHandler)

	for _, path := range []string{"/perm", "/role"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, rec).Code)
	}
}

func TestHasPermission(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, HasPermission(c, identity.PermOrderRead))
	assert.False(t, IsAdmin(c))

	c.Set(JWTClaimsKey, &auth.Claims{Permissions: []string{identity.PermOrderRead}})
	assert.True(t, HasPermission(c, identity.PermOrderRead))
	assert.False(t, HasPermission(c, identity.PermOrderDelete))
}
