package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "yes")
		c.Next()
	})

	g := NewDomainGroup("test", "/test")
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "yes", w.Header().Get("X-Api"))

	// Router middleware stays off unversioned routes
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Empty(t, serve(engine, http.MethodGet, "/outside").Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("orders", "/orders")
		assert.Equal(t, "orders", g.Name())
		assert.Equal(t, "/orders", g.Prefix())
	})

	t.Run("every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g := NewDomainGroup("items", "/items").
			GET("", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id", ok).
			DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for method, path := range map[string]string{
			http.MethodGet:    "/api/v1/items",
			http.MethodPost:   "/api/v1/items",
			http.MethodPut:    "/api/v1/items/1",
			http.MethodPatch:  "/api/v1/items/1",
			http.MethodDelete: "/api/v1/items/1",
		} {
			w := serve(engine, method, path)
			assert.Equal(t, http.StatusOK, w.Code, method)
			assert.Equal(t, method, w.Body.String())
		}
	})

	t.Run("subgroups inherit middleware", func(t *testing.T) {
		engine := gin.New()
		var seen []string
		mark := func(name string) gin.HandlerFunc {
			return func(c *gin.Context) {
				seen = append(seen, name)
				c.Next()
			}
		}

		admin := NewDomainGroup("admin", "/admin").Use(mark("admin"))
		admin.Group("admin-orders", "/orders").Use(mark("orders")).
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
		admin.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/admin/orders")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"admin", "orders"}, seen)
	})

	t.Run("sibling groups keep their own middleware", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)
		deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }

		r.Register(NewDomainGroup("private", "/private").Use(deny).GET("", ok)).
			Register(NewDomainGroup("public", "/public").GET("", ok)).
			Setup()

		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/private").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/public").Code)
	})
}
