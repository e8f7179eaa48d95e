package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return sr, tp
}

func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func newTracedRouter(tp *sdktrace.TracerProvider) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(Tracing(TracingConfig{
		ServiceName: "grocery-test",
		Enabled:     true,
		Provider:    tp,
		SkipPaths:   []string{"/health"},
	}))
	router.Use(SpanErrorMarker())
	return router
}

func TestTracing_Disabled(t *testing.T) {
	sr, tp := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false, Provider: tp}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_SpanPerRoute(t *testing.T) {
	sr, tp := setupTestTracer(t)
	router := newTracedRouter(tp)
	router.GET("/api/v1/orders/:id", SpanAttributes(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/42", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1, "probe paths are skipped")
	assert.Contains(t, spans[0].Name(), "/api/v1/orders/:id")
	assert.NotEmpty(t, attrMap(spans[0])["request_id"].AsString())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestSpanErrorMarker_ClientError(t *testing.T) {
	sr, tp := setupTestTracer(t)
	router := newTracedRouter(tp)
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "Not Found", spans[0].Status().Description)
}

func TestSpanAttributes_AuthenticatedUser(t *testing.T) {
	sr, tp := setupTestTracer(t)
	jwtService := newTestJWTService()
	pair, input := newTestTokenPair(t, jwtService)

	router := newTracedRouter(tp)
	router.GET("/me", JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService}), SpanAttributes(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	attrs := attrMap(spans[0])
	assert.Equal(t, input.UserID.String(), attrs["user_id"].AsString())
	assert.Equal(t, "user", attrs["user.role"].AsString())
}
