package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/grocery/backend/internal/interfaces/http/dto"
	"github.com/grocery/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase drives a single handler with one request
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           any
	Headers        map[string]string
	ExpectedStatus int
	// ExpectedCode is the envelope error code; empty expects success
	ExpectedCode string
	Setup        func(t *testing.T, tc *TestContext)
	Validate     func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs each case as a subtest
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase calls handler directly with the case's request
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) {
	t.Helper()

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}
	req := NewJSONRequest(t, method, path, tc.Body)
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	testCtx := NewTestContextWithRequest(t, req)
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(testCtx.Context)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, testCtx.ResponseCode(), "Unexpected status code")
	}
	if tc.ExpectedCode != "" {
		AssertErrorResponse(t, testCtx.ResponseBody(), tc.ExpectedCode)
	}
	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
}

// NewJSONRequest builds a request with body encoded as JSON; a nil body sends none
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	req := httptest.NewRequest(method, path, ToJSONReader(t, body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Do serves a JSON request through h, authenticated with token when non-empty
func Do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := NewJSONRequest(t, method, path, body)
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// envelope mirrors dto.Response with the payload left typed
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

// DecodeData asserts a success envelope and returns its data as T
func DecodeData[T any](t *testing.T, body []byte) T {
	t.Helper()

	var resp envelope[T]
	require.NoError(t, json.Unmarshal(body, &resp), "Failed to parse response: %s", body)
	require.True(t, resp.Success, "Expected success, got %s", body)
	return resp.Data
}

// DecodePage is DecodeData for list endpoints, returning the pagination meta too
func DecodePage[T any](t *testing.T, body []byte) ([]T, dto.Meta) {
	t.Helper()

	var resp envelope[[]T]
	require.NoError(t, json.Unmarshal(body, &resp), "Failed to parse response: %s", body)
	require.True(t, resp.Success, "Expected success, got %s", body)
	require.NotNil(t, resp.Meta, "Expected pagination meta")
	return resp.Data, *resp.Meta
}

// AssertErrorResponse asserts a failed envelope carrying code
func AssertErrorResponse(t *testing.T, body []byte, expectedCode string) {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(body, &resp), "Failed to parse response: %s", body)
	assert.False(t, resp.Success, "Expected success to be false")
	require.NotNil(t, resp.Error, "Expected error object in response")
	assert.Equal(t, expectedCode, resp.Error.Code, "Unexpected error code")
}

// ToJSONReader encodes v as a JSON body
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
