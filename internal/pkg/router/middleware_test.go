package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gocustomer/internal/pkg/config"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestMiddlewareIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "true client ip first", headers: map[string]string{"True-Client-IP": "203.0.113.7", "X-Real-IP": "198.51.100.1"}, remote: "10.0.0.1:5000", want: "203.0.113.7"},
		{name: "forwarded for takes first hop", headers: map[string]string{"X-Forwarded-For": "198.51.100.9, 10.0.0.2"}, remote: "10.0.0.1:5000", want: "198.51.100.9"},
		{name: "garbage header falls back to remote", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "192.0.2.4:1234", want: "192.0.2.4"},
		{name: "unparseable remote kept", remote: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := middlewareIP(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { got = r.RemoteAddr }))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeCorrelationID(t *testing.T) {
	assert.Equal(t, "abc", sanitizeCorrelationID("  abc "))
	assert.Empty(t, sanitizeCorrelationID("abc\r\nSet-Cookie: x"))
	assert.Len(t, sanitizeCorrelationID(strings.Repeat("a", 200)), maxCorrelationIDLen)
}

func TestMaintenanceByMethod(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  maintenance:\n    endpoints: \"delete /api/customers/:id\"\n"))
	require.NoError(t, err)

	r := NewRouter(Config{Config: cfg, Instrument: instrument.NewNoop()})
	ok := func(*Request) (any, error) { return messageResponse("ok"), nil }
	r.GET("/api/customers/:id", ok)
	r.DELETE("/api/customers/:id", ok)

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/customers/1", nil))
	del := httptest.NewRecorder()
	r.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, "/api/customers/1", nil))

	assert.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, http.StatusServiceUnavailable, del.Code)
}
