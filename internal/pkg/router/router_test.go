package router_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gocustomer/internal/pkg/config"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
	"github.com/shandysiswandi/gocustomer/internal/pkg/router"
	"github.com/shandysiswandi/gocustomer/internal/pkg/validator"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type created struct {
	ID int64 `json:"id"`
}

func (created) StatusCode() int    { return http.StatusCreated }
func (created) Message() string    { return "created" }
func (c created) Location() string { return "/things/1" }

type envelope struct {
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   map[string]string   `json:"error"`
	Errors  []validator.Failure `json:"errors"`
}

func newTestRouter(t *testing.T, yaml string) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	return router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       fixedID("cid-generated"),
		Instrument: instrument.NewNoop(),
	})
}

func serve(t *testing.T, h http.Handler, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRouterSuccessEncoding(t *testing.T) {
	r := newTestRouter(t, "app: {}")
	r.POST("/things", func(req *router.Request) (any, error) {
		var in map[string]string
		if err := req.DecodeBody(&in); err != nil {
			return nil, err
		}
		return created{ID: 1}, nil
	})
	r.DELETE("/things/:id", func(req *router.Request) (any, error) {
		if _, err := req.GetParamInt64("id"); err != nil {
			return nil, err
		}
		return nil, nil
	})

	rec, env := serve(t, r, http.MethodPost, "/things", `{"name":"x"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/things/1", rec.Header().Get("Location"))
	assert.Equal(t, "created", env.Message)
	assert.JSONEq(t, `{"id":1}`, string(env.Data))
	assert.Equal(t, "cid-generated", rec.Header().Get(router.HeaderCorrelationID))

	rec, _ = serve(t, r, http.MethodDelete, "/things/9", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec, env = serve(t, r, http.MethodDelete, "/things/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "param id must be a positive integer", env.Message)

	rec, env = serve(t, r, http.MethodPost, "/things", `{"name":"x"} {"again":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestRouterErrorEncoding(t *testing.T) {
	r := newTestRouter(t, "app: {}")
	r.GET("/rules", func(*router.Request) (any, error) {
		return nil, goerror.NewInvalidInput(validator.Failures{
			{Field: "email", Message: "email is required"},
			{Field: "email", Message: "email must be a valid email address"},
		})
	})
	r.GET("/fields", func(*router.Request) (any, error) {
		return nil, goerror.NewInvalidInput(nil, "date_of_birth", "bad date")
	})
	r.GET("/missing", func(*router.Request) (any, error) {
		return nil, goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	})
	r.GET("/plain", func(*router.Request) (any, error) {
		return nil, errors.New("leaky detail")
	})

	rec, env := serve(t, r, http.MethodGet, "/rules", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation error", env.Message)
	assert.Equal(t, []validator.Failure{
		{Field: "email", Message: "email is required"},
		{Field: "email", Message: "email must be a valid email address"},
	}, env.Errors)

	rec, env = serve(t, r, http.MethodGet, "/fields", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"date_of_birth": "bad date"}, env.Error)

	rec, env = serve(t, r, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "customer not found", env.Message)

	rec, env = serve(t, r, http.MethodGet, "/plain", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)
}

func TestRouterBuiltins(t *testing.T) {
	r := newTestRouter(t, "app: {}")

	rec, env := serve(t, r, http.MethodGet, "/health", "", router.HeaderCorrelationID, "cid-from-client")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, "cid-from-client", rec.Header().Get(router.HeaderCorrelationID))

	rec, env = serve(t, r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "endpoint not found", env.Message)

	rec, _ = serve(t, r, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterRecoversPanics(t *testing.T) {
	r := newTestRouter(t, "app: {}")
	r.GET("/panic", func(*router.Request) (any, error) {
		var m map[string]int
		m["boom"]++
		return nil, nil
	})

	rec, env := serve(t, r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)
}

func TestRouterMaintenance(t *testing.T) {
	r := newTestRouter(t, `
app:
  maintenance:
    endpoints: "/things/:id"
`)
	r.GET("/things/:id", func(*router.Request) (any, error) { return created{}, nil })

	rec, env := serve(t, r, http.MethodGet, "/things/1", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "service is under maintenance", env.Message)
}

func TestRequestDecodeBody(t *testing.T) {
	r := newTestRouter(t, "app: {}")
	r.POST("/echo", func(req *router.Request) (any, error) {
		var in struct {
			Name string `json:"name"`
		}
		if err := req.DecodeBody(&in); err != nil {
			return nil, err
		}
		return messageOnly(in.Name), nil
	})

	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{name: "ok", body: `{"name":"ana"}`, code: http.StatusOK, msg: "ana"},
		{name: "empty", body: "", code: http.StatusBadRequest, msg: "request body is required"},
		{name: "unknown field", body: `{"nick":"a"}`, code: http.StatusBadRequest, msg: `unknown field "nick"`},
		{name: "wrong type", body: `{"name":1}`, code: http.StatusBadRequest, msg: "Invalid request body"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", router.MaxBodyBytes) + `"}`, code: http.StatusBadRequest, msg: "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := serve(t, r, http.MethodPost, "/echo", tt.body)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.msg, env.Message)
		})
	}
}

type messageOnly string

func (m messageOnly) Message() string { return string(m) }
