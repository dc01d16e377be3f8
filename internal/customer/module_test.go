package customer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gocustomer/internal/customer"
	"github.com/shandysiswandi/gocustomer/internal/pkg/clock"
	"github.com/shandysiswandi/gocustomer/internal/pkg/config"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
	"github.com/shandysiswandi/gocustomer/internal/pkg/router"
	"github.com/shandysiswandi/gocustomer/internal/pkg/uid"
	"github.com/shandysiswandi/gocustomer/internal/pkg/validator"
)

const validBody = `{
	"first_name": "Ana",
	"last_name": "Souza",
	"email": "ana.souza@example.com",
	"phone_number": "5511999998888",
	"date_of_birth": "1990-05-12",
	"address": "Rua das Flores, 123"
}`

type successEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Message string              `json:"message"`
	Error   map[string]string   `json:"error"`
	Errors  []validator.Failure `json:"errors"`
}

type customerJSON struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
}

func newServer(t *testing.T) http.Handler {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  customer:\n    enabled: true\n"))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	ins := instrument.NewNoop()
	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: ins})

	require.NoError(t, customer.New(customer.Dependency{
		Router:     r,
		Instrument: ins,
		Clock:      clock.NewFixed(time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)),
		Validator:  v10,
	}))

	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestNewRequiresDependencies(t *testing.T) {
	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	assert.Error(t, customer.New(customer.Dependency{}))
	assert.Error(t, customer.New(customer.Dependency{Validator: v10}))
}

func TestCustomerCRUD(t *testing.T) {
	srv := newServer(t)

	// Arrange
	rec := do(t, srv, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode[successEnvelope](t, rec).Data))

	// Act
	rec = do(t, srv, http.MethodPost, "/api/customers", validBody)

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/customers/1", rec.Header().Get("Location"))
	env := decode[successEnvelope](t, rec)
	assert.Equal(t, "Customer created", env.Message)
	var created customerJSON
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, customerJSON{
		ID:          1,
		FirstName:   "Ana",
		Email:       "ana.souza@example.com",
		DateOfBirth: "1990-05-12",
		Address:     "Rua das Flores, 123",
	}, created)

	rec = do(t, srv, http.MethodGet, "/api/customers/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail customerJSON
	require.NoError(t, json.Unmarshal(decode[successEnvelope](t, rec).Data, &detail))
	assert.Equal(t, created, detail)

	updated := strings.Replace(validBody, "Rua das Flores, 123", "Avenida Paulista, 1000", 1)
	rec = do(t, srv, http.MethodPut, "/api/customers/1", updated)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []customerJSON
	require.NoError(t, json.Unmarshal(decode[successEnvelope](t, rec).Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Avenida Paulista, 1000", list[0].Address)

	rec = do(t, srv, http.MethodDelete, "/api/customers/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/customers/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "customer not found", decode[errorEnvelope](t, rec).Message)

	rec = do(t, srv, http.MethodDelete, "/api/customers/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/customers", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/customers/2", rec.Header().Get("Location"))
}

func TestCustomerCreateValidation(t *testing.T) {
	srv := newServer(t)
	body := `{
		"first_name": "",
		"last_name": "Souza",
		"email": "",
		"phone_number": "5511999998888",
		"date_of_birth": "2009-10-18",
		"address": "Rua das Flores, 123"
	}`

	rec := do(t, srv, http.MethodPost, "/api/customers", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode[errorEnvelope](t, rec)
	assert.Equal(t, "Validation error", env.Message)
	assert.Equal(t, []validator.Failure{
		{Field: "first_name", Message: "first name is required"},
		{Field: "email", Message: "email is required"},
		{Field: "email", Message: "email must be a valid email address"},
		{Field: "date_of_birth", Message: "customer must be at least 18 years old"},
	}, env.Errors)

	rec = do(t, srv, http.MethodGet, "/api/customers", "")
	assert.JSONEq(t, `[]`, string(decode[successEnvelope](t, rec).Data))
}

func TestCustomerUpdateChecksExistenceFirst(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPut, "/api/customers/7", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/customers", validBody).Code)

	rec = do(t, srv, http.MethodPut, "/api/customers/1", `{"first_name":"A"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode[errorEnvelope](t, rec)
	assert.Contains(t, env.Errors, validator.Failure{Field: "first_name", Message: "first name must be between 2 and 50 characters"})
}

func TestCustomerRequestFormatErrors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		msg    string
	}{
		{name: "malformed json", method: http.MethodPost, path: "/api/customers", body: `{"first_name":`, msg: "Invalid request body"},
		{name: "unknown field", method: http.MethodPost, path: "/api/customers", body: `{"nickname":"ana"}`, msg: `unknown field "nickname"`},
		{name: "bad date", method: http.MethodPost, path: "/api/customers", body: `{"date_of_birth":"12/05/1990"}`, msg: "Validation error"},
		{name: "non numeric id", method: http.MethodGet, path: "/api/customers/abc", msg: "param id must be a positive integer"},
		{name: "zero id", method: http.MethodDelete, path: "/api/customers/0", msg: "param id must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.msg, decode[errorEnvelope](t, rec).Message)
		})
	}
}

func TestCustomerCreateAcceptsRFC3339(t *testing.T) {
	srv := newServer(t)
	body := strings.Replace(validBody, `"1990-05-12"`, `"1990-05-12T00:00:00Z"`, 1)

	rec := do(t, srv, http.MethodPost, "/api/customers", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
