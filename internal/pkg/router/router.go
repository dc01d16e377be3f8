package router

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gocustomer/internal/pkg/config"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
	"github.com/shandysiswandi/gocustomer/internal/pkg/uid"
	"github.com/shandysiswandi/gocustomer/internal/pkg/validator"
)

type errorResponse struct {
	Message string              `json:"message" example:"Validation error"`
	Error   map[string]string   `json:"error,omitempty"`
	Errors  []validator.Failure `json:"errors,omitempty"`
}

type successResponse struct {
	Message string         `json:"message" example:"request has been successfully"`
	Data    any            `json:"data" swaggertype:"object"`
	Meta    map[string]any `json:"meta,omitempty" swaggertype:"object"`
}

// Handler returns a payload to encode as JSON, or an error to map through
// goerror. A nil payload answers 204.
//
// Payloads shape their response by implementing any of StatusCode() int,
// Message() string, Meta() map[string]any and Location() string.
type Handler func(r *Request) (any, error)

type (
	statusCoder interface{ StatusCode() int }
	messenger   interface{ Message() string }
	metaHolder  interface{ Meta() map[string]any }
	locator     interface{ Location() string }
	errorSetter interface{ SetError(error) }
)

// Config holds what NewRouter needs. A nil Instrument falls back to noop.
type Config struct {
	Config     config.Config
	UUID       uid.StringID
	Instrument instrument.Instrumentation
}

// Router serves Handlers on top of httprouter behind a fixed middleware
// chain: recover, client IP, correlation ID, observability, maintenance.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

func NewRouter(cfg Config) *Router {
	ins := cfg.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	ro := &Router{
		hr: &httprouter.Router{
			RedirectTrailingSlash:  true,
			RedirectFixedPath:      true,
			HandleMethodNotAllowed: true,
			HandleOPTIONS:          true,
			SaveMatchedRoutePath:   true,
			NotFound:               fallback(http.StatusNotFound, "endpoint not found"),
			MethodNotAllowed:       fallback(http.StatusMethodNotAllowed, "method not allowed"),
		},
		mws: []Middleware{
			middlewareRecoverer,
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Config, ins),
			middlewareMaintenance(cfg.Config),
		},
	}

	ro.GET("/", staticMessage("Welcome to Customer API"))
	ro.GET("/health", staticMessage("ok"))

	return ro
}

func fallback(code int, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, errorResponse{Message: msg}, code)
	})
}

type messageResponse string

func (m messageResponse) Message() string { return string(m) }

func staticMessage(msg string) Handler {
	return func(*Request) (any, error) { return messageResponse(msg), nil }
}

func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodGet, path, h, mws...)
}

func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodPost, path, h, mws...)
}

func (r *Router) PUT(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodPut, path, h, mws...)
}

func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodDelete, path, h, mws...)
}

// Handle registers h for method and path. Route specific mws run after the
// router wide chain.
func (r *Router) Handle(method, path string, h Handler, mws ...Middleware) {
	chain := append(append([]Middleware{}, r.mws...), mws...)
	r.hr.Handler(method, path, Chain(serve(h), chain...))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func serve(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req, w: w})
		if err != nil {
			if es, ok := w.(errorSetter); ok {
				es.SetError(err)
			}
			writeError(w, err)
			return
		}
		writeSuccess(w, resp)
	})
}

// writeError maps err to a status through goerror. Anything that is not a
// *goerror.Error is reported as a bare 500 so causes never reach clients.
func writeError(w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Message: gerr.Msg()}

	var failures validator.Failures
	var v10Err validator.V10ValidationError
	switch {
	case errors.As(err, &failures):
		resp.Errors = failures
	case errors.As(err, &v10Err):
		resp.Error = v10Err.Values()
	case len(gerr.Fields()) > 0:
		resp.Error = gerr.Fields()
	}

	writeJSON(w, resp, gerr.StatusCode())
}

func writeSuccess(w http.ResponseWriter, resp any) {
	if l, ok := resp.(locator); ok && l.Location() != "" {
		w.Header().Set("Location", l.Location())
	}

	code := http.StatusOK
	if sc, ok := resp.(statusCoder); ok {
		code = sc.StatusCode()
	}
	if resp == nil || code == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	out := successResponse{Message: "request has been successfully", Data: resp}
	if m, ok := resp.(messenger); ok {
		out.Message = m.Message()
	}
	if m, ok := resp.(metaHolder); ok {
		out.Meta = m.Meta()
	}

	writeJSON(w, out, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
