package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
)

// MaxBodyBytes caps how much of a request body DecodeBody reads.
const MaxBodyBytes = 1 << 20

// Request is the request seen by a Handler.
type Request struct {
	*http.Request
	w http.ResponseWriter
}

// GetParam returns the httprouter path parameter named key.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetParamInt64 parses the path parameter key as an ID. Zero, negative and
// non numeric values are rejected with a 400.
func (r *Request) GetParamInt64(key string) (int64, error) {
	raw := r.GetParam(key)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	return 0, goerror.NewInvalidFormat("param " + key + " must be a positive integer")
}

// DecodeBody reads exactly one JSON value into dst. Unknown fields,
// trailing values and bodies over MaxBodyBytes are rejected with a 400.
func (r *Request) DecodeBody(dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return goerror.NewInvalidFormat("request body is required")
	}

	body := io.Reader(r.Body)
	if r.w != nil {
		body = http.MaxBytesReader(r.w, r.Body, MaxBodyBytes)
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeFailure(err)
	}
	if dec.More() {
		return goerror.NewInvalidFormat()
	}
	return nil
}

func decodeFailure(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return goerror.NewInvalidFormat("request body too large")
	case errors.Is(err, io.EOF):
		return goerror.NewInvalidFormat("request body is required")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		// encoding/json has no typed error for unknown fields.
		return goerror.NewInvalidFormat(strings.TrimPrefix(err.Error(), "json: "))
	default:
		return goerror.NewInvalidFormat()
	}
}
