package router

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gocustomer/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. An entry is either a route pattern
// ("/api/customers/:id") which blocks every method, or a method and a
// pattern ("DELETE /api/customers/:id"). The list is read once at startup.
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := make(map[string]struct{})
	if cfg != nil {
		for _, entry := range cfg.GetArray("app.maintenance.endpoints") {
			method, route, found := strings.Cut(strings.TrimSpace(entry), " ")
			if !found {
				method, route = "", method
			}
			route = strings.TrimSpace(route)
			if route == "" {
				continue
			}
			blocked[maintenanceKey(strings.ToUpper(method), route)] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			_, all := blocked[maintenanceKey("", route)]
			_, one := blocked[maintenanceKey(r.Method, route)]
			if all || one {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func maintenanceKey(method, route string) string {
	return method + " " + route
}

// matchedRoutePath returns the registered pattern (e.g. /api/customers/:id)
// or the raw path when the request did not go through httprouter.
func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}
