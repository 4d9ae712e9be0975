package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkgerror"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkguid"
)

// Handler is the endpoint shape used across modules: parse the request, return
// a JSON-serializable payload or an error. Status codes and encoding are the
// router's job.
type Handler func(ctx context.Context, r *http.Request) (any, error)

type route struct {
	method  string
	handler Handler
}

type Router struct {
	mux    *http.ServeMux
	uid    pkguid.StringID
	routes map[string][]route
}

func NewRouter(uid pkguid.StringID) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		uid:    uid,
		routes: map[string][]route{},
	}
}

func (rt *Router) GET(path string, h Handler) { rt.register(http.MethodGet, path, h) }

func (rt *Router) POST(path string, h Handler) { rt.register(http.MethodPost, path, h) }

func (rt *Router) register(method, path string, h Handler) {
	if _, exists := rt.routes[path]; !exists {
		rt.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			rt.dispatch(w, r, rt.routes[r.URL.Path])
		})
	}
	rt.routes[path] = append(rt.routes[path], route{method: method, handler: h})
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request, routes []route) {
	start := time.Now()
	requestID := rt.uid.Generate()
	w.Header().Set("X-Request-Id", requestID)

	var handler Handler
	for _, route := range routes {
		if route.method == r.Method {
			handler = route.handler
			break
		}
	}
	if handler == nil {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	payload, err := handler(r.Context(), r)
	status := http.StatusOK
	if err != nil {
		status = pkgerror.HTTPStatus(err)
		writeJSON(w, status, errorBody{Error: pkgerror.Message(err)})
	} else {
		writeJSON(w, status, payload)
	}

	logger := slog.Info
	if err != nil {
		logger = slog.Warn
	}
	logger("http request completed",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response payload", "error", err)
	}
}
