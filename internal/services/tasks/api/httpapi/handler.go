package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	platformotel "github.com/louisbranch/weathertask/internal/platform/otel"
	"github.com/louisbranch/weathertask/internal/services/tasks/service"
	"github.com/louisbranch/weathertask/internal/services/tasks/token"
)

const tracerName = "github.com/louisbranch/weathertask/internal/services/tasks/api/httpapi"

var (
	errRouteNotFound    = apperrors.New(apperrors.CodeNotFound, "route not found")
	errMethodNotAllowed = apperrors.New(apperrors.CodeValidation, "method not allowed")
)

// Config wires the HTTP surface to its use cases.
type Config struct {
	Accounts *service.Accounts
	Tasks    *service.Tasks
	Tokens   *token.Service
	// AllowedOrigins lists browser origins permitted by CORS.
	AllowedOrigins []string
	// Tracer defaults to the global provider.
	Tracer trace.Tracer
}

// Handler serves the HTTP API.
type Handler struct {
	accounts *service.Accounts
	tasks    *service.Tasks
	tokens   *token.Service
	origins  map[string]struct{}
	tracer   trace.Tracer
	router   *mux.Router
	root     http.Handler
}

// New builds the routed and wrapped HTTP handler.
func New(cfg Config) (*Handler, error) {
	if cfg.Accounts == nil {
		return nil, errors.New("accounts service is required")
	}
	if cfg.Tasks == nil {
		return nil, errors.New("tasks service is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token service is required")
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = platformotel.Tracer(tracerName)
	}

	h := &Handler{
		accounts: cfg.Accounts,
		tasks:    cfg.Tasks,
		tokens:   cfg.Tokens,
		origins:  originSet(cfg.AllowedOrigins),
		tracer:   tracer,
		router:   mux.NewRouter(),
	}
	h.registerRoutes()

	var root http.Handler = h.router
	root = h.authenticate(root)
	root = withDeadline(root)
	root = h.withTracing(root)
	root = withRequestLog(root)
	root = h.withCORS(root)
	h.root = root
	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	for _, rt := range h.routes() {
		var handler http.Handler = rt.Handler
		if !rt.Public {
			handler = requireIdentity(handler)
		}
		h.router.Handle(rt.Path, handler).Methods(rt.Method).Name(rt.Method + " " + rt.Path)
	}
	h.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errRouteNotFound)
	})
	h.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error:   string(errMethodNotAllowed.Code),
			Message: errMethodNotAllowed.Message,
		})
	})
}
