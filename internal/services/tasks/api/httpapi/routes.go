package httpapi

import "net/http"

// route is one entry of the explicit route table.
type route struct {
	Method  string
	Path    string
	Public  bool
	Handler http.HandlerFunc
}

func (h *Handler) routes() []route {
	return []route{
		{Method: http.MethodPost, Path: "/register", Public: true, Handler: h.handleRegister},
		{Method: http.MethodPost, Path: "/api/auth/register", Public: true, Handler: h.handleRegister},
		{Method: http.MethodPost, Path: "/login", Public: true, Handler: h.handleLogin},
		{Method: http.MethodPost, Path: "/api/auth/login", Public: true, Handler: h.handleLogin},

		{Method: http.MethodGet, Path: "/api/tasks", Handler: h.handleListTasks},
		{Method: http.MethodPost, Path: "/api/tasks", Handler: h.handleCreateTask},
		{Method: http.MethodPut, Path: "/api/tasks/{id}/status", Handler: h.handleUpdateStatus},
		{Method: http.MethodDelete, Path: "/api/tasks/{id}", Handler: h.handleDeleteTask},

		{Method: http.MethodGet, Path: "/api/weather", Public: true, Handler: handleWeather},
		{Method: http.MethodGet, Path: "/debug-path", Public: true, Handler: handleDebugPath},
		{Method: http.MethodGet, Path: "/up", Public: true, Handler: handleUp},
	}
}
