package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// compressionLevel is the gzip level used for JSON responses.
const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	router.Use(middleware.Compress(compressionLevel, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/auth/introspect", h.introspect)
		r.Get("/api/version", h.getServerVersion)
	})

	// anonymous callers allowed, identity attached when a valid token is sent
	router.Group(func(r chi.Router) {
		r.Use(h.authOptional)
		r.Get("/api/users/{id}", h.getUser)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.authRequired)
		r.Get("/api/user/me", h.me)
		r.Patch("/api/users/{id}", h.updateUser)
		r.Delete("/api/users/{id}", h.deleteUser)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
