package http

import (
	"net/http"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

const authorizationHeader = "Authorization"

// authRequired rejects the request with 401 unless the Authorization header
// carries a bearer token that resolves to a live account. The resolved
// [models.Requester] is stored in the request context.
func (h *Handler) authRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, err := h.guard.Resolve(r.Context(), r.Header.Get(authorizationHeader))
		if err != nil {
			h.writeError(w, r, service.ErrUnauthenticated)
			return
		}

		next.ServeHTTP(w, attachRequester(r, requester))
	})
}

// authOptional lets anonymous requests through. A token that does not
// resolve is treated as no token at all.
func (h *Handler) authOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := h.guard.ResolveOptional(r.Context(), r.Header.Get(authorizationHeader))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, attachRequester(r, requester))
	})
}

func attachRequester(r *http.Request, requester models.Requester) *http.Request {
	l := logger.FromRequest(r).With().Str("subject", requester.Subject).Logger()

	ctx := utils.WithRequester(l.WithContext(r.Context()), requester)
	return r.WithContext(ctx)
}
