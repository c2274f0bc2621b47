package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-identity/internal/auth"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := h.services.IdentityService.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("id", id).Msg("user registered")
	utils.WriteJSON(w, models.RegisterResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.services.IdentityService.Login(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(authorizationHeader, fmt.Sprintf("%s %s", auth.BearerScheme, token))
	utils.WriteJSON(w, models.LoginResponse{Token: token}, http.StatusOK)
}

func (h *Handler) introspect(w http.ResponseWriter, r *http.Request) {
	var req models.IntrospectionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	payload, err := h.services.IdentityService.IntrospectToken(r.Context(), req.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, payload, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	requester, ok := utils.GetRequesterFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	h.writeProfile(w, r, requester.Subject)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if requester, ok := utils.GetRequesterFromContext(r.Context()); ok {
		logger.FromRequest(r).Debug().Str("requester", requester.Subject).Str("id", userID).Msg("profile lookup")
	}

	h.writeProfile(w, r, userID)
}

func (h *Handler) writeProfile(w http.ResponseWriter, r *http.Request, userID string) {
	profile, err := h.services.IdentityService.Profile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	requester, ok := utils.GetRequesterFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	userID, err := userIDFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var patch models.UserPatch
	if err = decodeJSON(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.IdentityService.Update(r.Context(), requester, userID, patch); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	requester, ok := utils.GetRequesterFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	userID, err := userIDFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.IdentityService.Delete(r.Context(), requester, userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("id", userID).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON reads a single JSON object into dst. Unknown fields are
// rejected.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func userIDFromPath(r *http.Request) (string, error) {
	userID := strings.TrimSpace(chi.URLParam(r, "id"))
	if userID == "" {
		return "", ErrEmptyUserID
	}
	return userID, nil
}
