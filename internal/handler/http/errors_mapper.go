package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
	validation "github.com/go-ozzo/ozzo-validation"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON: http.StatusBadRequest,
	ErrEmptyUserID: http.StatusBadRequest,

	service.ErrValidation:         http.StatusBadRequest,
	service.ErrUsernameExists:     http.StatusConflict,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrAccountInactive:    http.StatusForbidden,
	service.ErrInvalidToken:       http.StatusUnauthorized,
	service.ErrNotFound:           http.StatusNotFound,
	service.ErrForbidden:          http.StatusForbidden,
	service.ErrUnauthenticated:    http.StatusUnauthorized,
}

// statusFromError returns the sentinel err matches together with its status.
// Unknown errors map to (nil, 500).
func statusFromError(err error) (error, int) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return target, status
		}
	}
	return nil, http.StatusInternalServerError
}

// writeError answers with a [models.ErrorResponse]. Only the sentinel's text
// reaches the client; internal causes are logged.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	target, status := statusFromError(err)
	if target == nil {
		log.Err(err).Msg("unexpected error occurred")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(status)}, status)
		return
	}

	log.Debug().Err(err).Int("status", status).Msg("request rejected")

	body := models.ErrorResponse{Error: target.Error()}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		body.Fields = make(map[string]string, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			body.Fields[field] = fieldErr.Error()
		}
	}

	utils.WriteJSON(w, body, status)
}
