package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantTarget error
		wantStatus int
	}{
		{"validation", service.ErrValidation, service.ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: username", service.ErrValidation), service.ErrValidation, http.StatusBadRequest},
		{"username exists", service.ErrUsernameExists, service.ErrUsernameExists, http.StatusConflict},
		{"invalid credentials", service.ErrInvalidCredentials, service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account inactive", service.ErrAccountInactive, service.ErrAccountInactive, http.StatusForbidden},
		{"invalid token", service.ErrInvalidToken, service.ErrInvalidToken, http.StatusUnauthorized},
		{"not found", service.ErrNotFound, service.ErrNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, service.ErrForbidden, http.StatusForbidden},
		{"unauthenticated", service.ErrUnauthenticated, service.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid JSON", fmt.Errorf("%w: EOF", ErrInvalidJSON), ErrInvalidJSON, http.StatusBadRequest},
		{"unknown", errors.New("boom"), nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, status := statusFromError(tt.err)

			assert.Equal(t, tt.wantTarget, target)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}
