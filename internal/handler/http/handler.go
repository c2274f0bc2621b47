package http

import (
	"github.com/MKhiriev/go-identity/internal/auth"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
)

type Handler struct {
	services *service.Services
	guard    *auth.Guard

	logger *logger.Logger
}

func NewHandler(services *service.Services, guard *auth.Guard, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		guard:    guard,
		logger:   logger,
	}
}
