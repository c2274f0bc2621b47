// Package grpc implements the gRPC transport of the identity service.
//
// The server exposes the standard health service. Every call passes through
// the auth interceptors: health methods use the optional guard mode, all
// other methods the mandatory one.
package grpc

import (
	"github.com/MKhiriev/go-identity/internal/auth"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-check name reported for the identity service.
const ServiceName = "identity"

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer, the auth guard and the
// structured logger. A handler instance is created once at startup and
// shared by the gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	guard  *auth.Guard
	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The health server starts in the
// SERVING state for both the overall server and [ServiceName].
func NewHandler(services *service.Services, guard *auth.Guard, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Handler{
		services: services,
		guard:    guard,
		health:   healthServer,
		logger:   logger,
	}
}

// ServerOptions returns the interceptors every server built on h must use.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.unaryAuth),
		grpc.ChainStreamInterceptor(h.streamAuth),
	}
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(server, h.health)
}

// Shutdown flips every health status to NOT_SERVING so that watchers
// observe the server going away.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
