package server

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-identity/internal/config"
	myGRPC "github.com/MKhiriev/go-identity/internal/handler/grpc"
	"github.com/MKhiriev/go-identity/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

// newGRPCServer opens the listener eagerly so that a bad address fails at
// startup instead of inside the serving goroutine.
func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("listen gRPC on %q: %w", cfg.GRPCAddress, err)
	}

	options := handler.ServerOptions()
	if cfg.RequestTimeout > 0 {
		options = append(options, grpc.ChainUnaryInterceptor(timeoutInterceptor(cfg)))
	}

	server := grpc.NewServer(options...)
	handler.Register(server)

	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func timeoutInterceptor(cfg config.Server) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
		return handler(ctx, req)
	}
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}
