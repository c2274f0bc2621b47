package grpc

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-identity/internal/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authorizationKey is the metadata key carrying "Bearer <token>".
// gRPC lowercases metadata keys.
const authorizationKey = "authorization"

var healthMethodPrefix = "/" + grpc_health_v1.Health_ServiceDesc.ServiceName + "/"

func (h *Handler) unaryAuth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, err := h.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

func (h *Handler) streamAuth(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := h.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authenticatedStream{ServerStream: ss, ctx: ctx})
}

// authenticate attaches a request-scoped logger and, when the guard accepts
// the call, the requester.
func (h *Handler) authenticate(ctx context.Context, fullMethod string) (context.Context, error) {
	l := h.logger.With().Str("grpc_method", fullMethod).Logger()
	ctx = l.WithContext(ctx)

	authorization := authorizationFromMetadata(ctx)

	if strings.HasPrefix(fullMethod, healthMethodPrefix) {
		if requester, ok := h.guard.ResolveOptional(ctx, authorization); ok {
			ctx = utils.WithRequester(ctx, requester)
		}
		return ctx, nil
	}

	requester, err := h.guard.Resolve(ctx, authorization)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return utils.WithRequester(ctx, requester), nil
}

func authorizationFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(authorizationKey)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// authenticatedStream overrides the context of a server stream.
type authenticatedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authenticatedStream) Context() context.Context {
	return s.ctx
}
