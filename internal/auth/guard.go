// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth resolves the caller of an inbound request from its bearer
// token. It is transport-agnostic: the HTTP middleware and the gRPC
// interceptor both hand it the raw "Authorization" value.
//
// A request moves through
//
//	Start -> TokenExtracted -> Verified -> Attached
//
// or ends Rejected when no token is present (mandatory mode only) or the
// token does not resolve. Every rejection is reported as
// [service.ErrUnauthenticated]; the cause is logged, never returned.
package auth

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/models"
)

// BearerScheme is the only accepted authorization scheme. Case-sensitive.
const BearerScheme = "Bearer"

// Guard authenticates requests through an [Introspector].
type Guard struct {
	introspector Introspector
	logger       *logger.Logger
}

// NewGuard constructs a Guard that resolves tokens with introspector.
func NewGuard(introspector Introspector, logger *logger.Logger) *Guard {
	return &Guard{
		introspector: introspector,
		logger:       logger,
	}
}

// Resolve is the mandatory mode: it returns the requester behind the bearer
// token in authorization, or service.ErrUnauthenticated.
func (g *Guard) Resolve(ctx context.Context, authorization string) (models.Requester, error) {
	log := logger.FromContext(ctx)

	token, ok := ExtractBearer(authorization)
	if !ok {
		log.Debug().Msg("no bearer token")
		return models.Requester{}, service.ErrUnauthenticated
	}

	payload, err := g.introspector.Introspect(ctx, token)
	if err != nil {
		log.Info().Err(err).Msg("token introspection failed")
		return models.Requester{}, service.ErrUnauthenticated
	}
	if payload.Subject == "" {
		log.Info().Msg("token introspection returned no subject")
		return models.Requester{}, service.ErrUnauthenticated
	}

	return models.RequesterFromPayload(payload), nil
}

// ResolveOptional is the optional mode. Without a token the request proceeds
// anonymously (ok is false). With a token it runs [Guard.Resolve]; a
// rejection also degrades to anonymous.
func (g *Guard) ResolveOptional(ctx context.Context, authorization string) (requester models.Requester, ok bool) {
	if _, present := ExtractBearer(authorization); !present {
		return models.Requester{}, false
	}

	requester, err := g.Resolve(ctx, authorization)
	if err != nil {
		return models.Requester{}, false
	}

	return requester, true
}

// ExtractBearer returns the token of a "Bearer <token>" header value.
// Any other value, including an empty token or a differently cased scheme,
// yields ok == false.
func ExtractBearer(authorization string) (token string, ok bool) {
	parts := strings.Split(authorization, " ")
	if len(parts) < 2 || parts[0] != BearerScheme || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
