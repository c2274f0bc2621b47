package auth

import (
	"context"

	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/models"
)

// localIntrospector resolves tokens with the in-process identity service.
type localIntrospector struct {
	identity service.UserIdentityService
}

// NewLocalIntrospector returns an [Introspector] backed by identity.
func NewLocalIntrospector(identity service.UserIdentityService) Introspector {
	return &localIntrospector{identity: identity}
}

func (l *localIntrospector) Introspect(ctx context.Context, token string) (models.TokenPayload, error) {
	return l.identity.IntrospectToken(ctx, token)
}
