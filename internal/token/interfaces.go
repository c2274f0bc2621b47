package token

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/token_provider_mock.go -package=mock

// Provider issues and verifies signed access tokens carrying
// {subject, role}. The signing scheme is an implementation detail; callers
// only rely on this contract.
type Provider interface {
	// Issue signs a new token for claims.
	Issue(ctx context.Context, claims models.TokenPayload) (string, error)

	// Verify checks the token and returns its claims. ok is false for any
	// invalid, expired or malformed token, in which case the payload is empty.
	Verify(ctx context.Context, token string) (payload models.TokenPayload, ok bool)
}
