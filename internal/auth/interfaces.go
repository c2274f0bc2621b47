package auth

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/introspector_mock.go -package=mock

// Introspector resolves a raw bearer token to the claims of its account.
// Implementations may call the local identity service or a remote one.
type Introspector interface {
	Introspect(ctx context.Context, token string) (models.TokenPayload, error)
}
