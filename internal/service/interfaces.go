package service

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UserIdentityService is the identity core: account lifecycle, credential
// verification and token introspection.
//
// Every error it returns matches one of the sentinels in errors.go via
// [errors.Is], or is an internal failure.
type UserIdentityService interface {
	// Register creates an ACTIVE account with the USER role and returns its ID.
	Register(ctx context.Context, req models.RegisterRequest) (string, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, creds models.Credentials) (string, error)

	// IntrospectToken resolves a token to the current {subject, role} of
	// its account.
	IntrospectToken(ctx context.Context, token string) (models.TokenPayload, error)

	// Profile returns the account without its credential material.
	Profile(ctx context.Context, userID string) (models.UserProfile, error)

	// Update applies patch to the account userID on behalf of requester.
	Update(ctx context.Context, requester models.Requester, userID string, patch models.UserPatch) error

	// Delete soft-deletes the account userID on behalf of requester.
	Delete(ctx context.Context, requester models.Requester, userID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}
