// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization and ID generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequesterCtxKey is the key under which the auth guard stores the resolved
// [models.Requester]. Read it back with GetRequesterFromContext.
var RequesterCtxKey = contextKey("requester")

// WithRequester returns a copy of ctx carrying requester.
// The parent context is left untouched.
func WithRequester(ctx context.Context, requester models.Requester) context.Context {
	return context.WithValue(ctx, RequesterCtxKey, requester)
}

// GetRequesterFromContext retrieves the authenticated caller from the context.
//
// Returns the requester and an ok flag:
//   - ok == true : the request passed the auth guard with a valid token
//   - ok == false: no identity was attached (anonymous request)
//
// Example usage:
//
//	requester, ok := utils.GetRequesterFromContext(ctx)
//	if !ok {
//	    // anonymous
//	}
func GetRequesterFromContext(ctx context.Context) (models.Requester, bool) {
	requester, ok := ctx.Value(RequesterCtxKey).(models.Requester)
	return requester, ok
}
