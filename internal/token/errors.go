package token

import "errors"

var (
	// ErrInvalidProviderParams is returned by NewJWTProvider when the sign
	// key, issuer or duration is missing.
	ErrInvalidProviderParams = errors.New("invalid params for JWT provider")

	// ErrEmptySubject is returned by Issue for claims without a subject.
	ErrEmptySubject = errors.New("token subject is empty")
)
