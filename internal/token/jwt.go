// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token implements access token issuance and verification.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
	"github.com/golang-jwt/jwt/v5"
)

// claims is the JWT claim set of an access token: the registered claims
// plus the role of the subject at issuance time.
type claims struct {
	jwt.RegisteredClaims

	Role models.Role `json:"role"`
}

// jwtProvider is the HMAC-SHA256 JWT implementation of [Provider].
type jwtProvider struct {
	signKey  []byte
	issuer   string
	duration time.Duration

	// now is the clock used for iat/exp; replaced in tests.
	now func() time.Time
}

// NewJWTProvider constructs a [Provider] that signs tokens with signKey using
// HS256, stamps issuer as the "iss" claim and expires tokens after duration.
//
// All parameters are required.
func NewJWTProvider(signKey, issuer string, duration time.Duration) (Provider, error) {
	if signKey == "" || issuer == "" || duration <= 0 {
		return nil, ErrInvalidProviderParams
	}

	return &jwtProvider{
		signKey:  []byte(signKey),
		issuer:   issuer,
		duration: duration,
		now:      time.Now,
	}, nil
}

// Issue implements [Provider].
//
// The token includes the following claims:
//   - iss:  the configured issuer
//   - sub:  the user ID
//   - role: the user's role
//   - iat:  the current time
//   - exp:  the current time plus the configured duration
func (p *jwtProvider) Issue(ctx context.Context, payload models.TokenPayload) (string, error) {
	if payload.Subject == "" {
		return "", ErrEmptySubject
	}

	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   payload.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.duration)),
		},
		Role: payload.Role,
	})

	signed, err := token.SignedString(p.signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// Verify implements [Provider].
//
// Validation includes:
//   - HS256 signature verification (other algorithms are refused)
//   - issuer (iss) claim check
//   - expiration (exp) claim check, which is required
//   - subject (sub) claim presence
//
// The reason for a rejection is logged at debug level and never returned.
func (p *jwtProvider) Verify(ctx context.Context, tokenString string) (models.TokenPayload, bool) {
	log := logger.FromContext(ctx)

	parsed := new(claims)
	_, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return p.signKey, nil
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		return models.TokenPayload{}, false
	}

	if parsed.Subject == "" {
		log.Debug().Msg("token has empty subject")
		return models.TokenPayload{}, false
	}

	return models.TokenPayload{Subject: parsed.Subject, Role: parsed.Role}, true
}
