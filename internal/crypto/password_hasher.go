// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// saltLength is the number of random bytes in a salt (hex-encoded to 32 chars).
	saltLength = 16

	// saltSeparator joins the password and the salt before hashing.
	saltSeparator = "."

	// MaxPasswordBytes is the longest password that still fits into the
	// bcrypt input together with the separator and a hex salt.
	MaxPasswordBytes = 72 - len(saltSeparator) - 2*saltLength
)

// bcryptHasher is the bcrypt-backed implementation of [PasswordHasher].
type bcryptHasher struct {
	// cost is the bcrypt work factor. Fixed at construction.
	cost int

	// dummyDigest is a digest of a random value at the same cost,
	// compared against by CompareDummy.
	dummyDigest []byte
}

// NewPasswordHasher constructs a bcrypt [PasswordHasher] with the given cost.
// The cost must lie within [bcrypt.MinCost, bcrypt.MaxCost].
func NewPasswordHasher(cost int) (PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	seed, err := randomHex(saltLength)
	if err != nil {
		return nil, err
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(seed), cost)
	if err != nil {
		return nil, fmt.Errorf("error generating dummy digest: %w", err)
	}

	return &bcryptHasher{cost: cost, dummyDigest: dummy}, nil
}

// GenerateSalt implements [PasswordHasher]. It returns 16 random bytes from
// crypto/rand, hex-encoded.
func (h *bcryptHasher) GenerateSalt() (string, error) {
	return randomHex(saltLength)
}

// Hash implements [PasswordHasher].
//
// Returns [ErrPasswordTooLong] when the salted input exceeds the 72-byte
// bcrypt limit instead of silently truncating it.
func (h *bcryptHasher) Hash(password, salt string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(salted(password, salt), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Compare implements [PasswordHasher].
func (h *bcryptHasher) Compare(digest, password, salt string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), salted(password, salt))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("error comparing password digest: %w", err)
	}
}

// CompareDummy implements [PasswordHasher].
func (h *bcryptHasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyDigest, []byte(password))
}

func salted(password, salt string) []byte {
	return []byte(password + saltSeparator + salt)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
