// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements persistence of user accounts on top of
// database/sql. PostgreSQL (pgx) and SQLite (go-sqlite3) are supported;
// queries are built with squirrel so the same repository serves both.
package store

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository persists user accounts.
//
// Absent records are reported as [ErrNoUserWasFound] by every method.
type UserRepository interface {
	// FindByCondition returns the user matching every non-empty field of
	// cond. When several records share a username (a live account and
	// soft-deleted ones) the live record wins, then the most recent.
	FindByCondition(ctx context.Context, cond models.UserCondition) (models.User, error)

	// GetByID returns the user with the given ID regardless of status.
	GetByID(ctx context.Context, id string) (models.User, error)

	// Insert stores a new user. A username already taken by a live account
	// is reported as [ErrUsernameAlreadyExists].
	Insert(ctx context.Context, user models.User) error

	// Update applies the non-nil fields of update to the user with the
	// given ID. A username collision is reported as [ErrUsernameAlreadyExists].
	Update(ctx context.Context, id string, update models.UserUpdate) error

	// SoftDelete marks the user as DELETED. The row is kept.
	SoftDelete(ctx context.Context, id string) error
}

// ErrorClassificator maps driver-specific errors onto the conditions the
// repository cares about.
type ErrorClassificator interface {
	// Classify reports whether a failed operation may be retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique constraint violation.
	IsUniqueViolation(err error) bool
}
