// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Status is the lifecycle state of a user account. It governs whether the
// account may log in and whether its tokens are accepted.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusBanned   Status = "BANNED"
	StatusDeleted  Status = "DELETED"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBanned, StatusDeleted:
		return true
	default:
		return false
	}
}

// User represents a persisted account.
// Password and Salt are credential material and must never leave the service
// layer; use [User.Profile] to build a caller-facing view.
type User struct {
	// ID is a time-ordered UUID assigned at registration. Immutable.
	ID string `json:"id"`

	// Username is unique across live (non-deleted) accounts.
	Username string `json:"username"`

	// Password is the bcrypt digest of "<plaintext>.<salt>", never the plaintext.
	Password string `json:"-"`

	// Salt is the per-user random value mixed into Password.
	Salt string `json:"-"`

	Role   Role   `json:"role"`
	Status Status `json:"status"`

	// FollowerCount and PostCount are owned by other subsystems.
	FollowerCount int64 `json:"follower_count"`
	PostCount     int64 `json:"post_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns every field of u except the credential material.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		Status:        u.Status,
		FollowerCount: u.FollowerCount,
		PostCount:     u.PostCount,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// UserProfile is the caller-facing projection of [User].
type UserProfile struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Role          Role      `json:"role"`
	Status        Status    `json:"status"`
	FollowerCount int64     `json:"follower_count"`
	PostCount     int64     `json:"post_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserCondition selects a single user record.
// Empty fields do not take part in the lookup.
type UserCondition struct {
	ID       string
	Username string

	// LiveOnly excludes soft-deleted records from the lookup.
	LiveOnly bool
}

// UserUpdate is a partial write applied by the repository.
// Only non-nil fields are written; UpdatedAt is always written.
type UserUpdate struct {
	Username  *string
	Password  *string
	Salt      *string
	Role      *Role
	Status    *Status
	UpdatedAt time.Time
}

// IsEmpty reports whether u changes nothing besides UpdatedAt.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Password == nil && u.Salt == nil && u.Role == nil && u.Status == nil
}
