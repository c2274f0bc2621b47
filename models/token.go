// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokenPayload is the set of claims carried inside an access token and
// returned by token introspection.
type TokenPayload struct {
	// Subject is the ID of the user the token was issued for.
	Subject string `json:"subject"`

	// Role is the user's role. After introspection it reflects the stored
	// record, not the value embedded at issuance.
	Role Role `json:"role"`
}

// Requester is the authenticated caller attached to a request by the
// auth guard. It is rebuilt for every request and never persisted.
type Requester struct {
	Subject string
	Role    Role
}

// RequesterFromPayload converts introspected claims into a [Requester].
func RequesterFromPayload(p TokenPayload) Requester {
	return Requester{Subject: p.Subject, Role: p.Role}
}

// IsAdmin reports whether the requester holds the ADMIN role.
func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// CanManage reports whether the requester may modify the account userID:
// admins may modify any account, everyone else only their own.
func (r Requester) CanManage(userID string) bool {
	return r.IsAdmin() || (r.Subject != "" && r.Subject == userID)
}
