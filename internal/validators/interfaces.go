// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for identity requests.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Failures are returned as ozzo-validation [validation.Errors], keyed by the
// JSON name of the offending field, so transport layers can report
// field-level detail without knowing the rules.
//
// [validation.Errors]: https://pkg.go.dev/github.com/go-ozzo/ozzo-validation#Errors
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
