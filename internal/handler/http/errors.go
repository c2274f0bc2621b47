// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport itself, before a request reaches
// the service layer.
var (
	// ErrInvalidJSON is returned when the request body cannot be decoded
	// into the payload expected by the route.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrEmptyUserID is returned when the {id} path parameter is blank.
	ErrEmptyUserID = errors.New("empty user id in path")
)
