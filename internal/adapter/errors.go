package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("token rejected by identity server")
	ErrInternalServerError = errors.New("identity server internal error")
	ErrUnexpectedStatus    = errors.New("unexpected status from identity server")
	ErrInvalidAddress      = errors.New("invalid introspection address")
	ErrMalformedResponse   = errors.New("malformed introspection response")
)
