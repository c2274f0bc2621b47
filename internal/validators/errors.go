package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	errPasswordTooLong = errors.New("the length in bytes is too long")
	errInvalidEncoding = errors.New("must be valid UTF-8")
)
