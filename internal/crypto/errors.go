package crypto

import "errors"

var (
	// ErrInvalidCost is returned by NewPasswordHasher for a cost outside the
	// range accepted by bcrypt.
	ErrInvalidCost = errors.New("invalid bcrypt cost")

	// ErrPasswordTooLong is returned when the salted password exceeds the
	// bcrypt input limit. Validators reject such passwords earlier.
	ErrPasswordTooLong = errors.New("password is too long")
)
