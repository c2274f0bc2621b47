package validators

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/MKhiriev/go-identity/internal/crypto"
	"github.com/MKhiriev/go-identity/models"
)

// Field name constants used to restrict validation to a subset of fields.
// They match the JSON names reported in [validation.Errors].
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldStatus   = "status"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 32
	passwordMinLength = 8
	passwordMaxLength = 32
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var (
	usernameRules = []validation.Rule{
		validation.Length(usernameMinLength, usernameMaxLength),
		validation.Match(usernamePattern).Error("must contain only letters, digits and underscores"),
	}
	passwordRules = []validation.Rule{
		validation.Length(passwordMinLength, passwordMaxLength),
		validation.By(fitsHasher),
	}
)

// UserValidator implements [Validator] for the identity request models:
// RegisterRequest, Credentials and UserPatch.
type UserValidator struct{}

// NewUserValidator constructs a new UserValidator
// and returns it as the Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches validation based on the dynamic type of obj.
// Both value and pointer forms of each supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model and
// ErrUnknownField if fields names a field the model does not have.
// On failure the returned error is a [validation.Errors].
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateRegisterRequest(*value, fields...)
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateCredentials(*value, fields...)
	case models.UserPatch:
		return v.validateUserPatch(value, fields...)
	case *models.UserPatch:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateUserPatch(*value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *UserValidator) validateRegisterRequest(r models.RegisterRequest, fields ...string) error {
	all := map[string]*validation.FieldRules{
		FieldUsername: validation.Field(&r.Username, append([]validation.Rule{validation.Required}, usernameRules...)...),
		FieldPassword: validation.Field(&r.Password, append([]validation.Rule{validation.Required}, passwordRules...)...),
	}

	return validateScoped(&r, all, fields)
}

// validateCredentials only checks presence: the stored account decides
// whether the pair is correct, and format rules would leak which half
// of the pair was wrong.
func (v *UserValidator) validateCredentials(c models.Credentials, fields ...string) error {
	all := map[string]*validation.FieldRules{
		FieldUsername: validation.Field(&c.Username, validation.Required, validation.Length(0, usernameMaxLength)),
		FieldPassword: validation.Field(&c.Password, validation.Required, validation.By(fitsHasher)),
	}

	return validateScoped(&c, all, fields)
}

func (v *UserValidator) validateUserPatch(p models.UserPatch, fields ...string) error {
	all := map[string]*validation.FieldRules{
		FieldUsername: validation.Field(&p.Username, append([]validation.Rule{validation.NilOrNotEmpty}, usernameRules...)...),
		FieldPassword: validation.Field(&p.Password, append([]validation.Rule{validation.NilOrNotEmpty}, passwordRules...)...),
		FieldRole:     validation.Field(&p.Role, validation.NilOrNotEmpty, validation.In(models.RoleUser, models.RoleAdmin)),
		FieldStatus: validation.Field(&p.Status, validation.NilOrNotEmpty,
			validation.In(models.StatusActive, models.StatusInactive, models.StatusBanned, models.StatusDeleted)),
	}

	return validateScoped(&p, all, fields)
}

// validateScoped runs the rules named in fields, or every rule when fields
// is empty.
func validateScoped(structPtr any, all map[string]*validation.FieldRules, fields []string) error {
	if len(fields) == 0 {
		scoped := make([]*validation.FieldRules, 0, len(all))
		for _, rules := range all {
			scoped = append(scoped, rules)
		}
		return validation.ValidateStruct(structPtr, scoped...)
	}

	scoped := make([]*validation.FieldRules, 0, len(fields))
	for _, name := range fields {
		rules, ok := all[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		scoped = append(scoped, rules)
	}

	return validation.ValidateStruct(structPtr, scoped...)
}

// fitsHasher rejects passwords the hasher would truncate or refuse.
// Length rules count runes, this counts bytes.
func fitsHasher(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return nil
	}
	if !utf8.ValidString(s) {
		return errInvalidEncoding
	}
	if len(s) > crypto.MaxPasswordBytes {
		return errPasswordTooLong
	}

	return nil
}
