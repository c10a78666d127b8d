package user

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	contactPattern = regexp.MustCompile(`^9[6-9]\d{8}$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	symbolPattern  = regexp.MustCompile(`[^\w\s]`)
)

// ValidationError maps field names to user-facing messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldError builds a single-field ValidationError.
func FieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// AsValidationError converts ozzo-validation errors into a ValidationError.
// Other errors pass through unchanged.
func AsValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make(map[string][]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		fields[field] = []string{fieldErr.Error()}
	}
	return &ValidationError{Fields: fields}
}

// Validate checks a signup payload.
func (a NewAccount) Validate() error {
	return AsValidationError(validation.ValidateStruct(&a,
		validation.Field(&a.Email,
			validation.Required.Error("This field is required."),
			validation.Length(0, 255).Error("Ensure this field has no more than 255 characters."),
			is.Email.Error("Enter a valid email address."),
		),
		validation.Field(&a.FullName,
			validation.Length(0, 255).Error("Ensure this field has no more than 255 characters."),
		),
		validation.Field(&a.Contact,
			validation.Required.Error("This field is required."),
			validation.Match(contactPattern).Error("Invalid mobile number."),
		),
		validation.Field(&a.Password, passwordRules()...),
	))
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("This field is required."),
		validation.Length(8, 0).Error("Ensure this field has at least 8 characters."),
		validation.Match(upperPattern).Error("Password must include at least one uppercase letter."),
		validation.Match(lowerPattern).Error("Password must include at least one lowercase letter."),
		validation.Match(digitPattern).Error("Password must include at least one number."),
		validation.Match(symbolPattern).Error("Password must include at least one special character."),
	}
}

// ValidatePassword applies the password policy on its own.
func ValidatePassword(password string) error {
	if err := validation.Validate(password, passwordRules()...); err != nil {
		return FieldError("password", err.Error())
	}
	return nil
}

// NormalizeEmail trims surrounding whitespace. Case is kept: addresses are
// stored and matched exactly as given.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
