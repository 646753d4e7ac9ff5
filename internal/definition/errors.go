package definition

import (
	"strings"

	"github.com/tansive/mcpconf/internal/common/apperrors"
)

var (
	// ErrDefinition is the base error for the package.
	ErrDefinition = apperrors.New("server definition error").SetExpandError(true)

	// ErrInvalidDefinition is returned when a definition cannot be decoded.
	ErrInvalidDefinition = ErrDefinition.New("invalid server definition")

	// ErrSchemaViolation is returned when a raw document does not match the
	// definition JSON schema.
	ErrSchemaViolation = ErrDefinition.New("definition does not match schema")

	// ErrValidation is returned when a decoded definition fails validation.
	ErrValidation = ErrDefinition.New("definition validation failed")
)

// ValidationError describes one failed rule on one field.
type ValidationError struct {
	Field  string // Path of the field that failed, e.g. args.configurable[1].flag
	Value  any    // Offending value
	ErrStr string // Human readable reason
}

// Error allows ValidationError to satisfy the error interface.
func (ve ValidationError) Error() string {
	if len(ve.Field) > 0 {
		return ve.Field + ": " + ve.ErrStr
	}
	return ve.ErrStr
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error joins every validation error.
func (ves ValidationErrors) Error() string {
	parts := make([]string, 0, len(ves))
	for _, ve := range ves {
		parts = append(parts, ve.Error())
	}
	return strings.Join(parts, "; ")
}

func errMissingRequiredAttribute(field string, value any) ValidationError {
	return ValidationError{Field: field, Value: value, ErrStr: "missing required attribute"}
}

func errInvalidNameFormat(field string, value any) ValidationError {
	return ValidationError{
		Field:  field,
		Value:  value,
		ErrStr: "invalid name format; allowed characters: [a-zA-Z0-9-_.], at most 63",
	}
}

func errInvalidEnvName(field string, value any) ValidationError {
	return ValidationError{Field: field, Value: value, ErrStr: "invalid environment variable name"}
}

func errInvalidFlag(field string, value any) ValidationError {
	return ValidationError{
		Field:  field,
		Value:  value,
		ErrStr: "flag must start with '-' and contain no spaces or '='",
	}
}

func errNoSpaces(field string, value any) ValidationError {
	return ValidationError{Field: field, Value: value, ErrStr: "must not contain spaces"}
}

func errInvalidValue(field string, value any, reason string) ValidationError {
	return ValidationError{Field: field, Value: value, ErrStr: reason}
}

func errDuplicate(field string, value any) ValidationError {
	return ValidationError{Field: field, Value: value, ErrStr: "duplicate name " + inQuotes(value)}
}

func inQuotes(v any) string {
	s, _ := v.(string)
	return "'" + s + "'"
}
