package validation

import (
	"errors"
	"fmt"
	"strings"

	"candidatehub-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-friendly labels
var FieldLabels = map[string]string{
	"first_name":           "First name",
	"last_name":            "Last name",
	"email":                "Email",
	"phone_number":         "Phone number",
	"call_time_preference": "Call time preference",
	"linkedin_url":         "LinkedIn URL",
	"github_url":           "GitHub URL",
	"comments":             "Comments",
}

// Struct validates s and returns one FieldError per violated rule, or nil.
func Struct(v *validator.Validate, s any) []apperror.FieldError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	return FormatValidationErrors(err)
}

// FormatValidationErrors converts validator.ValidationErrors to field errors
func FormatValidationErrors(err error) []apperror.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []apperror.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperror.FieldError{
			Field:   e.Field(),
			Message: formatSingleError(e),
		})
	}
	return fields
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s is required", label)

	case "max":
		return fmt.Sprintf("%s must be %s characters or fewer", label, param)

	case "email":
		return "Invalid email format"

	case "phone_number":
		return "Invalid phone number format!"

	case "call_time_preference":
		return fmt.Sprintf("%s must be one of: Morning, Afternoon, Evening, AnyTime", label)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	s := strings.ReplaceAll(fieldName, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
