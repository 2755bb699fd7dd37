package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationBuilder collects per-field problems and turns them into a single
// InvalidInput error. The field messages are exposed under the
// "validation_errors" meta key as map[string][]string.
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder returns an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records message against field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records a present but unusable field
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Field(field, "is invalid: "+reason)
}

// Build returns nil when nothing was recorded. Fields appear in the message
// in name order.
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(vb.fields))
	for name := range vb.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + strings.Join(vb.fields[name], ", ")
	}

	return InvalidInput("validation failed: "+strings.Join(parts, "; ")).
		WithMeta("validation_errors", vb.fields)
}

// ValidateRequired records field when value is blank
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateMaxLength records field when value has more than maxValue bytes
func ValidateMaxLength(field, value string, maxValue int, vb *ValidationBuilder) {
	if len(value) > maxValue {
		vb.Field(field, fmt.Sprintf("must be no more than %d characters", maxValue))
	}
}

// ValidateRange records field when value falls outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Field(field, fmt.Sprintf("must be between %d and %d", minValue, maxValue))
	}
}

// ValidateOneOf records field when value is not in allowed
func ValidateOneOf(field string, value int, allowed []int, vb *ValidationBuilder) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	vb.Field(field, "must be one of: "+strings.Join(parts, ", "))
}
