// Package validation holds the input gates applied before any mutation
// reaches a repository. Constraints are plain structs rendered to
// go-playground/validator tags; failures come back as field-level errors.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of failed constraints of one input. It matches
// common.ErrorValidation with errors.Is.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Is reports a match against common.ErrorValidation.
func (e Errors) Is(target error) bool {
	return target == common.ErrorValidation
}

// Err returns e as an error, or nil when e is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Message returns the message recorded for field, if any.
func (e Errors) Message(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

func (e *Errors) add(fe *FieldError) {
	if fe != nil {
		*e = append(*e, *fe)
	}
}

// StringRule constrains the length (in characters) of an optional string.
// A nil value is accepted unless Required is set. Min applies to present
// values only.
type StringRule struct {
	Field       string
	Required    bool
	Trim        bool
	Min         int
	Max         int
	RequiredMsg string
	MinMsg      string
	MaxMsg      string
}

// tag renders the rule as a validator tag, empty when nothing is checked.
func (r StringRule) tag() string {
	var parts []string
	if r.Required {
		parts = append(parts, "required")
	}
	if r.Min > 0 {
		parts = append(parts, fmt.Sprintf("min=%d", r.Min))
	}
	if r.Max > 0 {
		parts = append(parts, fmt.Sprintf("max=%d", r.Max))
	}
	return strings.Join(parts, ",")
}

// Check validates value against the rule.
func (r StringRule) Check(value *string) *FieldError {
	if value == nil {
		if r.Required {
			return &FieldError{Field: r.Field, Message: r.RequiredMsg}
		}
		return nil
	}
	tag := r.tag()
	if tag == "" {
		return nil
	}
	v := *value
	if r.Trim {
		v = strings.TrimSpace(v)
	}
	err := engine().Var(v, tag)
	if err == nil {
		return nil
	}
	switch failedTag(err) {
	case "required":
		return &FieldError{Field: r.Field, Message: r.RequiredMsg}
	case "min":
		return &FieldError{Field: r.Field, Message: r.MinMsg}
	case "max":
		return &FieldError{Field: r.Field, Message: r.MaxMsg}
	}
	return &FieldError{Field: r.Field, Message: err.Error()}
}

// EnumRule restricts a value to a fixed set.
type EnumRule struct {
	Field   string
	Allowed []string
}

// Check validates value against the rule.
func (r EnumRule) Check(value string) *FieldError {
	if err := engine().Var(value, "oneof="+strings.Join(r.Allowed, " ")); err == nil {
		return nil
	}
	return &FieldError{
		Field:   r.Field,
		Message: fmt.Sprintf("Invalid %s: expected one of %s", r.Field, strings.Join(r.Allowed, ", ")),
	}
}

// failedTag returns the tag of the first failed constraint in err.
func failedTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}
