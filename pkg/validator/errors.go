package validator

import (
	"errors"
	"strings"
)

// ErrValidation is matched by every ValidationErrors value via errors.Is.
var ErrValidation = errors.New("validator: validation failed")

// TranslateFunc resolves a translation key with placeholder values into a message.
type TranslateFunc func(key string, values map[string]any) string

// ValidationError describes a single failed rule.
type ValidationError struct {
	TranslationValues map[string]any
	Field             string
	Message           string
	TranslationKey    string
}

// ValidationErrors is the list of failures returned by Apply.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Field+": "+ve.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (e ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, ve := range e {
		if ve.Field == field {
			msgs = append(msgs, ve.Message)
		}
	}
	return msgs
}

// GetErrors returns the errors recorded for field.
func (e ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, ve := range e {
		if ve.Field == field {
			errs = append(errs, ve)
		}
	}
	return errs
}

// Map groups messages by field, the shape templates consume.
func (e ValidationErrors) Map() map[string][]string {
	m := make(map[string][]string, len(e))
	for _, ve := range e {
		m[ve.Field] = append(m[ve.Field], ve.Message)
	}
	return m
}

// Translate rewrites messages in place. Errors without a key are left alone.
func (e ValidationErrors) Translate(fn TranslateFunc) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
