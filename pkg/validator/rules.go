package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Numeric covers the number types accepted by the numeric rules.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Apply runs every rule and returns ValidationErrors holding the failures, or nil.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func rule(field, key, msg string, check func() bool, values map[string]any) Rule {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

func RequiredString(field, value string) Rule {
	return rule(field, "validation.required", "is required", func() bool {
		return strings.TrimSpace(value) != ""
	}, nil)
}

func RequiredSlice[T any](field string, value []T) Rule {
	return rule(field, "validation.required", "is required", func() bool {
		return len(value) > 0
	}, nil)
}

func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return rule(field, "validation.required", "is required", func() bool {
		return len(value) > 0
	}, nil)
}

func RequiredNum[T Numeric](field string, value T) Rule {
	return rule(field, "validation.required", "is required", func() bool {
		return value != 0
	}, nil)
}

// MinLenString counts runes, not bytes.
func MinLenString(field, value string, n int) Rule {
	return rule(field, "validation.min_length",
		fmt.Sprintf("must be at least %d characters long", n),
		func() bool { return utf8.RuneCountInString(value) >= n },
		map[string]any{"min": n})
}

// MaxLenString counts runes, not bytes.
func MaxLenString(field, value string, n int) Rule {
	return rule(field, "validation.max_length",
		fmt.Sprintf("must not exceed %d characters", n),
		func() bool { return utf8.RuneCountInString(value) <= n },
		map[string]any{"max": n})
}

func LenString(field, value string, n int) Rule {
	return rule(field, "validation.exact_length",
		fmt.Sprintf("must be exactly %d characters long", n),
		func() bool { return utf8.RuneCountInString(value) == n },
		map[string]any{"length": n})
}

func MinLenSlice[T any](field string, value []T, n int) Rule {
	return rule(field, "validation.min_items",
		fmt.Sprintf("must contain at least %d items", n),
		func() bool { return len(value) >= n },
		map[string]any{"min": n})
}

func MaxLenSlice[T any](field string, value []T, n int) Rule {
	return rule(field, "validation.max_items",
		fmt.Sprintf("must not contain more than %d items", n),
		func() bool { return len(value) <= n },
		map[string]any{"max": n})
}

func MinNum[T Numeric](field string, value, n T) Rule {
	return rule(field, "validation.min",
		fmt.Sprintf("must be at least %v", n),
		func() bool { return value >= n },
		map[string]any{"min": n})
}

func MaxNum[T Numeric](field string, value, n T) Rule {
	return rule(field, "validation.max",
		fmt.Sprintf("must not exceed %v", n),
		func() bool { return value <= n },
		map[string]any{"max": n})
}

// Email accepts a bare address ("user@example.com"). Display names are rejected.
func Email(field, value string) Rule {
	return rule(field, "validation.email", "must be a valid email address", func() bool {
		addr, err := mail.ParseAddress(value)
		return err == nil && addr.Address == value && addr.Name == ""
	}, nil)
}

// OneOf passes when value is one of allowed.
func OneOf[T comparable](field string, value T, allowed ...T) Rule {
	return rule(field, "validation.one_of", "is not an allowed value", func() bool {
		return slices.Contains(allowed, value)
	}, map[string]any{"allowed": allowed})
}

// When applies r only if cond holds, for optional fields.
func When(cond bool, r Rule) Rule {
	check := r.Check
	r.Check = func() bool { return !cond || check() }
	return r
}
