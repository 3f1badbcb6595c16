// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single 422 [apperr.AppError].
//
// Messages are grouped per field (`{"email": ["..."]}`), the shape the
// storefront routes to its field-level error channel.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
)

// MessageInvalid is the top-level message of every validation failure.
const MessageInvalid = "The given data was invalid."

var (
	// phoneRegex matches an 11-digit local mobile number (e.g. 01700000000).
	phoneRegex = regexp.MustCompile(`^01[3-9][0-9]{8}$`)
	// digitsRegex matches a string of ASCII digits.
	digitsRegex = regexp.MustCompile(`^[0-9]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.BadRequest("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request.
type Validator struct {
	errs  map[string][]string
	order []string
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("The %s field is required.", label(field)))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", label(field), max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("The %s must be at least %d characters.", label(field), min))
	}
	return v
}

// Email fails if a non-empty value is not a valid RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, fmt.Sprintf("The %s must be a valid email address.", label(field)))
	}
	return v
}

// Phone fails if a non-empty value is not a local mobile number.
func (v *Validator) Phone(field, value string) *Validator {
	if value == "" {
		return v
	}
	if !phoneRegex.MatchString(value) {
		v.add(field, fmt.Sprintf("The %s format is invalid.", label(field)))
	}
	return v
}

// Digits fails if the value is not exactly length ASCII digits.
func (v *Validator) Digits(field, value string, length int) *Validator {
	if len(value) != length || !digitsRegex.MatchString(value) {
		v.add(field, fmt.Sprintf("The %s must be %d digits.", label(field), length))
	}
	return v
}

// Confirmed fails if value and its confirmation differ.
func (v *Validator) Confirmed(field, value, confirmation string) *Validator {
	if value != confirmation {
		v.add(field, fmt.Sprintf("The %s confirmation does not match.", label(field)))
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("phone_number", taken, "The phone number has already been taken.")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a 422 [apperr.AppError] if any rules failed, or nil.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Validation(MessageInvalid, v.errs)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Fields returns the failing field names in the order they first failed.
func (v *Validator) Fields() []string {
	return append([]string(nil), v.order...)
}

func (v *Validator) add(field, message string) {
	if v.errs == nil {
		v.errs = make(map[string][]string)
	}
	if _, seen := v.errs[field]; !seen {
		v.order = append(v.order, field)
	}
	v.errs[field] = append(v.errs[field], message)
}

// label turns "phone_number" into "phone number".
func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
