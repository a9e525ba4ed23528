// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton with the service's custom validators registered. The singleton
// caches struct metadata, so validating the same request types repeatedly
// stays cheap.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns the shared validator, creating it on first use.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// signin_code: exactly six ASCII digits.
		_ = validate.RegisterValidation("signin_code", func(fl validator.FieldLevel) bool {
			code := fl.Field().String()
			if len(code) != 6 {
				return false
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		})

		// discount_type: one of the catalog discount kinds.
		_ = validate.RegisterValidation("discount_type", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "NONE", "FIXED", "UNIT":
				return true
			default:
				return false
			}
		})
	})
	return validate
}

// FieldError is a single field validation failure.
type FieldError struct {
	// Field is the failing struct field, in JSON-ish lower form.
	Field string

	// Tag is the validation tag that failed.
	Tag string

	// Param is the tag parameter, e.g. "5" for "lte=5".
	Param string
}

// Error returns a human-readable message.
func (e *FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
}

// Errors is the collection of failures from one Struct call.
type Errors struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *Errors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i := range e.Fields {
		msgs[i] = e.Fields[i].Error()
	}
	return strings.Join(msgs, "; ")
}

// Struct validates a struct against its validate tags. Returns *Errors on
// failure, nil on success.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Errors{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: strings.ToLower(fe.Field()),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// Var validates a single value against a tag expression.
func Var(v any, tag string) error {
	return instance().Var(v, tag)
}
