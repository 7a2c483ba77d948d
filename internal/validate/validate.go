// Package validate wraps the validator shared by request decoding and the
// services, so a field is held to the same rule whichever way it arrives.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Struct runs the validate tags of s.
func Struct(s any) error {
	return v.Struct(s)
}

// Email reports whether s is a single valid email address.
func Email(s string) bool {
	return v.Var(s, "required,email") == nil
}
