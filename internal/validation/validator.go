// Package validation plugs go-playground/validator into Echo so that
// request DTOs are checked declaratively via struct tags before any
// domain logic runs.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// hexRGB matches a six-digit hex color like #FF5733, case-insensitive.
// The built-in hexcolor tag also admits three-digit shorthand, which
// the category color column does not accept.
var hexRGB = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	v *validator.Validate
}

// New builds the validator with the custom hexrgb tag registered.
func New() *RequestValidator {
	v := validator.New()
	_ = v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
		return hexRGB.MatchString(fl.Field().String())
	})
	return &RequestValidator{v: v}
}

// Validate checks the struct's validation tags.
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
