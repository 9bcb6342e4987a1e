package validators

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates a bound request struct
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
