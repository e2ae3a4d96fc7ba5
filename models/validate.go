package models

import "github.com/go-playground/validator/v10"

// validate is shared across request payloads; validator instances cache
// struct metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest checks a request payload's validate tags before it is
// sent anywhere.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}
