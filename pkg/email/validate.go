package email

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func IsEmailValid(address string) bool {
	return validate.Var(address, "required,email") == nil
}

// Normalize lower-cases and trims an address. Every email stored or
// compared by the service goes through it.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
