package model

import "github.com/go-playground/validator/v10"

var emailValidator = validator.New()

// IsEmail reports whether recipient is a syntactically valid email address
// rather than an account reference.
func IsEmail(recipient string) bool {
	return emailValidator.Var(recipient, "required,email") == nil
}
