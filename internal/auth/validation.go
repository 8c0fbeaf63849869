package auth

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username         string `validate:"required,min=3,max=50,username"`
	Email            string `validate:"omitempty,email"`
	Password         string `validate:"required,password"`
	SecurityQuestion string `validate:"required"`
	SecurityAnswer   string `validate:"required"`
}

// newValidator returns a validator with the custom username and password
// rules registered.
func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	})

	return v
}

// validPassword enforces the password policy: at least 8 characters with an
// upper-case letter, a lower-case letter, a digit and a special character.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}
