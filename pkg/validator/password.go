package validator

import (
	"os"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

// ValidateStrongPassword enforces the password policy: length bounds always,
// and at least one uppercase, lowercase, digit and special character when the
// deployment sets PASSWORD_POLICY=strict. The permissive default keeps
// existing accounts registrable with simple passphrases.
func ValidateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return false
	}

	if os.Getenv("PASSWORD_POLICY") != "strict" {
		return true
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func RegisterPasswordValidation(v *validator.Validate) {
	v.RegisterValidation("strongpassword", ValidateStrongPassword)
}
