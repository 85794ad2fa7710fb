package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Account is the credential-side view of a user record. A freshly registered
// account is Pending (IsActive false) until the activation link is followed.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Gender       Gender
	Image        *string
	IsActive     bool
	IsStaff      bool
	IsAdmin      bool
	IsSuperuser  bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

func (a *Account) Validate() error {
	if a.Email == "" {
		return ErrInvalidEmail
	}

	if !emailRegex.MatchString(a.Email) {
		return ErrInvalidEmailFormat
	}

	if a.PasswordHash == "" {
		return ErrInvalidPassword
	}

	if a.FirstName == "" || a.LastName == "" {
		return ErrInvalidName
	}

	if len(a.FirstName) > MaxNameLength || len(a.LastName) > MaxNameLength {
		return ErrInvalidNameLength
	}

	if !a.Gender.Valid() {
		return ErrInvalidGender
	}

	return nil
}

// NormalizeEmail lowercases the domain part only; the local part is
// case-sensitive per RFC 5321 and stored as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword checks the length bounds every password must satisfy.
// Character-class requirements are a deployment choice enforced at the
// request layer (see pkg/validator), not a domain rule.
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordLength
}
