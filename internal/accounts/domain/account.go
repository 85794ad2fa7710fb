package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the profile-side view of a user record.
type Account struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Gender       string     `json:"gender"`
	Image        *string    `json:"image,omitempty"`
	IsActive     bool       `json:"is_active"`
	IsStaff      bool       `json:"is_staff"`
	IsAdmin      bool       `json:"is_admin"`
	IsSuperuser  bool       `json:"is_superuser"`
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login"`
	PasswordHash string     `json:"-"`
}
