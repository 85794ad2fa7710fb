package usecase

import (
	"time"

	"account_service/internal/accounts/domain"
)

type ProfileResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Gender      string  `json:"gender"`
	Image       *string `json:"image,omitempty"`
	IsActive    bool    `json:"is_active"`
	IsStaff     bool    `json:"is_staff"`
	IsAdmin     bool    `json:"is_admin"`
	IsSuperuser bool    `json:"is_superuser"`
	DateJoined  string  `json:"date_joined"`
	LastLogin   *string `json:"last_login"`
}

// UpdateAccountRequest is the partial-update payload: only present fields
// are touched. A present password is re-hashed and replaces the stored hash.
type UpdateAccountRequest struct {
	Email     *string `json:"email,omitempty" form:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" form:"first_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name,omitempty" form:"last_name" validate:"omitempty,min=1,max=50"`
	Gender    *string `json:"gender,omitempty" form:"gender" validate:"omitempty,oneof=M F"`
	Password  *string `json:"password,omitempty" form:"password" validate:"omitempty,strongpassword"`
}

func (r UpdateAccountRequest) Empty() bool {
	return r.Email == nil && r.FirstName == nil && r.LastName == nil && r.Gender == nil && r.Password == nil
}

// ReplaceAccountRequest is the full-replacement payload used by PUT: every
// profile field is required, the password stays optional.
type ReplaceAccountRequest struct {
	Email     string  `json:"email" form:"email" validate:"required,email"`
	FirstName string  `json:"first_name" form:"first_name" validate:"required,max=50"`
	LastName  string  `json:"last_name" form:"last_name" validate:"required,max=50"`
	Gender    string  `json:"gender" form:"gender" validate:"required,oneof=M F"`
	Password  *string `json:"password,omitempty" form:"password" validate:"omitempty,strongpassword"`
}

// AsUpdate reuses the partial-update path with every field present.
func (r ReplaceAccountRequest) AsUpdate() UpdateAccountRequest {
	return UpdateAccountRequest{
		Email:     &r.Email,
		FirstName: &r.FirstName,
		LastName:  &r.LastName,
		Gender:    &r.Gender,
		Password:  r.Password,
	}
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func ToProfileResponse(account *domain.Account) ProfileResponse {
	var lastLogin *string
	if account.LastLogin != nil {
		formatted := account.LastLogin.Format(time.RFC3339)
		lastLogin = &formatted
	}

	return ProfileResponse{
		ID:          account.ID.String(),
		Email:       account.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Gender:      account.Gender,
		Image:       account.Image,
		IsActive:    account.IsActive,
		IsStaff:     account.IsStaff,
		IsAdmin:     account.IsAdmin,
		IsSuperuser: account.IsSuperuser,
		DateJoined:  account.DateJoined.Format(time.RFC3339),
		LastLogin:   lastLogin,
	}
}
