package domain

import "errors"

var (
	ErrInvalidName           = errors.New("first and last name are required")
	ErrInvalidNameLength     = errors.New("name must be at most 50 characters")
	ErrInvalidEmail          = errors.New("email is required")
	ErrInvalidEmailFormat    = errors.New("email format is invalid")
	ErrInvalidGender         = errors.New("gender must be M or F")
	ErrInvalidPassword       = errors.New("password is required")
	ErrInvalidPasswordFormat = errors.New("password must be between 6 and 128 characters")
	ErrEmailTaken            = errors.New("account with this email already exists")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidAccountID      = errors.New("invalid account ID")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountInactive       = errors.New("account is not active")
	ErrTooManyLoginAttempts  = errors.New("too many login attempts, please try again later")
	ErrInvalidActivation     = errors.New("activation link is invalid")
	ErrAlreadyActive         = errors.New("account already activated")
)
