package domain

import "errors"

var (
	ErrAccountNotFound            = errors.New("account not found")
	ErrInvalidAccountID           = errors.New("invalid account ID")
	ErrInvalidEmail               = errors.New("invalid email")
	ErrEmailTaken                 = errors.New("account with this email already exists")
	ErrInvalidCurrentPassword     = errors.New("old password doesn't match")
	ErrPasswordMismatch           = errors.New("passwords don't match")
	ErrPasswordVerificationFailed = errors.New("password verification failed")
	ErrStorageNotConfigured       = errors.New("object storage is not configured")
)
