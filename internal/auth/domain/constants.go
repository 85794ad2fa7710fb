package domain

const (
	MaxNameLength     = 50
	MinPasswordLength = 6
	MaxPasswordLength = 128

	MaxLoginAttempts = 5
)
