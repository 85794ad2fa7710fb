package domain

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecureToken mints the long-lived opaque session credential. The
// token has no expiry and is reused across logins (get-or-create).
func GenerateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
