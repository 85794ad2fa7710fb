package token

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultActivationTTL bounds how long an activation link stays usable.
const DefaultActivationTTL = 72 * time.Hour

// AccountState is the snapshot an activation token is derived from. Any
// change to these fields after issuance makes the token unverifiable.
type AccountState struct {
	ID           uuid.UUID
	IsActive     bool
	PasswordHash string
	LastLogin    *time.Time
}

// ActivationTokenizer issues and verifies HMAC-signed activation tokens.
// Tokens carry the account id, an account-state fingerprint and an expiry;
// verification recomputes the fingerprint against the current account state,
// so activating the account (or changing its password) invalidates every
// previously issued token.
type ActivationTokenizer struct {
	secret []byte
	ttl    time.Duration
}

func NewActivationTokenizer(secret string, ttl time.Duration) *ActivationTokenizer {
	if ttl <= 0 {
		ttl = DefaultActivationTTL
	}
	return &ActivationTokenizer{secret: []byte(secret), ttl: ttl}
}

func (t *ActivationTokenizer) Issue(state AccountState) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": state.ID.String(),
		"st":  fingerprint(state),
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify reports whether raw is a currently valid activation token for the
// given account state. Malformed, expired, foreign-account and stale-state
// tokens all verify false.
func (t *ActivationTokenizer) Verify(state AccountState, raw string) bool {
	parsed, err := jwt.Parse(raw, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != state.ID.String() {
		return false
	}

	st, _ := claims["st"].(string)
	return subtle.ConstantTimeCompare([]byte(st), []byte(fingerprint(state))) == 1
}

func fingerprint(state AccountState) string {
	h := sha256.New()
	h.Write([]byte(state.ID.String()))
	h.Write([]byte(strconv.FormatBool(state.IsActive)))
	h.Write([]byte(state.PasswordHash))
	if state.LastLogin != nil {
		h.Write([]byte(strconv.FormatInt(state.LastLogin.Unix(), 10)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
