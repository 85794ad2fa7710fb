package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

type CachedSession struct {
	AccountID string
	Email     string
	IsAdmin   bool
}

var (
	dbPool       *pgxpool.Pool
	sessionCache = gcache.New(1000).LRU().Expiration(time.Minute * 15).Build()

	// accountIndex maps account id -> cached session token, so sessions can
	// be evicted by account when the caller does not hold the token.
	accountIndex = gcache.New(1000).LRU().Expiration(time.Minute * 15).Build()
)

func InitSessionMiddleware(pool *pgxpool.Pool) {
	dbPool = pool
}

func InvalidateSessionCache(sessionToken string) {
	if cached, err := sessionCache.Get(sessionToken); err == nil {
		accountIndex.Remove(cached.(CachedSession).AccountID)
	}
	sessionCache.Remove(sessionToken)
}

// InvalidateAccountSessions evicts any cached session belonging to the
// account. Without this, a deactivated account would keep answering from the
// cache until the TTL ran out.
func InvalidateAccountSessions(accountID string) {
	if token, err := accountIndex.Get(accountID); err == nil {
		sessionCache.Remove(token.(string))
		accountIndex.Remove(accountID)
	}
}

// TokenSessionMiddleware authenticates requests by the bearer session token.
// Inactive accounts fail the lookup, so a deactivated user's token stops
// working (modulo the cache TTL).
func TokenSessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionToken := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if sessionToken == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "missing session token",
				})
			}

			cachedData, err := sessionCache.Get(sessionToken)
			if err == nil {
				session := cachedData.(CachedSession)
				c.Set("session_token", sessionToken)
				c.Set("user_id", session.AccountID)
				c.Set("email", session.Email)
				c.Set("is_admin", session.IsAdmin)
				return next(c)
			}

			ctx := c.Request().Context()

			query := `
				SELECT u.id, u.email, u.is_admin
				FROM sessions s
				JOIN users u ON u.id = s.account_id
				WHERE s.token = $1
				AND u.is_active = true
			`

			var accountID, email string
			var isAdmin bool
			err = dbPool.QueryRow(ctx, query, sessionToken).Scan(&accountID, &email, &isAdmin)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid session token",
				})
			}

			_ = sessionCache.Set(sessionToken, CachedSession{
				AccountID: accountID,
				Email:     email,
				IsAdmin:   isAdmin,
			})
			_ = accountIndex.Set(accountID, sessionToken)

			c.Set("session_token", sessionToken)
			c.Set("user_id", accountID)
			c.Set("email", email)
			c.Set("is_admin", isAdmin)

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "bearer" && scheme != "token" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
