package repository

import (
	"context"
	"errors"

	"account_service/internal/auth/domain"
	"account_service/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type AccountStore struct {
	db database.Service
}

func NewAccountStore(db database.Service) AccountRepository {
	return &AccountStore{
		db: db,
	}
}

func (s *AccountStore) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, gender, image)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, is_active, date_joined`

	err := s.db.Pool().QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Gender,
		account.Image,
	).Scan(&account.ID, &account.IsActive, &account.DateJoined)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return account, nil
}

func (s *AccountStore) CreateAdminAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, gender, image,
								is_active, is_staff, is_admin, is_superuser)
			  VALUES ($1, $2, $3, $4, $5, $6, true, true, true, true)
			  RETURNING id, is_active, is_staff, is_admin, is_superuser, date_joined`

	err := s.db.Pool().QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Gender,
		account.Image,
	).Scan(&account.ID, &account.IsActive, &account.IsStaff, &account.IsAdmin, &account.IsSuperuser, &account.DateJoined)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return account, nil
}

func (s *AccountStore) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT 1 FROM users WHERE email = $1 LIMIT 1`

	var exists int
	err := s.db.Pool().QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *AccountStore) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, gender, image,
			         is_active, is_staff, is_admin, is_superuser, date_joined, last_login
			  FROM users WHERE email = $1`

	return s.scanAccount(s.db.Pool().QueryRow(ctx, query, email))
}

func (s *AccountStore) GetAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, gender, image,
			         is_active, is_staff, is_admin, is_superuser, date_joined, last_login
			  FROM users WHERE id = $1`

	return s.scanAccount(s.db.Pool().QueryRow(ctx, query, accountID))
}

func (s *AccountStore) scanAccount(row pgx.Row) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.Gender,
		&account.Image,
		&account.IsActive,
		&account.IsStaff,
		&account.IsAdmin,
		&account.IsSuperuser,
		&account.DateJoined,
		&account.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

func (s *AccountStore) ActivateAccount(ctx context.Context, accountID uuid.UUID) error {
	query := `UPDATE users SET is_active = true, updated_at = NOW() WHERE id = $1`

	commandTag, err := s.db.Pool().Exec(ctx, query, accountID)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (s *AccountStore) UpdateLastLogin(ctx context.Context, accountID uuid.UUID) error {
	query := `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`

	commandTag, err := s.db.Pool().Exec(ctx, query, accountID)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// GetOrCreateSessionToken persists token for the account unless one already
// exists, then returns whichever token won. The unique constraint on
// sessions.account_id makes concurrent first logins converge on a single row.
func (s *AccountStore) GetOrCreateSessionToken(ctx context.Context, accountID uuid.UUID, token string) (string, error) {
	insert := `INSERT INTO sessions (account_id, token)
			   VALUES ($1, $2)
			   ON CONFLICT (account_id) DO NOTHING`

	if _, err := s.db.Pool().Exec(ctx, insert, accountID, token); err != nil {
		return "", err
	}

	var stored string
	err := s.db.Pool().QueryRow(ctx, `SELECT token FROM sessions WHERE account_id = $1`, accountID).Scan(&stored)
	if err != nil {
		return "", err
	}

	return stored, nil
}
