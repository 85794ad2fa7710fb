package repository

import (
	"context"
	"errors"

	"account_service/internal/accounts/domain"
	"account_service/internal/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

var accountColumns = []string{
	"id", "email", "first_name", "last_name", "gender", "image",
	"is_active", "is_staff", "is_admin", "is_superuser",
	"date_joined", "last_login", "password_hash",
}

type AccountStore struct {
	db database.Service
}

func NewAccountStore(db database.Service) AccountRepository {
	return &AccountStore{db: db}
}

func (s *AccountStore) GetAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	query := sq.Select(accountColumns...).
		From("users").
		Where(sq.Eq{"id": accountID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanAccount(s.db.Pool().QueryRow(ctx, sqlStr, args...))
}

func (s *AccountStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := sq.Select(accountColumns...).
		From("users").
		OrderBy("date_joined ASC").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool().Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}

	return accounts, rows.Err()
}

func (s *AccountStore) UpdateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := sq.Update("users").
		Set("email", account.Email).
		Set("first_name", account.FirstName).
		Set("last_name", account.LastName).
		Set("gender", account.Gender).
		Set("password_hash", account.PasswordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": account.ID}).
		Suffix("RETURNING " + joinColumns()).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanAccount(s.db.Pool().QueryRow(ctx, sqlStr, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return updated, nil
}

func (s *AccountStore) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error {
	return s.exec(ctx, sq.Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": accountID}))
}

func (s *AccountStore) UpdateImage(ctx context.Context, accountID uuid.UUID, imageURL string) error {
	return s.exec(ctx, sq.Update("users").
		Set("image", imageURL).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": accountID}))
}

// DeactivateAccount is the soft delete: the row is kept, only is_active
// flips. Deactivating an already inactive account reports not found.
func (s *AccountStore) DeactivateAccount(ctx context.Context, accountID uuid.UUID) error {
	return s.exec(ctx, sq.Update("users").
		Set("is_active", false).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": accountID, "is_active": true}))
}

func (s *AccountStore) exec(ctx context.Context, query sq.UpdateBuilder) error {
	sqlStr, args, err := query.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}

	commandTag, err := s.db.Pool().Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(
		&account.ID,
		&account.Email,
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
		&account.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

func joinColumns() string {
	out := accountColumns[0]
	for _, c := range accountColumns[1:] {
		out += ", " + c
	}
	return out
}
