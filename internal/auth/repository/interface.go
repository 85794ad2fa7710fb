package repository

import (
	"context"

	"account_service/internal/auth/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_account_repository.go -package=test account_service/internal/auth/repository AccountRepository
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
	CreateAdminAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
	ActivateAccount(ctx context.Context, accountID uuid.UUID) error
	UpdateLastLogin(ctx context.Context, accountID uuid.UUID) error
	GetOrCreateSessionToken(ctx context.Context, accountID uuid.UUID, token string) (string, error)
}
