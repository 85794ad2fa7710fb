package repository

import (
	"context"

	"account_service/internal/accounts/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_account_repository.go -package=test account_service/internal/accounts/repository AccountRepository
type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error
	UpdateImage(ctx context.Context, accountID uuid.UUID, imageURL string) error
	DeactivateAccount(ctx context.Context, accountID uuid.UUID) error
}
