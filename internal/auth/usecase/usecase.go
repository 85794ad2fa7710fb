package usecase

import "context"

//go:generate mockgen -destination=../test/mock_auth_usecase.go -package=test account_service/internal/auth/usecase AuthUsecase
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (LoginOutput, error)
	Activate(ctx context.Context, accountID string, token string) (ActivateOutput, error)
	EnsureAdminAccount(ctx context.Context, input RegisterInput) error
}
