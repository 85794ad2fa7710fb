package usecase

import (
	"context"
	"mime/multipart"
)

//go:generate mockgen -destination=../test/mock_account_usecase.go -package=test account_service/internal/accounts/usecase AccountUsecase
type AccountUsecase interface {
	GetProfile(ctx context.Context, accountID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, accountID string, req UpdateAccountRequest) (ProfileResponse, error)
	ChangePassword(ctx context.Context, accountID string, req ChangePasswordRequest) error
	Deactivate(ctx context.Context, accountID string) error
	UploadImage(ctx context.Context, accountID string, fileHeader *multipart.FileHeader) (string, error)
	ListAccounts(ctx context.Context) ([]ProfileResponse, error)
}
