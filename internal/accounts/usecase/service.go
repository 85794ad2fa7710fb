package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"account_service/internal/accounts/domain"
	"account_service/internal/accounts/repository"
	"account_service/pkg/logger"
	"account_service/pkg/password"
	"account_service/pkg/uploadfiles"

	"github.com/google/uuid"
)

type accountUsecase struct {
	repo     repository.AccountRepository
	uploader *uploadfiles.Uploader
}

func NewAccountUsecase(repo repository.AccountRepository, uploader *uploadfiles.Uploader) AccountUsecase {
	return &accountUsecase{
		repo:     repo,
		uploader: uploader,
	}
}

func (u *accountUsecase) GetProfile(ctx context.Context, accountID string) (ProfileResponse, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return ProfileResponse{}, domain.ErrInvalidAccountID
	}

	account, err := u.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return ProfileResponse{}, domain.ErrAccountNotFound
		}
		return ProfileResponse{}, err
	}

	return ToProfileResponse(account), nil
}

func (u *accountUsecase) UpdateProfile(ctx context.Context, accountID string, req UpdateAccountRequest) (ProfileResponse, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return ProfileResponse{}, domain.ErrInvalidAccountID
	}

	account, err := u.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return ProfileResponse{}, domain.ErrAccountNotFound
		}
		return ProfileResponse{}, err
	}

	if req.Email != nil {
		email := domain.NormalizeEmail(*req.Email)
		if !domain.IsValidEmail(email) {
			return ProfileResponse{}, domain.ErrInvalidEmail
		}
		account.Email = email
	}
	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Gender != nil {
		account.Gender = *req.Gender
	}
	if req.Password != nil {
		hashed, err := password.HashPassword(*req.Password)
		if err != nil {
			logger.Error("failed to hash replacement password", err)
			return ProfileResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = hashed
	}

	updated, err := u.repo.UpdateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return ProfileResponse{}, domain.ErrEmailTaken
		}
		logger.Error("failed to update account", err)
		return ProfileResponse{}, err
	}

	return ToProfileResponse(updated), nil
}

func (u *accountUsecase) ChangePassword(ctx context.Context, accountID string, req ChangePasswordRequest) error {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return domain.ErrInvalidAccountID
	}

	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	account, err := u.repo.GetAccountByID(ctx, id)
	if err != nil {
		logger.Error("failed to get account for password change", err)
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return err
	}

	passwordMatch, err := password.ComparePassword(account.PasswordHash, req.OldPassword)
	if err != nil {
		logger.Error("password comparison error", err)
		return domain.ErrPasswordVerificationFailed
	}

	if !passwordMatch {
		return domain.ErrInvalidCurrentPassword
	}

	hashedPassword, err := password.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("failed to hash new password", err)
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := u.repo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		logger.Error("failed to update password", err)
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (u *accountUsecase) Deactivate(ctx context.Context, accountID string) error {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return domain.ErrInvalidAccountID
	}

	if err := u.repo.DeactivateAccount(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		logger.Error("failed to deactivate account", err)
		return err
	}

	return nil
}

func (u *accountUsecase) UploadImage(ctx context.Context, accountID string, fileHeader *multipart.FileHeader) (string, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return "", domain.ErrInvalidAccountID
	}

	if u.uploader == nil {
		return "", domain.ErrStorageNotConfigured
	}

	account, err := u.repo.GetAccountByID(ctx, id)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	imageURL, err := u.uploader.Upload(ctx, file, fileHeader, "uploads")
	if err != nil {
		return "", err
	}

	if err := u.repo.UpdateImage(ctx, id, imageURL); err != nil {
		logger.Error("failed to store image reference", err)
		return "", err
	}

	if account.Image != nil && *account.Image != "" {
		old := *account.Image
		go func() {
			if err := u.uploader.Delete(context.Background(), old); err != nil {
				logger.Error("failed to delete previous image", "url", old, "error", err)
			}
		}()
	}

	return imageURL, nil
}

func (u *accountUsecase) ListAccounts(ctx context.Context) ([]ProfileResponse, error) {
	accounts, err := u.repo.ListAccounts(ctx)
	if err != nil {
		logger.Error("failed to list accounts", err)
		return nil, err
	}

	out := make([]ProfileResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToProfileResponse(&accounts[i]))
	}

	return out, nil
}
