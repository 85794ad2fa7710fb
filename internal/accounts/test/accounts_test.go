package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"account_service/internal/accounts/domain"
	"account_service/internal/accounts/handler"
	"account_service/internal/accounts/usecase"
	"account_service/pkg/logger"
	"account_service/pkg/password"
	"account_service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func testAccount(id uuid.UUID) *domain.Account {
	return &domain.Account{
		ID:         id,
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Gender:     "F",
		IsActive:   true,
		DateJoined: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetProfile_Usecase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger.Init()

	ctx := context.Background()
	accountID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(testAccount(accountID), nil)

		out, err := svc.GetProfile(ctx, accountID.String())
		require.NoError(t, err)
		assert.Equal(t, accountID.String(), out.ID)
		assert.Equal(t, "jane@example.com", out.Email)
		assert.Equal(t, "2024-03-01T12:00:00Z", out.DateJoined)
		assert.Nil(t, out.LastLogin)
	})

	t.Run("invalid id", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		_, err := svc.GetProfile(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrInvalidAccountID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(nil, domain.ErrAccountNotFound)

		_, err := svc.GetProfile(ctx, accountID.String())
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestUpdateProfile_Usecase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger.Init()

	ctx := context.Background()
	accountID := uuid.New()

	t.Run("partial update touches only provided fields", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(testAccount(accountID), nil)
		repo.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a *domain.Account) (*domain.Account, error) {
				assert.Equal(t, "Janet", a.FirstName)
				assert.Equal(t, "Doe", a.LastName)
				assert.Equal(t, "jane@example.com", a.Email)
				return a, nil
			})

		out, err := svc.UpdateProfile(ctx, accountID.String(), usecase.UpdateAccountRequest{
			FirstName: stringPtr("Janet"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Janet", out.FirstName)
	})

	t.Run("new email is normalized before persisting", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(testAccount(accountID), nil)
		repo.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a *domain.Account) (*domain.Account, error) {
				assert.Equal(t, "Janet@example.com", a.Email)
				return a, nil
			})

		out, err := svc.UpdateProfile(ctx, accountID.String(), usecase.UpdateAccountRequest{
			Email: stringPtr("Janet@EXAMPLE.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Janet@example.com", out.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(testAccount(accountID), nil)

		_, err := svc.UpdateProfile(ctx, accountID.String(), usecase.UpdateAccountRequest{
			Email: stringPtr("not-an-email"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("email already taken", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(testAccount(accountID), nil)
		repo.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEmailTaken)

		_, err := svc.UpdateProfile(ctx, accountID.String(), usecase.UpdateAccountRequest{
			Email: stringPtr("taken@example.com"),
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("present password is re-hashed and replaces the stored hash", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		before := testAccount(accountID)
		before.PasswordHash = "$2a$10$oldhashvalue"

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(before, nil)
		repo.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a *domain.Account) (*domain.Account, error) {
				assert.NotEqual(t, "$2a$10$oldhashvalue", a.PasswordHash)
				assert.NotEqual(t, "NewSecret1!", a.PasswordHash)
				match, err := password.ComparePassword(a.PasswordHash, "NewSecret1!")
				require.NoError(t, err)
				assert.True(t, match)
				return a, nil
			})

		_, err := svc.UpdateProfile(ctx, accountID.String(), usecase.UpdateAccountRequest{
			Password: stringPtr("NewSecret1!"),
		})
		require.NoError(t, err)
	})

	t.Run("invalid id", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		_, err := svc.UpdateProfile(ctx, "bogus", usecase.UpdateAccountRequest{
			FirstName: stringPtr("Janet"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAccountID)
	})
}

func TestChangePassword_Usecase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger.Init()

	ctx := context.Background()
	accountID := uuid.New()

	hash, err := password.HashPassword("OldSecret1!")
	require.NoError(t, err)

	accountWithHash := func() *domain.Account {
		a := testAccount(accountID)
		a.PasswordHash = hash
		return a
	}

	t.Run("success", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(accountWithHash(), nil)
		repo.EXPECT().UpdatePassword(gomock.Any(), accountID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, newHash string) error {
				assert.NotEqual(t, hash, newHash)
				match, err := password.ComparePassword(newHash, "NewSecret1!")
				require.NoError(t, err)
				assert.True(t, match)
				return nil
			})

		err := svc.ChangePassword(ctx, accountID.String(), usecase.ChangePasswordRequest{
			OldPassword:     "OldSecret1!",
			NewPassword:     "NewSecret1!",
			ConfirmPassword: "NewSecret1!",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong current password leaves the hash alone", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(accountWithHash(), nil)

		err := svc.ChangePassword(ctx, accountID.String(), usecase.ChangePasswordRequest{
			OldPassword:     "WrongSecret1!",
			NewPassword:     "NewSecret1!",
			ConfirmPassword: "NewSecret1!",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCurrentPassword)
	})

	t.Run("confirmation mismatch stops before any repository call", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		err := svc.ChangePassword(ctx, accountID.String(), usecase.ChangePasswordRequest{
			OldPassword:     "OldSecret1!",
			NewPassword:     "NewSecret1!",
			ConfirmPassword: "Different1!",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	})

	t.Run("account not found", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().GetAccountByID(gomock.Any(), accountID).Return(nil, domain.ErrAccountNotFound)

		err := svc.ChangePassword(ctx, accountID.String(), usecase.ChangePasswordRequest{
			OldPassword:     "OldSecret1!",
			NewPassword:     "NewSecret1!",
			ConfirmPassword: "NewSecret1!",
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestDeactivate_Usecase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger.Init()

	ctx := context.Background()
	accountID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().DeactivateAccount(gomock.Any(), accountID).Return(nil)

		assert.NoError(t, svc.Deactivate(ctx, accountID.String()))
	})

	t.Run("invalid id", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		assert.ErrorIs(t, svc.Deactivate(ctx, "bogus"), domain.ErrInvalidAccountID)
	})

	t.Run("already inactive reads as not found", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		repo.EXPECT().DeactivateAccount(gomock.Any(), accountID).Return(domain.ErrAccountNotFound)

		assert.ErrorIs(t, svc.Deactivate(ctx, accountID.String()), domain.ErrAccountNotFound)
	})
}

func TestUploadImage_Usecase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger.Init()

	t.Run("storage not configured", func(t *testing.T) {
		repo := NewMockAccountRepository(ctrl)
		svc := usecase.NewAccountUsecase(repo, nil)

		_, err := svc.UploadImage(context.Background(), uuid.New().String(), nil)
		assert.ErrorIs(t, err, domain.ErrStorageNotConfigured)
	})
}

func TestListAccounts_Usecase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger.Init()

	repo := NewMockAccountRepository(ctrl)
	svc := usecase.NewAccountUsecase(repo, nil)

	first := testAccount(uuid.New())
	second := testAccount(uuid.New())
	second.Email = "john@example.com"

	repo.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{*first, *second}, nil)

	out, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "jane@example.com", out[0].Email)
	assert.Equal(t, "john@example.com", out[1].Email)
}

func TestAccountHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger.Init()

	mockUsecase := NewMockAccountUsecase(ctrl)
	h := handler.NewAccountHandler(mockUsecase)

	e := echo.New()
	e.Validator = validator.NewEchoValidator()

	newCtx := func(method, path string, body any, userID string) (*httptest.ResponseRecorder, echo.Context) {
		var req *http.Request
		if body != nil {
			reqJSON, _ := json.Marshal(body)
			req = httptest.NewRequest(method, path, bytes.NewBuffer(reqJSON))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if userID != "" {
			c.Set("user_id", userID)
		}
		return rec, c
	}

	t.Run("get profile success", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodGet, "/users/me", nil, userID)

		mockUsecase.EXPECT().GetProfile(gomock.Any(), userID).Return(usecase.ProfileResponse{
			ID:    userID,
			Email: "jane@example.com",
		}, nil)

		require.NoError(t, h.GetProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "jane@example.com")
	})

	t.Run("get profile without session", func(t *testing.T) {
		rec, c := newCtx(http.MethodGet, "/users/me", nil, "")

		require.NoError(t, h.GetProfile(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("update profile success", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodPatch, "/users/me", map[string]string{"first_name": "Janet"}, userID)

		mockUsecase.EXPECT().UpdateProfile(gomock.Any(), userID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, req usecase.UpdateAccountRequest) (usecase.ProfileResponse, error) {
				require.NotNil(t, req.FirstName)
				assert.Equal(t, "Janet", *req.FirstName)
				assert.Nil(t, req.Email)
				return usecase.ProfileResponse{ID: userID, FirstName: "Janet"}, nil
			})

		require.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Janet")
	})

	t.Run("update profile with no fields", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodPatch, "/users/me", map[string]string{}, userID)

		require.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "At least one field must be provided")
	})

	t.Run("update profile duplicate email", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodPatch, "/users/me", map[string]string{"email": "taken@example.com"}, userID)

		mockUsecase.EXPECT().UpdateProfile(gomock.Any(), userID, gomock.Any()).
			Return(usecase.ProfileResponse{}, domain.ErrEmailTaken)

		require.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("replace profile requires every field", func(t *testing.T) {
		userID := uuid.New().String()
		_, c := newCtx(http.MethodPut, "/users/me", map[string]string{
			"email":      "jane@example.com",
			"first_name": "Jane",
		}, userID)

		err := h.ReplaceProfile(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("replace profile passes every field through", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodPut, "/users/me", map[string]string{
			"email":      "jane@example.com",
			"first_name": "Janet",
			"last_name":  "Doe",
			"gender":     "F",
		}, userID)

		mockUsecase.EXPECT().UpdateProfile(gomock.Any(), userID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, req usecase.UpdateAccountRequest) (usecase.ProfileResponse, error) {
				require.NotNil(t, req.Email)
				require.NotNil(t, req.FirstName)
				require.NotNil(t, req.LastName)
				require.NotNil(t, req.Gender)
				assert.Nil(t, req.Password)
				return usecase.ProfileResponse{ID: userID, FirstName: *req.FirstName}, nil
			})

		require.NoError(t, h.ReplaceProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin replace can reset the password", func(t *testing.T) {
		targetID := uuid.New().String()
		rec, c := newCtx(http.MethodPut, "/users/"+targetID, map[string]string{
			"email":      "jane@example.com",
			"first_name": "Jane",
			"last_name":  "Doe",
			"gender":     "F",
			"password":   "resetme1",
		}, uuid.New().String())
		c.SetParamNames("id")
		c.SetParamValues(targetID)

		mockUsecase.EXPECT().UpdateProfile(gomock.Any(), targetID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, req usecase.UpdateAccountRequest) (usecase.ProfileResponse, error) {
				require.NotNil(t, req.Password)
				assert.Equal(t, "resetme1", *req.Password)
				return usecase.ProfileResponse{ID: targetID}, nil
			})

		require.NoError(t, h.ReplaceAccount(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("change password success", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodPut, "/users/me/password", map[string]string{
			"old_password":     "OldSecret1!",
			"new_password":     "NewSecret1!",
			"confirm_password": "NewSecret1!",
		}, userID)

		mockUsecase.EXPECT().ChangePassword(gomock.Any(), userID, gomock.Any()).Return(nil)

		require.NoError(t, h.ChangePassword(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Password changed successfully")
	})

	t.Run("change password wrong current", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodPut, "/users/me/password", map[string]string{
			"old_password":     "WrongSecret1!",
			"new_password":     "NewSecret1!",
			"confirm_password": "NewSecret1!",
		}, userID)

		mockUsecase.EXPECT().ChangePassword(gomock.Any(), userID, gomock.Any()).
			Return(domain.ErrInvalidCurrentPassword)

		require.NoError(t, h.ChangePassword(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "old password doesn't match")
	})

	t.Run("change password weak new password never reaches the usecase", func(t *testing.T) {
		userID := uuid.New().String()
		_, c := newCtx(http.MethodPut, "/users/me/password", map[string]string{
			"old_password":     "OldSecret1!",
			"new_password":     "weak",
			"confirm_password": "weak",
		}, userID)

		err := h.ChangePassword(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("deactivate self", func(t *testing.T) {
		userID := uuid.New().String()
		rec, c := newCtx(http.MethodDelete, "/users/me", nil, userID)
		c.Set("session_token", "stored-token")

		mockUsecase.EXPECT().Deactivate(gomock.Any(), userID).Return(nil)

		require.NoError(t, h.DeactivateSelf(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("admin list accounts", func(t *testing.T) {
		rec, c := newCtx(http.MethodGet, "/users", nil, uuid.New().String())

		mockUsecase.EXPECT().ListAccounts(gomock.Any()).Return([]usecase.ProfileResponse{
			{Email: "jane@example.com"},
			{Email: "john@example.com"},
		}, nil)

		require.NoError(t, h.ListAccounts(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "jane@example.com")
		assert.Contains(t, rec.Body.String(), "john@example.com")
	})

	t.Run("admin get account by id", func(t *testing.T) {
		targetID := uuid.New().String()
		rec, c := newCtx(http.MethodGet, "/users/"+targetID, nil, uuid.New().String())
		c.SetParamNames("id")
		c.SetParamValues(targetID)

		mockUsecase.EXPECT().GetProfile(gomock.Any(), targetID).Return(usecase.ProfileResponse{ID: targetID}, nil)

		require.NoError(t, h.GetAccount(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin deactivate success", func(t *testing.T) {
		targetID := uuid.New().String()
		rec, c := newCtx(http.MethodDelete, "/users/"+targetID, nil, uuid.New().String())
		c.SetParamNames("id")
		c.SetParamValues(targetID)

		mockUsecase.EXPECT().Deactivate(gomock.Any(), targetID).Return(nil)

		require.NoError(t, h.DeactivateAccount(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("admin deactivate missing account", func(t *testing.T) {
		targetID := uuid.New().String()
		rec, c := newCtx(http.MethodDelete, "/users/"+targetID, nil, uuid.New().String())
		c.SetParamNames("id")
		c.SetParamValues(targetID)

		mockUsecase.EXPECT().Deactivate(gomock.Any(), targetID).Return(domain.ErrAccountNotFound)

		require.NoError(t, h.DeactivateAccount(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
