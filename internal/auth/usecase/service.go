package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"account_service/internal/auth/domain"
	"account_service/internal/auth/repository"
	"account_service/pkg/logger"
	"account_service/pkg/mailer"
	"account_service/pkg/password"
	"account_service/pkg/token"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
)

type AuthService struct {
	repo   repository.AccountRepository
	cache  gcache.Cache
	mailer mailer.Mailer
	tokens *token.ActivationTokenizer
	appUrl string

	// The original service let unactivated accounts log in. The gate is
	// explicit and on by default; ALLOW_INACTIVE_LOGIN=true restores the
	// legacy behavior.
	allowInactiveLogin bool
}

func NewAuthService(r repository.AccountRepository, m mailer.Mailer) AuthUsecase {
	return &AuthService{
		repo:               r,
		cache:              gcache.New(100).LRU().Expiration(time.Minute * 15).Build(),
		mailer:             m,
		tokens:             token.NewActivationTokenizer(os.Getenv("ACTIVATION_SECRET"), token.DefaultActivationTTL),
		appUrl:             os.Getenv("APP_URL"),
		allowInactiveLogin: os.Getenv("ALLOW_INACTIVE_LOGIN") == "true",
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (RegisterOutput, error) {
	if !domain.IsValidPassword(input.Password) {
		logger.Error("Password validation failed - format requirements not met")
		return RegisterOutput{}, domain.ErrInvalidPasswordFormat
	}

	email := domain.NormalizeEmail(input.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		logger.Error("Repository error checking account existence")
		return RegisterOutput{}, fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		return RegisterOutput{}, domain.ErrEmailTaken
	}

	hashedPassword, err := password.HashPassword(input.Password)
	if err != nil {
		logger.Error("Password hashing error:", err)
		return RegisterOutput{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       domain.Gender(input.Gender),
	}

	if err := account.Validate(); err != nil {
		logger.Error("Account validation error during registration")
		return RegisterOutput{}, err
	}

	created, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		// Two concurrent registrations race at the unique index; the loser
		// gets the same error as a plain duplicate.
		logger.Error("Repository error creating account:", err)
		return RegisterOutput{}, err
	}

	s.sendActivationMail(created)

	return RegisterOutput{
		ID:      created.ID.String(),
		Email:   created.Email,
		Message: "Please confirm your email address to complete the registration",
	}, nil
}

func (s *AuthService) sendActivationMail(account *domain.Account) {
	activationToken, err := s.tokens.Issue(token.AccountState{
		ID:           account.ID,
		IsActive:     account.IsActive,
		PasswordHash: account.PasswordHash,
		LastLogin:    account.LastLogin,
	})
	if err != nil {
		logger.Error("Failed to issue activation token:", err)
		return
	}

	link := fmt.Sprintf("%s/activate/%s/%s", s.appUrl, account.ID.String(), activationToken)
	body := "link: " + link
	s.mailer.SendMailAsync(account.Email, "Activate your account", body, "account-activation")
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginOutput, error) {
	email := domain.NormalizeEmail(input.Email)

	attempts, err := s.cache.Get(email)
	if err == nil {
		if attempts.(int) >= domain.MaxLoginAttempts {
			logger.Error("Rate limit exceeded for login attempts")
			return LoginOutput{}, domain.ErrTooManyLoginAttempts
		}
	}

	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		logger.Error("Repository error fetching account:", err)
		return LoginOutput{}, domain.ErrInvalidCredentials
	}

	passwordMatch, err := password.ComparePassword(account.PasswordHash, input.Password)
	if err != nil {
		return LoginOutput{}, domain.ErrInvalidCredentials
	}

	if !passwordMatch {
		currentAttempts := 1
		if attempts != nil {
			currentAttempts = attempts.(int) + 1
		}

		if err := s.cache.Set(email, currentAttempts); err != nil {
			logger.Error("Cache error updating login attempts")
		}

		return LoginOutput{}, domain.ErrInvalidCredentials
	}

	if !account.IsActive && !s.allowInactiveLogin {
		// The handler collapses this into the generic credential failure so
		// the response does not reveal whether the account exists or is
		// merely unactivated.
		logger.Info("Login rejected for inactive account", "account_id", account.ID.String())
		return LoginOutput{}, domain.ErrAccountInactive
	}

	s.cache.Remove(email)

	if err := s.repo.UpdateLastLogin(ctx, account.ID); err != nil {
		logger.Error("Failed to update last login timestamp:", err)
	}

	fresh, err := domain.GenerateSecureToken()
	if err != nil {
		logger.Error("Failed to generate session token:", err)
		return LoginOutput{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	sessionToken, err := s.repo.GetOrCreateSessionToken(ctx, account.ID, fresh)
	if err != nil {
		logger.Error("Failed to store session token")
		return LoginOutput{}, fmt.Errorf("failed to store session token: %w", err)
	}

	return LoginOutput{
		Token:  sessionToken,
		UserID: account.ID.String(),
	}, nil
}

func (s *AuthService) Activate(ctx context.Context, accountID string, raw string) (ActivateOutput, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return ActivateOutput{}, domain.ErrAccountNotFound
	}

	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return ActivateOutput{}, err
	}

	if account.IsActive {
		return ActivateOutput{Message: "already activated"}, domain.ErrAlreadyActive
	}

	valid := s.tokens.Verify(token.AccountState{
		ID:           account.ID,
		IsActive:     account.IsActive,
		PasswordHash: account.PasswordHash,
		LastLogin:    account.LastLogin,
	}, raw)
	if !valid {
		return ActivateOutput{}, domain.ErrInvalidActivation
	}

	if err := s.repo.ActivateAccount(ctx, account.ID); err != nil {
		logger.Error("Failed to activate account:", err)
		return ActivateOutput{}, fmt.Errorf("failed to activate account: %w", err)
	}

	return ActivateOutput{
		Message: "Thank you for your email confirmation. Now you can login your account.",
	}, nil
}

// EnsureAdminAccount provisions the bootstrap superuser if it does not exist
// yet. Races with a concurrent insert are benign: the duplicate-email error
// means someone else already created it.
func (s *AuthService) EnsureAdminAccount(ctx context.Context, input RegisterInput) error {
	email := domain.NormalizeEmail(input.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin account existence: %w", err)
	}
	if exists {
		return nil
	}

	hashedPassword, err := password.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       domain.Gender(input.Gender),
	}

	if err := account.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.CreateAdminAccount(ctx, account); err != nil {
		if err == domain.ErrEmailTaken {
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("Bootstrap admin account created", "email", account.Email)
	return nil
}
