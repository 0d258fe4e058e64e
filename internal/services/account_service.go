package services

import (
	"context"
	"log"
	"time"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/request_models"
	"smilecare/internal/models/response_models"
	"smilecare/internal/repositories"
	mem "smilecare/pkg/memcache"
	"smilecare/pkg/utils"
)

const resetTokenTTL = 30 * time.Minute

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, *response_models.AccountResponse, error)
	CurrentUser(ctx context.Context, id string) (*response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
}

type AccountService struct {
	userRepo    repositories.UserRepository
	mailService IMailService
	resetTokens mem.ResetTokenStore
}

func NewAccountService(userRepo repositories.UserRepository, mailService IMailService, resetTokens mem.ResetTokenStore) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		mailService: mailService,
		resetTokens: resetTokens,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, *response_models.AccountResponse, error) {
	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}
	if user == nil {
		return "", nil, utils.ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, utils.ErrAccountInactive
	}
	// Accounts created through the invite flow have no password until the
	// OTP exchange completes; send those callers to setup instead of
	// treating any guess as a failed login.
	if user.PasswordHash == nil {
		return "", nil, utils.ErrPasswordNotSet
	}

	if err := utils.ComparePasswords(*user.PasswordHash, request.Password); err != nil {
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateSessionToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return "", nil, utils.ErrInvalidCredentials
	}

	return token, toAccountResponse(user), nil
}

func (a *AccountService) CurrentUser(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	user, err := a.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return toAccountResponse(user), nil
}

// ForgotPassword always reports success so the endpoint cannot be used to
// probe which emails have accounts. Only credentialed, active accounts get a
// token; pending-onboarding accounts are covered by the OTP resend path.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil || !user.Active || user.PasswordHash == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, user.Email, resetTokenTTL)

	if err := a.mailService.SendPasswordResetMail(user.Email, token); err != nil {
		log.Printf("password reset mail to %s failed: %v", user.Email, err)
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" {
		return utils.ErrResetTokenInvalid
	}
	if len(request.NewPassword) < 6 {
		return utils.ErrWeakPassword
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = &hashed

	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// EnsureAdminAccount idempotently creates the bootstrap ADMIN user. Every
// privileged operation requires an existing admin session, so the first
// admin must come from configuration at startup rather than an API call.
// An existing account with the email is left untouched.
func EnsureAdminAccount(ctx context.Context, userRepo repositories.UserRepository, name, email, password string) error {
	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return nil
	}
	if len(password) < 6 {
		return utils.ErrWeakPassword
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrDatabaseError
	}
	admin := &db_models.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hashed,
		Role:         db_models.RoleAdmin,
		Active:       true,
	}
	if err := userRepo.Insert(ctx, admin); err != nil {
		return utils.ErrDatabaseError
	}
	log.Printf("bootstrap admin account created for %s", email)
	return nil
}

func toAccountResponse(user *db_models.User) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:     user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
		Active: user.Active,
	}
}
