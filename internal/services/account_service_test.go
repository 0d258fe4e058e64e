package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/request_models"
	mem "smilecare/pkg/memcache"
	"smilecare/pkg/utils"
)

func newAccountFixture() (*stubUserRepo, *stubMailer, *mem.ResetTokens, AccountServiceInterface) {
	userRepo := newStubUserRepo()
	mailer := &stubMailer{}
	tokens := mem.NewResetTokens()
	return userRepo, mailer, tokens, NewAccountService(userRepo, mailer, tokens)
}

func seedUser(t *testing.T, userRepo *stubUserRepo, email, password string, role db_models.UserRole, active bool) *db_models.User {
	t.Helper()
	user := &db_models.User{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		Name:      "Seed User",
		Email:     email,
		Role:      role,
		Active:    active,
	}
	if password != "" {
		hash, err := utils.HashPassword(password)
		require.NoError(t, err)
		user.PasswordHash = &hash
	}
	require.NoError(t, userRepo.Insert(context.Background(), user))
	return user
}

func TestLoginHappyPath(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userRepo, _, _, accounts := newAccountFixture()
	seedUser(t, userRepo, "ops@clinic.test", "hunter22", db_models.RoleAdmin, true)

	token, account, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ops@clinic.test",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ADMIN", account.Role)

	claims := utils.DecodeSessionToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, "ops@clinic.test", claims.Email)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, _, _, accounts := newAccountFixture()

	_, _, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "nobody@clinic.test",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo, _, _, accounts := newAccountFixture()
	seedUser(t, userRepo, "ops@clinic.test", "hunter22", db_models.RoleAdmin, true)

	_, _, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ops@clinic.test",
		Password: "hunter23",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	userRepo, _, _, accounts := newAccountFixture()
	seedUser(t, userRepo, "ops@clinic.test", "hunter22", db_models.RoleAdmin, false)

	_, _, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ops@clinic.test",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, utils.ErrAccountInactive)
}

func TestLoginPendingOnboarding(t *testing.T) {
	userRepo, _, _, accounts := newAccountFixture()
	seedUser(t, userRepo, "ana@clinic.test", "", db_models.RoleDoctor, true)

	_, _, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ana@clinic.test",
		Password: "anything",
	})
	assert.ErrorIs(t, err, utils.ErrPasswordNotSet)
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	userRepo, mailer, _, accounts := newAccountFixture()
	seedUser(t, userRepo, "ops@clinic.test", "hunter22", db_models.RoleAdmin, true)

	assert.NoError(t, accounts.ForgotPassword(context.Background(), "nobody@clinic.test"))
	assert.Empty(t, mailer.sent)

	assert.NoError(t, accounts.ForgotPassword(context.Background(), "ops@clinic.test"))
	require.Len(t, mailer.sent, 1)
	assert.NotEmpty(t, mailer.sent[0].Token)
}

func TestForgotPasswordSkipsPendingAccounts(t *testing.T) {
	userRepo, mailer, _, accounts := newAccountFixture()
	seedUser(t, userRepo, "ana@clinic.test", "", db_models.RoleDoctor, true)

	assert.NoError(t, accounts.ForgotPassword(context.Background(), "ana@clinic.test"))
	assert.Empty(t, mailer.sent)
}

func TestResetPasswordFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userRepo, mailer, _, accounts := newAccountFixture()
	seedUser(t, userRepo, "ops@clinic.test", "hunter22", db_models.RoleAdmin, true)

	require.NoError(t, accounts.ForgotPassword(context.Background(), "ops@clinic.test"))
	require.Len(t, mailer.sent, 1)
	token := mailer.sent[0].Token

	require.NoError(t, accounts.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       token,
		NewPassword: "br4ndnewpass",
	}))

	_, _, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ops@clinic.test",
		Password: "br4ndnewpass",
	})
	assert.NoError(t, err)

	// The token is single-use.
	err = accounts.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       token,
		NewPassword: "anotherpass",
	})
	assert.ErrorIs(t, err, utils.ErrResetTokenInvalid)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	_, _, _, accounts := newAccountFixture()

	err := accounts.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       "bogus",
		NewPassword: "whatever123",
	})
	assert.ErrorIs(t, err, utils.ErrResetTokenInvalid)
}

func TestEnsureAdminAccountCreatesFirstAdmin(t *testing.T) {
	userRepo, _, _, accounts := newAccountFixture()

	require.NoError(t, EnsureAdminAccount(context.Background(), userRepo, "Ops", "ops@clinic.test", "hunter22"))

	user, err := userRepo.FindByEmail(context.Background(), "ops@clinic.test")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, db_models.RoleAdmin, user.Role)
	assert.True(t, user.Active)

	t.Setenv("JWT_SECRET", "test-secret")
	_, account, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ops@clinic.test",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", account.Role)
}

func TestEnsureAdminAccountLeavesExistingUntouched(t *testing.T) {
	userRepo, _, _, _ := newAccountFixture()
	seeded := seedUser(t, userRepo, "ops@clinic.test", "original", db_models.RoleAdmin, true)

	require.NoError(t, EnsureAdminAccount(context.Background(), userRepo, "Ops", "ops@clinic.test", "different"))

	user, err := userRepo.FindByEmail(context.Background(), "ops@clinic.test")
	require.NoError(t, err)
	require.NotNil(t, user.PasswordHash)
	assert.NoError(t, utils.ComparePasswords(*user.PasswordHash, "original"))
	assert.Equal(t, seeded.ID, user.ID)
}

func TestEnsureAdminAccountRejectsWeakPassword(t *testing.T) {
	userRepo, _, _, _ := newAccountFixture()

	err := EnsureAdminAccount(context.Background(), userRepo, "Ops", "ops@clinic.test", "short")
	assert.ErrorIs(t, err, utils.ErrWeakPassword)

	user, findErr := userRepo.FindByEmail(context.Background(), "ops@clinic.test")
	require.NoError(t, findErr)
	assert.Nil(t, user)
}

func TestCurrentUser(t *testing.T) {
	userRepo, _, _, accounts := newAccountFixture()
	user := seedUser(t, userRepo, "ops@clinic.test", "hunter22", db_models.RoleAdmin, true)

	account, err := accounts.CurrentUser(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), account.ID)

	_, err = accounts.CurrentUser(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}
