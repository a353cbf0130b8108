package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/platform/metrics"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/Maron09/Product-Store/internal/token"
)

type authFixture struct {
	users       *MockUserRepository
	profiles    *MockProfileRepository
	otps        *MockOTPRepository
	resetTokens *MockResetTokenRepository
	blacklist   *MockBlacklist
	mail        *MockMailer
	events      *MockPublisher
	tokens      *token.Manager
	usecase     AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:       new(MockUserRepository),
		profiles:    new(MockProfileRepository),
		otps:        new(MockOTPRepository),
		resetTokens: new(MockResetTokenRepository),
		blacklist:   new(MockBlacklist),
		mail:        new(MockMailer),
		events:      new(MockPublisher),
		tokens:      token.NewManager("test-secret", 15*time.Minute, 24*time.Hour),
	}
	f.usecase = NewAuthUsecase(
		f.users, f.profiles, f.otps, f.resetTokens,
		passthroughTxManager{}, f.tokens, f.blacklist, f.mail, f.events,
		metrics.NewManager("test"), logger.NewNoOp(), "http://localhost:8080",
	)
	return f
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, kind, uerr.Kind)
}

func TestAuth_Register_CreatesInactiveAccountWithProfileAndOTP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.users.On("GetByEmail", ctx, "jane@example.com").Return(nil, repository.ErrNotFound)
	f.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	f.profiles.On("Create", ctx, mock.AnythingOfType("*entity.Profile")).Return(nil)
	f.otps.On("Replace", ctx, mock.AnythingOfType("*entity.EmailOTP")).Return(nil)
	f.mail.On("SendOTP", "jane@example.com", mock.AnythingOfType("string")).Return(nil)
	f.events.On("Publish", ctx, mock.AnythingOfType("nats.AccountRegistered")).Return(nil)

	result, err := f.usecase.Register(ctx, RegisterInput{
		Role:            entity.RoleCustomer,
		Email:           "JANE@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "jane",
		LastName:        "doe",
	})
	require.NoError(t, err)
	assert.False(t, result.OTPResent)
	assert.False(t, result.User.IsActive)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.Equal(t, "Jane", result.User.FirstName)
	assert.NotEqual(t, "secret123", result.User.PasswordHash)

	f.users.AssertExpectations(t)
	f.profiles.AssertExpectations(t)
	f.otps.AssertExpectations(t)
	f.mail.AssertExpectations(t)
}

func TestAuth_Register_InactiveDuplicateResendsOTP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	existing := &entity.User{ID: "u1", Email: "jane@example.com", IsActive: false}
	f.users.On("GetByEmail", ctx, "jane@example.com").Return(existing, nil)
	f.otps.On("Replace", ctx, mock.AnythingOfType("*entity.EmailOTP")).Return(nil)
	f.mail.On("SendOTP", "jane@example.com", mock.AnythingOfType("string")).Return(nil)

	result, err := f.usecase.Register(ctx, RegisterInput{
		Role:  entity.RoleCustomer,
		Email: "jane@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.OTPResent)
	assert.Equal(t, "u1", result.User.ID)

	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.otps.AssertExpectations(t)
}

func TestAuth_Register_ActiveDuplicateConflicts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	existing := &entity.User{ID: "u1", Email: "jane@example.com", IsActive: true}
	f.users.On("GetByEmail", ctx, "jane@example.com").Return(existing, nil)

	_, err := f.usecase.Register(ctx, RegisterInput{Role: entity.RoleCustomer, Email: "jane@example.com"})
	assertKind(t, err, KindConflict)
}

func TestAuth_Register_PasswordMismatch(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.users.On("GetByEmail", ctx, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := f.usecase.Register(ctx, RegisterInput{
		Role:            entity.RoleCustomer,
		Email:           "jane@example.com",
		Password:        "one",
		ConfirmPassword: "two",
	})
	assertKind(t, err, KindValidation)
}

func TestAuth_Register_VendorRequiresBusinessName(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.users.On("GetByEmail", ctx, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := f.usecase.Register(ctx, RegisterInput{
		Role:            entity.RoleVendor,
		Email:           "shop@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	assertKind(t, err, KindValidation)
}

func TestAuth_VerifyAccount_UnknownCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.otps.On("GetByCode", ctx, "123456").Return(nil, repository.ErrNotFound)

	err := f.usecase.VerifyAccount(ctx, "123456")
	assertKind(t, err, KindNotFound)
}

func TestAuth_VerifyAccount_ExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	otp := &entity.EmailOTP{UserID: "u1", Code: "123456", CreatedAt: time.Now().Add(-6 * time.Minute)}
	f.otps.On("GetByCode", ctx, "123456").Return(otp, nil)
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)

	err := f.usecase.VerifyAccount(ctx, "123456")
	assertKind(t, err, KindValidation)
	assert.Equal(t, "OTP has expired", err.Error())
}

func TestAuth_VerifyAccount_AlreadyActive(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	otp := &entity.EmailOTP{UserID: "u1", Code: "123456", CreatedAt: time.Now()}
	f.otps.On("GetByCode", ctx, "123456").Return(otp, nil)
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", IsActive: true}, nil)

	err := f.usecase.VerifyAccount(ctx, "123456")
	assertKind(t, err, KindValidation)
	assert.Equal(t, "account is already active", err.Error())
}

func TestAuth_VerifyAccount_ExpiredCodeForActiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	// Expiry is reported even when the account is already active.
	otp := &entity.EmailOTP{UserID: "u1", Code: "123456", CreatedAt: time.Now().Add(-6 * time.Minute)}
	f.otps.On("GetByCode", ctx, "123456").Return(otp, nil)
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", IsActive: true}, nil)

	err := f.usecase.VerifyAccount(ctx, "123456")
	assertKind(t, err, KindValidation)
	assert.Equal(t, "OTP has expired", err.Error())
}

func TestAuth_VerifyAccount_ActivatesAndConsumesOTP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	otp := &entity.EmailOTP{UserID: "u1", Code: "123456", CreatedAt: time.Now()}
	f.otps.On("GetByCode", ctx, "123456").Return(otp, nil)
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Email: "jane@example.com"}, nil)
	f.users.On("Activate", ctx, "u1").Return(nil)
	f.otps.On("DeleteByUserID", ctx, "u1").Return(nil)
	f.events.On("Publish", ctx, mock.AnythingOfType("nats.AccountVerified")).Return(nil)

	err := f.usecase.VerifyAccount(ctx, "123456")
	require.NoError(t, err)

	f.users.AssertExpectations(t)
	f.otps.AssertExpectations(t)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	user := &entity.User{ID: "u1", Email: "jane@example.com", PasswordHash: string(hash), IsActive: true}
	f.users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	_, err := f.usecase.Login(ctx, "jane@example.com", "wrong")
	assertKind(t, err, KindAuthentication)
}

func TestAuth_Login_InactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &entity.User{ID: "u1", Email: "jane@example.com", PasswordHash: string(hash), IsActive: false}
	f.users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	_, err := f.usecase.Login(ctx, "jane@example.com", "secret123")
	assertKind(t, err, KindAuthentication)
}

func TestAuth_Login_IssuesTokenPair(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &entity.User{ID: "u1", Email: "jane@example.com", PasswordHash: string(hash), IsActive: true, Role: entity.RoleCustomer}
	f.users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	result, err := f.usecase.Login(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	claims, err := f.tokens.Parse(result.Tokens.AccessToken, token.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestAuth_Logout_BlacklistsRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.tokens.GeneratePair("u1", entity.RoleCustomer)
	require.NoError(t, err)

	f.blacklist.On("Contains", ctx, mock.AnythingOfType("string")).Return(false, nil)
	f.blacklist.On("Add", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

	require.NoError(t, f.usecase.Logout(ctx, pair.RefreshToken))
	f.blacklist.AssertExpectations(t)
}

func TestAuth_Logout_RejectsRevokedToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.tokens.GeneratePair("u1", entity.RoleCustomer)
	require.NoError(t, err)

	f.blacklist.On("Contains", ctx, mock.AnythingOfType("string")).Return(true, nil)

	err = f.usecase.Logout(ctx, pair.RefreshToken)
	assertKind(t, err, KindValidation)
}

func TestAuth_Logout_RejectsGarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.usecase.Logout(context.Background(), "not-a-token")
	assertKind(t, err, KindValidation)
}

func TestAuth_Refresh_RotatesPair(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.tokens.GeneratePair("u1", entity.RoleVendor)
	require.NoError(t, err)

	f.blacklist.On("Contains", ctx, mock.AnythingOfType("string")).Return(false, nil)
	f.blacklist.On("Add", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

	fresh, err := f.usecase.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	claims, err := f.tokens.Parse(fresh.AccessToken, token.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendor, claims.Role)
	f.blacklist.AssertExpectations(t)
}

func TestAuth_Refresh_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)

	pair, err := f.tokens.GeneratePair("u1", entity.RoleCustomer)
	require.NoError(t, err)

	_, err = f.usecase.Refresh(context.Background(), pair.AccessToken)
	assertKind(t, err, KindAuthentication)
}

func TestAuth_RequestPasswordReset_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

	err := f.usecase.RequestPasswordReset(ctx, "ghost@example.com")
	assertKind(t, err, KindValidation)
}

func TestAuth_RequestPasswordReset_MailsResetLink(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := &entity.User{ID: "u1", Email: "jane@example.com", IsActive: true}
	f.users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	var issued string
	f.resetTokens.On("Create", ctx, mock.AnythingOfType("*entity.PasswordResetToken")).
		Run(func(args mock.Arguments) {
			issued = args.Get(1).(*entity.PasswordResetToken).Token
		}).Return(nil)
	f.mail.On("SendPasswordReset", "jane@example.com", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, f.usecase.RequestPasswordReset(ctx, "jane@example.com"))
	require.NotEmpty(t, issued)

	f.mail.AssertCalled(t, "SendPasswordReset", "jane@example.com", "http://localhost:8080/api/reset_password/"+issued)
}

func TestAuth_ResetPassword_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	stored := &entity.PasswordResetToken{UserID: "u1", Token: "tok", CreatedAt: time.Now().Add(-31 * time.Minute)}
	f.resetTokens.On("GetByToken", ctx, "tok").Return(stored, nil)

	err := f.usecase.ResetPassword(ctx, "tok", "newpass1", "newpass1")
	assertKind(t, err, KindValidation)
}

func TestAuth_ResetPassword_DeletesAllTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	stored := &entity.PasswordResetToken{UserID: "u1", Token: "tok", CreatedAt: time.Now()}
	f.resetTokens.On("GetByToken", ctx, "tok").Return(stored, nil)
	f.users.On("UpdatePassword", ctx, "u1", mock.AnythingOfType("string")).Return(nil)
	f.resetTokens.On("DeleteByUserID", ctx, "u1").Return(nil)

	require.NoError(t, f.usecase.ResetPassword(ctx, "tok", "newpass1", "newpass1"))
	f.resetTokens.AssertExpectations(t)
	f.users.AssertExpectations(t)
}
