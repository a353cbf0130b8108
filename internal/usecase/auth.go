package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Maron09/Product-Store/internal/adapter/messaging/nats"
	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/mailer"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/platform/metrics"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/Maron09/Product-Store/internal/token"
)

// TokenBlacklist records revoked refresh-token IDs until their expiry.
type TokenBlacklist interface {
	Add(ctx context.Context, tokenID string, ttl time.Duration) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}

// EventPublisher is the fire-and-forget side of the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event nats.Event) error
}

type RegisterInput struct {
	Role            entity.Role
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	PhoneNumber     string
	BusinessName    string
}

type RegisterResult struct {
	User *entity.User
	// OTPResent reports that an inactive account already existed and a
	// fresh code was mailed instead of creating a new account.
	OTPResent bool
}

type LoginResult struct {
	User   *entity.User
	Tokens *token.Pair
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	VerifyAccount(ctx context.Context, code string) error
	RequestNewOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*token.Pair, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error
}

type authUsecase struct {
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	otps        repository.OTPRepository
	resetTokens repository.ResetTokenRepository
	txManager   repository.TxManager
	tokens      *token.Manager
	blacklist   TokenBlacklist
	mail        mailer.Mailer
	events      EventPublisher
	metrics     *metrics.Manager
	log         logger.Logger
	baseURL     string
}

func NewAuthUsecase(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	otps repository.OTPRepository,
	resetTokens repository.ResetTokenRepository,
	txManager repository.TxManager,
	tokens *token.Manager,
	blacklist TokenBlacklist,
	mail mailer.Mailer,
	events EventPublisher,
	m *metrics.Manager,
	log logger.Logger,
	baseURL string,
) AuthUsecase {
	return &authUsecase{
		users:       users,
		profiles:    profiles,
		otps:        otps,
		resetTokens: resetTokens,
		txManager:   txManager,
		tokens:      tokens,
		blacklist:   blacklist,
		mail:        mail,
		events:      events,
		metrics:     m,
		log:         log,
		baseURL:     baseURL,
	}
}

func (u *authUsecase) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	user := &entity.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		Role:         input.Role,
		BusinessName: input.BusinessName,
	}
	user.Normalize()

	existing, err := u.users.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("could not check existing account: %w", err)
	}
	if existing != nil {
		if existing.IsActive {
			return nil, conflictf("an account with this email already exists")
		}
		// Inactive re-register is a recovery path: resend the code
		// instead of failing.
		if err := u.issueOTP(ctx, existing); err != nil {
			return nil, err
		}
		u.log.Infof("OTP resent for inactive account %s", existing.Email)
		return &RegisterResult{User: existing, OTPResent: true}, nil
	}

	if input.Password == "" || input.Password != input.ConfirmPassword {
		return nil, validationf("passwords do not match")
	}
	if input.Role == entity.RoleVendor && user.BusinessName == "" {
		return nil, validationf("business name is required for vendors")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	err = u.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return conflictf("an account with this email already exists")
			}
			return fmt.Errorf("could not create account: %w", err)
		}
		if err := u.profiles.Create(ctx, &entity.Profile{UserID: user.ID}); err != nil {
			return fmt.Errorf("could not create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.issueOTP(ctx, user); err != nil {
		return nil, err
	}

	u.metrics.RegistrationsTotal.Inc()
	u.publish(ctx, nats.AccountRegistered{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
	})
	u.log.Infof("Account registered: %s (%s)", user.Email, user.Role)
	return &RegisterResult{User: user}, nil
}

// issueOTP replaces the user's outstanding code and mails the new one.
func (u *authUsecase) issueOTP(ctx context.Context, user *entity.User) error {
	code, err := entity.GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("could not generate OTP: %w", err)
	}
	if err := u.otps.Replace(ctx, &entity.EmailOTP{UserID: user.ID, Code: code}); err != nil {
		return fmt.Errorf("could not store OTP: %w", err)
	}
	if err := u.mail.SendOTP(user.Email, code); err != nil {
		// Delivery failures must not roll back the account; the client
		// can re-request a code.
		u.log.Errorf("Failed to send OTP mail to %s: %v", user.Email, err)
	}
	return nil
}

func (u *authUsecase) VerifyAccount(ctx context.Context, code string) error {
	err := u.txManager.WithinTx(ctx, func(ctx context.Context) error {
		otp, err := u.otps.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundf("OTP not found")
			}
			return fmt.Errorf("could not look up OTP: %w", err)
		}

		user, err := u.users.GetByID(ctx, otp.UserID)
		if err != nil {
			return fmt.Errorf("could not load account: %w", err)
		}
		if !otp.IsValid(time.Now()) {
			return validationf("OTP has expired")
		}
		if user.IsActive {
			return validationf("account is already active")
		}

		if err := u.users.Activate(ctx, user.ID); err != nil {
			return fmt.Errorf("could not activate account: %w", err)
		}
		if err := u.otps.DeleteByUserID(ctx, user.ID); err != nil {
			return fmt.Errorf("could not delete OTP: %w", err)
		}

		u.publish(ctx, nats.AccountVerified{
			UserID: user.ID,
			Email:  user.Email,
		})
		return nil
	})
	if err != nil {
		return err
	}

	u.metrics.VerificationsTotal.Inc()
	return nil
}

func (u *authUsecase) RequestNewOTP(ctx context.Context, email string) error {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundf("no account found with this email")
		}
		return fmt.Errorf("could not look up account: %w", err)
	}
	return u.issueOTP(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, authenticationf("invalid email or password")
		}
		return nil, fmt.Errorf("could not look up account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, authenticationf("invalid email or password")
	}
	if !user.IsActive {
		return nil, authenticationf("account is not active")
	}

	pair, err := u.tokens.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("could not issue tokens: %w", err)
	}

	u.metrics.LoginsTotal.Inc()
	u.log.Infof("Login: %s", user.Email)
	return &LoginResult{User: user, Tokens: pair}, nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	claims, err := u.tokens.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, authenticationf("refresh token is invalid or expired")
	}
	revoked, err := u.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("could not check token blacklist: %w", err)
	}
	if revoked {
		return nil, authenticationf("refresh token is invalid or expired")
	}

	pair, err := u.tokens.GeneratePair(claims.UserID, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("could not issue tokens: %w", err)
	}
	// Rotate: the old refresh token must not mint another pair.
	if err := u.blacklist.Add(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return nil, fmt.Errorf("could not revoke old refresh token: %w", err)
	}
	return pair, nil
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := u.tokens.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return validationf("refresh token is invalid or expired")
	}
	revoked, err := u.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("could not check token blacklist: %w", err)
	}
	if revoked {
		return validationf("refresh token is invalid or expired")
	}
	if err := u.blacklist.Add(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return fmt.Errorf("could not revoke refresh token: %w", err)
	}
	u.log.Infof("Logout: user %s", claims.UserID)
	return nil
}

func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return validationf("no account found with this email")
		}
		return fmt.Errorf("could not look up account: %w", err)
	}

	resetToken := &entity.PasswordResetToken{
		UserID: user.ID,
		Token:  uuid.NewString(),
	}
	if err := u.resetTokens.Create(ctx, resetToken); err != nil {
		return fmt.Errorf("could not create reset token: %w", err)
	}

	link := fmt.Sprintf("%s/api/reset_password/%s", u.baseURL, resetToken.Token)
	if err := u.mail.SendPasswordReset(user.Email, link); err != nil {
		u.log.Errorf("Failed to send reset mail to %s: %v", user.Email, err)
	}
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if newPassword == "" || newPassword != confirmPassword {
		return validationf("passwords do not match")
	}

	return u.txManager.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := u.resetTokens.GetByToken(ctx, resetToken)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return validationf("reset token is invalid or expired")
			}
			return fmt.Errorf("could not look up reset token: %w", err)
		}
		if stored.IsExpired(time.Now()) {
			return validationf("reset token is invalid or expired")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("could not hash password: %w", err)
		}
		if err := u.users.UpdatePassword(ctx, stored.UserID, string(hash)); err != nil {
			return fmt.Errorf("could not update password: %w", err)
		}
		if err := u.resetTokens.DeleteByUserID(ctx, stored.UserID); err != nil {
			return fmt.Errorf("could not delete reset tokens: %w", err)
		}
		u.log.Infof("Password reset for user %s", stored.UserID)
		return nil
	})
}

func (u *authUsecase) publish(ctx context.Context, event nats.Event) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, event); err != nil {
		u.log.Warnf("Failed to publish %s event: %v", event.Subject(), err)
	}
}
