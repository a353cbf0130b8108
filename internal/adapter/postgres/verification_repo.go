package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/jackc/pgx/v5"
)

type OTPRepository struct {
	db *DB
}

func NewOTPRepository(db *DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Replace(ctx context.Context, otp *entity.EmailOTP) error {
	// One code per user; re-issue overwrites, which invalidates the old
	// code immediately rather than waiting for expiry.
	query := `INSERT INTO email_otps (user_id, code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET code = EXCLUDED.code, created_at = now()
		RETURNING id, created_at`

	err := r.db.conn(ctx).QueryRow(ctx, query, otp.UserID, otp.Code).
		Scan(&otp.ID, &otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *OTPRepository) GetByCode(ctx context.Context, code string) (*entity.EmailOTP, error) {
	query := `SELECT id, user_id, code, created_at FROM email_otps WHERE code = $1`

	o := &entity.EmailOTP{}
	err := r.db.conn(ctx).QueryRow(ctx, query, code).
		Scan(&o.ID, &o.UserID, &o.Code, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *OTPRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM email_otps WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type ResetTokenRepository struct {
	db *DB
}

func NewResetTokenRepository(db *DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	query := `INSERT INTO password_reset_tokens (user_id, token)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.conn(ctx).QueryRow(ctx, query, token.UserID, token.Token).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ResetTokenRepository) GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	query := `SELECT id, user_id, token, created_at
		FROM password_reset_tokens WHERE token = $1`

	t := &entity.PasswordResetToken{}
	err := r.db.conn(ctx).QueryRow(ctx, query, token).
		Scan(&t.ID, &t.UserID, &t.Token, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *ResetTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM password_reset_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
