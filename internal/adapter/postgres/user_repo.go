package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name,
	COALESCE(phone_number, ''), role, COALESCE(business_name, ''),
	is_active, is_staff, is_admin, is_superuser, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Role, &u.BusinessName,
		&u.IsActive, &u.IsStaff, &u.IsAdmin, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Normalize()

	query := `INSERT INTO users
		(email, password_hash, first_name, last_name, phone_number, role, business_name)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''))
		RETURNING id, is_active, created_at, updated_at`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.PhoneNumber, user.Role, user.BusinessName,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`
	return scanUser(r.db.conn(ctx).QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.conn(ctx).QueryRow(ctx, query, id))
}

func (r *UserRepository) Activate(ctx context.Context, id string) error {
	query := `UPDATE users SET is_active = TRUE, updated_at = now() WHERE id = $1`
	tag, err := r.db.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	user.Normalize()

	query := `UPDATE users SET
		first_name = $2, last_name = $3, phone_number = NULLIF($4, ''),
		business_name = NULLIF($5, ''), updated_at = now()
		WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.PhoneNumber, user.BusinessName)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.conn(ctx).Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
