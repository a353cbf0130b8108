package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	query := `INSERT INTO profiles (user_id, address, avatar_url)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id, created_at, updated_at`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		profile.UserID, profile.Address, profile.AvatarURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row when the profile already
		// exists, which is fine for the repair path.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	query := `SELECT id, user_id, COALESCE(address, ''), COALESCE(avatar_url, ''),
		created_at, updated_at
		FROM profiles WHERE user_id = $1`

	p := &entity.Profile{}
	err := r.db.conn(ctx).QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Address, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	query := `UPDATE profiles SET
		address = NULLIF($2, ''), avatar_url = NULLIF($3, ''), updated_at = now()
		WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query, profile.ID, profile.Address, profile.AvatarURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
