package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `INSERT INTO categories (title, slug)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.conn(ctx).QueryRow(ctx, query, category.Title, category.Slug).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return repository.ErrDuplicateSlug
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `UPDATE categories SET title = $2, slug = $3, updated_at = now() WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query, category.ID, category.Title, category.Slug)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return repository.ErrDuplicateSlug
		}
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, title, slug, created_at, updated_at FROM categories WHERE id = $1`

	c := &entity.Category{}
	err := r.db.conn(ctx).QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT id, title, slug, created_at, updated_at FROM categories ORDER BY title`

	rows, err := r.db.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		c := &entity.Category{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
