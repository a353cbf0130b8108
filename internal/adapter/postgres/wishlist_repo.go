package postgres

import (
	"context"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/repository"
)

type WishlistRepository struct {
	db *DB
}

func NewWishlistRepository(db *DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) ListByCustomer(ctx context.Context, customerID string) ([]*entity.WishlistItem, error) {
	query := `SELECT w.id, w.customer_id, w.product_id, w.created_at, ` + productColumns + `
		FROM wishlist_items w JOIN products p ON p.id = w.product_id
		WHERE w.customer_id = $1 ORDER BY w.created_at DESC`

	rows, err := r.db.conn(ctx).Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*entity.WishlistItem
	for rows.Next() {
		item := &entity.WishlistItem{Product: &entity.Product{}}
		p := item.Product
		err := rows.Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.CreatedAt,
			&p.ID, &p.VendorID, &p.CategoryID, &p.Name, &p.Slug,
			&p.Description, &p.Price, &p.Stock, &p.InStock, &p.Discount,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *WishlistRepository) Create(ctx context.Context, item *entity.WishlistItem) error {
	query := `INSERT INTO wishlist_items (customer_id, product_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.conn(ctx).QueryRow(ctx, query, item.CustomerID, item.ProductID).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *WishlistRepository) DeleteByProduct(ctx context.Context, customerID, productID string) error {
	tag, err := r.db.conn(ctx).Exec(ctx,
		`DELETE FROM wishlist_items WHERE customer_id = $1 AND product_id = $2`,
		customerID, productID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
