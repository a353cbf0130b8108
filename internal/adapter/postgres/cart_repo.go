package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/jackc/pgx/v5"
)

type CartRepository struct {
	db *DB
}

func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{db: db}
}

const cartColumns = `c.id, c.customer_id, c.product_id, c.quantity, c.created_at, c.updated_at,
	` + productColumns

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	item := &entity.CartItem{Product: &entity.Product{}}
	p := item.Product
	err := row.Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
		&p.ID, &p.VendorID, &p.CategoryID, &p.Name, &p.Slug,
		&p.Description, &p.Price, &p.Stock, &p.InStock, &p.Discount,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *CartRepository) ListByCustomer(ctx context.Context, customerID string) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + `
		FROM cart_items c JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1 ORDER BY c.created_at`

	rows, err := r.db.conn(ctx).Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepository) GetByID(ctx context.Context, id, customerID string) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + `
		FROM cart_items c JOIN products p ON p.id = c.product_id
		WHERE c.id = $1 AND c.customer_id = $2`
	return scanCartItem(r.db.conn(ctx).QueryRow(ctx, query, id, customerID))
}

func (r *CartRepository) GetByProduct(ctx context.Context, customerID, productID string) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + `
		FROM cart_items c JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1 AND c.product_id = $2`
	return scanCartItem(r.db.conn(ctx).QueryRow(ctx, query, customerID, productID))
}

func (r *CartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	query := `INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.conn(ctx).QueryRow(ctx, query, item.CustomerID, item.ProductID, item.Quantity).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.conn(ctx).Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
