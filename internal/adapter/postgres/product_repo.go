package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO products
		(vendor_id, category_id, name, slug, description, price, stock, in_stock, discount)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		product.VendorID, product.CategoryID, product.Name, product.Slug,
		product.Description, product.Price, product.Stock, product.InStock, product.Discount,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return repository.ErrDuplicateSlug
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET
		category_id = NULLIF($2, '')::uuid, name = $3, slug = $4,
		description = NULLIF($5, ''), price = $6, stock = $7,
		in_stock = $8, discount = $9, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query,
		product.ID, product.CategoryID, product.Name, product.Slug,
		product.Description, product.Price, product.Stock, product.InStock, product.Discount)
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

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const productColumns = `p.id, p.vendor_id, COALESCE(p.category_id::text, ''), p.name, p.slug,
	COALESCE(p.description, ''), p.price, p.stock, p.in_stock, p.discount,
	p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.VendorID, &p.CategoryID, &p.Name, &p.Slug,
		&p.Description, &p.Price, &p.Stock, &p.InStock, &p.Discount,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	p, err := scanProduct(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int64, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Name != "" {
		where = append(where, "p.name ILIKE "+arg("%"+filter.Name+"%"))
	}
	if filter.Category != "" {
		where = append(where, `p.category_id IN
			(SELECT id FROM categories WHERE title ILIKE `+arg("%"+filter.Category+"%")+`)`)
	}
	if filter.MinPrice > 0 {
		where = append(where, "p.price >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		where = append(where, "p.price <= "+arg(filter.MaxPrice))
	}
	if filter.InStock != nil {
		where = append(where, "p.in_stock = "+arg(*filter.InStock))
	}
	if filter.VendorID != "" {
		where = append(where, "p.vendor_id = "+arg(filter.VendorID))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := `SELECT count(*) FROM products p` + clause
	if err := r.db.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	limit, offset := filter.Window()
	query := `SELECT ` + productColumns + ` FROM products p` + clause +
		` ORDER BY p.created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.db.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	for _, p := range products {
		if err := r.loadImages(ctx, p); err != nil {
			return nil, 0, err
		}
	}
	return products, total, nil
}

func (r *ProductRepository) loadImages(ctx context.Context, p *entity.Product) error {
	rows, err := r.db.conn(ctx).Query(ctx,
		`SELECT id, product_id, image_url FROM product_images WHERE product_id = $1`, p.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		p.Images = append(p.Images, img)
	}
	return rows.Err()
}

func (r *ProductRepository) CountImages(ctx context.Context, productID string) (int, error) {
	var count int
	err := r.db.conn(ctx).QueryRow(ctx,
		`SELECT count(*) FROM product_images WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) AddImages(ctx context.Context, productID string, urls []string) ([]entity.ProductImage, error) {
	images := make([]entity.ProductImage, 0, len(urls))
	for _, url := range urls {
		img := entity.ProductImage{ProductID: productID, ImageURL: url}
		err := r.db.conn(ctx).QueryRow(ctx,
			`INSERT INTO product_images (product_id, image_url) VALUES ($1, $2) RETURNING id`,
			productID, url).Scan(&img.ID)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}
