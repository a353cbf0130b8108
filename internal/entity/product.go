package entity

import "time"

// MaxImagesPerProduct caps how many images a product may carry in total,
// counting both already stored images and any incoming batch.
const MaxImagesPerProduct = 5

type Product struct {
	ID          string
	VendorID    string
	CategoryID  string
	Name        string
	Slug        string
	Description string
	Price       float64
	Stock       int
	InStock     bool
	Discount    bool
	Images      []ProductImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductImage struct {
	ID        string
	ProductID string
	ImageURL  string
}

// ProductFilter mirrors the catalog query surface: substring matches on
// name and category title, a price range, and the stock flag.
type ProductFilter struct {
	Name     string
	Category string
	MinPrice float64
	MaxPrice float64
	InStock  *bool
	VendorID string

	// Pagination. Page-number style applies when Page > 0 (or when
	// neither Limit nor Offset is set); limit/offset style applies when
	// both Limit and Offset are present.
	Page     int
	PageSize int
	Limit    int
	Offset   int
	HasLimit bool
}

// Window resolves the filter's pagination fields to a concrete
// limit/offset pair.
func (f *ProductFilter) Window() (limit, offset int) {
	if f.HasLimit {
		limit, offset = f.Limit, f.Offset
		if limit < 1 {
			limit = 10
		}
		if offset < 0 {
			offset = 0
		}
		return limit, offset
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = 10
	}
	return size, (page - 1) * size
}
