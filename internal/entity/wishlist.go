package entity

import "time"

// WishlistItem is one saved (customer, product) pair; the pair is unique.
type WishlistItem struct {
	ID         string
	CustomerID string
	ProductID  string
	CreatedAt  time.Time

	Product *Product
}
