package entity

import "time"

// CartItem is one (customer, product) row. The pair is unique; adding a
// product already in the cart increments Quantity instead.
type CartItem struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Product is populated on reads so totals can be computed.
	Product *Product
}

// TotalPrice is quantity times the current unit price. It is derived at
// read time and never stored.
func (c *CartItem) TotalPrice() float64 {
	if c.Product == nil {
		return 0
	}
	return c.Product.Price * float64(c.Quantity)
}
