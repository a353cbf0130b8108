package httpserver

import (
	"time"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/usecase"
)

type userView struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Role         string    `json:"role"`
	BusinessName string    `json:"business_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func newUserView(u *entity.User) userView {
	return userView{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PhoneNumber:  u.PhoneNumber,
		Role:         u.Role.String(),
		BusinessName: u.BusinessName,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

type profileView struct {
	User      userView `json:"user"`
	Address   string   `json:"address,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
}

func newProfileView(v *usecase.ProfileView) profileView {
	return profileView{
		User:      newUserView(v.User),
		Address:   v.Profile.Address,
		AvatarURL: v.Profile.AvatarURL,
	}
}

type categoryView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func newCategoryView(c *entity.Category) categoryView {
	return categoryView{ID: c.ID, Title: c.Title, Slug: c.Slug}
}

func newCategoryViews(categories []*entity.Category) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, newCategoryView(c))
	}
	return views
}

type productImageView struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

type productView struct {
	ID          string             `json:"id"`
	VendorID    string             `json:"vendor_id"`
	CategoryID  string             `json:"category_id,omitempty"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description,omitempty"`
	Price       float64            `json:"price"`
	Stock       int                `json:"stock"`
	InStock     bool               `json:"in_stock"`
	Discount    bool               `json:"discount"`
	Images      []productImageView `json:"images"`
	CreatedAt   time.Time          `json:"created_at"`
}

func newProductView(p *entity.Product) productView {
	images := make([]productImageView, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, productImageView{ID: img.ID, ImageURL: img.ImageURL})
	}
	return productView{
		ID:          p.ID,
		VendorID:    p.VendorID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.InStock,
		Discount:    p.Discount,
		Images:      images,
		CreatedAt:   p.CreatedAt,
	}
}

type productListView struct {
	Items []productView `json:"items"`
	Total int64         `json:"total"`
}

func newProductListView(list *usecase.ProductList) productListView {
	items := make([]productView, 0, len(list.Items))
	for _, p := range list.Items {
		items = append(items, newProductView(p))
	}
	return productListView{Items: items, Total: list.Total}
}

type cartItemView struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`

	ProductName string  `json:"product_name,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
}

func newCartItemView(item *entity.CartItem) cartItemView {
	view := cartItemView{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice(),
	}
	if item.Product != nil {
		view.ProductName = item.Product.Name
		view.UnitPrice = item.Product.Price
	}
	return view
}

type cartView struct {
	Items      []cartItemView `json:"items"`
	GrandTotal float64        `json:"grand_total"`
}

func newCartView(v *usecase.CartView) cartView {
	items := make([]cartItemView, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, newCartItemView(item))
	}
	return cartView{Items: items, GrandTotal: v.GrandTotal}
}

type wishlistItemView struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

func newWishlistViews(items []*entity.WishlistItem) []wishlistItemView {
	views := make([]wishlistItemView, 0, len(items))
	for _, item := range items {
		view := wishlistItemView{ID: item.ID, ProductID: item.ProductID}
		if item.Product != nil {
			view.ProductName = item.Product.Name
			view.Price = item.Product.Price
		}
		views = append(views, view)
	}
	return views
}
