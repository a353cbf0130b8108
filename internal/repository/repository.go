package repository

import (
	"context"

	"github.com/Maron09/Product-Store/internal/entity"
)

// TxManager runs fn inside a single database transaction. Repositories
// called with the ctx passed to fn share that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Activate(ctx context.Context, id string) error
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}

type OTPRepository interface {
	// Replace removes any code the user holds and stores the new one.
	Replace(ctx context.Context, otp *entity.EmailOTP) error
	GetByCode(ctx context.Context, code string) (*entity.EmailOTP, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type ResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int64, error)
	CountImages(ctx context.Context, productID string) (int, error)
	AddImages(ctx context.Context, productID string, urls []string) ([]entity.ProductImage, error)
}

type CartRepository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.CartItem, error)
	GetByID(ctx context.Context, id, customerID string) (*entity.CartItem, error)
	GetByProduct(ctx context.Context, customerID, productID string) (*entity.CartItem, error)
	Create(ctx context.Context, item *entity.CartItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}

type WishlistRepository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.WishlistItem, error)
	Create(ctx context.Context, item *entity.WishlistItem) error
	DeleteByProduct(ctx context.Context, customerID, productID string) error
}
