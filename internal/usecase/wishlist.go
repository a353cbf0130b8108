package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/repository"
)

type WishlistUsecase interface {
	List(ctx context.Context, customerID string) ([]*entity.WishlistItem, error)
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
}

type wishlistUsecase struct {
	wishlist repository.WishlistRepository
	products repository.ProductRepository
	log      logger.Logger
}

func NewWishlistUsecase(
	wishlist repository.WishlistRepository,
	products repository.ProductRepository,
	log logger.Logger,
) WishlistUsecase {
	return &wishlistUsecase{wishlist: wishlist, products: products, log: log}
}

func (u *wishlistUsecase) List(ctx context.Context, customerID string) ([]*entity.WishlistItem, error) {
	items, err := u.wishlist.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("could not list wishlist: %w", err)
	}
	return items, nil
}

func (u *wishlistUsecase) Add(ctx context.Context, customerID, productID string) error {
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundf("product not found")
		}
		return fmt.Errorf("could not load product: %w", err)
	}

	err := u.wishlist.Create(ctx, &entity.WishlistItem{CustomerID: customerID, ProductID: productID})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return conflictf("product is already in your wishlist")
		}
		return fmt.Errorf("could not add to wishlist: %w", err)
	}
	return nil
}

func (u *wishlistUsecase) Remove(ctx context.Context, customerID, productID string) error {
	if err := u.wishlist.DeleteByProduct(ctx, customerID, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundf("product is not in your wishlist")
		}
		return fmt.Errorf("could not remove from wishlist: %w", err)
	}
	return nil
}
