package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/repository"
)

type CartView struct {
	Items      []*entity.CartItem
	GrandTotal float64
}

type CartUsecase interface {
	Get(ctx context.Context, customerID string) (*CartView, error)
	GetItem(ctx context.Context, customerID, itemID string) (*entity.CartItem, error)
	Add(ctx context.Context, customerID, productID string, quantity int) (*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, customerID, itemID string, quantity int) (*entity.CartItem, error)
	Remove(ctx context.Context, customerID, itemID string) error
}

type cartUsecase struct {
	carts     repository.CartRepository
	products  repository.ProductRepository
	txManager repository.TxManager
	log       logger.Logger
}

func NewCartUsecase(
	carts repository.CartRepository,
	products repository.ProductRepository,
	txManager repository.TxManager,
	log logger.Logger,
) CartUsecase {
	return &cartUsecase{carts: carts, products: products, txManager: txManager, log: log}
}

func (u *cartUsecase) Get(ctx context.Context, customerID string) (*CartView, error) {
	items, err := u.carts.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("could not list cart items: %w", err)
	}

	view := &CartView{Items: items}
	for _, item := range items {
		view.GrandTotal += item.TotalPrice()
	}
	return view, nil
}

func (u *cartUsecase) GetItem(ctx context.Context, customerID, itemID string) (*entity.CartItem, error) {
	item, err := u.carts.GetByID(ctx, itemID, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("cart item not found")
		}
		return nil, fmt.Errorf("could not load cart item: %w", err)
	}
	return item, nil
}

func (u *cartUsecase) Add(ctx context.Context, customerID, productID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, validationf("quantity must be at least 1")
	}

	if _, err := u.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("product not found")
		}
		return nil, fmt.Errorf("could not load product: %w", err)
	}

	err := u.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := u.carts.GetByProduct(ctx, customerID, productID)
		if err == nil {
			// Same (customer, product) pair: bump the quantity instead
			// of creating a second row.
			return u.carts.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("could not check cart: %w", err)
		}

		createErr := u.carts.Create(ctx, &entity.CartItem{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   quantity,
		})
		if errors.Is(createErr, repository.ErrDuplicateEntry) {
			// Lost a concurrent race; fold into the winner's row.
			existing, err := u.carts.GetByProduct(ctx, customerID, productID)
			if err != nil {
				return fmt.Errorf("could not resolve cart conflict: %w", err)
			}
			return u.carts.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity)
		}
		return createErr
	})
	if err != nil {
		return nil, err
	}

	item, err := u.carts.GetByProduct(ctx, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("could not load cart item: %w", err)
	}
	return item, nil
}

func (u *cartUsecase) UpdateQuantity(ctx context.Context, customerID, itemID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, validationf("quantity must be at least 1")
	}

	item, err := u.carts.GetByID(ctx, itemID, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("cart item not found")
		}
		return nil, fmt.Errorf("could not load cart item: %w", err)
	}

	if err := u.carts.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("could not update cart item: %w", err)
	}
	item.Quantity = quantity
	return item, nil
}

func (u *cartUsecase) Remove(ctx context.Context, customerID, itemID string) error {
	if _, err := u.carts.GetByID(ctx, itemID, customerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundf("cart item not found")
		}
		return fmt.Errorf("could not load cart item: %w", err)
	}
	if err := u.carts.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("could not remove cart item: %w", err)
	}
	return nil
}
