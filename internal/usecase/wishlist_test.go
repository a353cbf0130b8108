package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/repository"
)

func newWishlistFixture() (*MockWishlistRepository, *MockProductRepository, WishlistUsecase) {
	wishlist := new(MockWishlistRepository)
	products := new(MockProductRepository)
	uc := NewWishlistUsecase(wishlist, products, logger.NewNoOp())
	return wishlist, products, uc
}

func TestWishlist_Add_DuplicatePairConflicts(t *testing.T) {
	wishlist, products, uc := newWishlistFixture()
	ctx := context.Background()

	products.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1"}, nil)
	wishlist.On("Create", ctx, mock.AnythingOfType("*entity.WishlistItem")).Return(repository.ErrDuplicateEntry)

	err := uc.Add(ctx, "c1", "p1")
	assertKind(t, err, KindConflict)
}

func TestWishlist_Remove_MissingEntry(t *testing.T) {
	wishlist, _, uc := newWishlistFixture()
	ctx := context.Background()

	wishlist.On("DeleteByProduct", ctx, "c1", "p1").Return(repository.ErrNotFound)

	err := uc.Remove(ctx, "c1", "p1")
	assertKind(t, err, KindNotFound)
}

func TestWishlist_AddAndRemove(t *testing.T) {
	wishlist, products, uc := newWishlistFixture()
	ctx := context.Background()

	products.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1"}, nil)
	wishlist.On("Create", ctx, mock.AnythingOfType("*entity.WishlistItem")).Return(nil)
	wishlist.On("DeleteByProduct", ctx, "c1", "p1").Return(nil)

	require.NoError(t, uc.Add(ctx, "c1", "p1"))
	require.NoError(t, uc.Remove(ctx, "c1", "p1"))
	wishlist.AssertExpectations(t)
}
