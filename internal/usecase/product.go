package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/adapter/messaging/nats"
	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/platform/metrics"
	"github.com/Maron09/Product-Store/internal/repository"
)

// ImageStorage uploads image bytes and returns the stored object's URL.
type ImageStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

type ProductInput struct {
	Name        string
	CategoryID  string
	Description string
	Price       float64
	Stock       int
	Discount    bool
}

// ImageFile is one uploaded file from a multipart request.
type ImageFile struct {
	Name string
	Data []byte
}

type ProductList struct {
	Items []*entity.Product
	Total int64
}

type ProductUsecase interface {
	Create(ctx context.Context, vendorID string, input ProductInput) (*entity.Product, error)
	Update(ctx context.Context, vendorID, productID string, input ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, vendorID, productID string) error
	Get(ctx context.Context, productID string) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) (*ProductList, error)
	UploadImages(ctx context.Context, vendorID, productID string, files []ImageFile) ([]entity.ProductImage, error)
}

type productUsecase struct {
	products repository.ProductRepository
	storage  ImageStorage
	events   EventPublisher
	metrics  *metrics.Manager
	log      logger.Logger
}

func NewProductUsecase(
	products repository.ProductRepository,
	storage ImageStorage,
	events EventPublisher,
	m *metrics.Manager,
	log logger.Logger,
) ProductUsecase {
	return &productUsecase{products: products, storage: storage, events: events, metrics: m, log: log}
}

func (u *productUsecase) Create(ctx context.Context, vendorID string, input ProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, validationf("name is required")
	}
	if input.Price < 0 {
		return nil, validationf("price must not be negative")
	}

	product := &entity.Product{
		VendorID:    vendorID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        entity.Slugify(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		InStock:     input.Stock > 0,
		Discount:    input.Discount,
	}
	if err := u.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, conflictf("a product with this name already exists")
		}
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	u.metrics.ProductsCreatedTotal.Inc()
	if u.events != nil {
		if err := u.events.Publish(ctx, nats.ProductCreated{
			ProductID: product.ID,
			VendorID:  vendorID,
			Name:      product.Name,
		}); err != nil {
			u.log.Warnf("Failed to publish product event: %v", err)
		}
	}
	u.log.Infof("Product created: %s by vendor %s", product.Slug, vendorID)
	return product, nil
}

// ownedProduct loads a product and enforces that only the creating
// vendor may mutate it.
func (u *productUsecase) ownedProduct(ctx context.Context, vendorID, productID string) (*entity.Product, error) {
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("product not found")
		}
		return nil, fmt.Errorf("could not load product: %w", err)
	}
	if product.VendorID != vendorID {
		return nil, permissionf("you do not own this product")
	}
	return product, nil
}

func (u *productUsecase) Update(ctx context.Context, vendorID, productID string, input ProductInput) (*entity.Product, error) {
	product, err := u.ownedProduct(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, validationf("name is required")
	}
	if input.Price < 0 {
		return nil, validationf("price must not be negative")
	}

	product.Name = input.Name
	product.Slug = entity.Slugify(input.Name)
	product.CategoryID = input.CategoryID
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.InStock = input.Stock > 0
	product.Discount = input.Discount

	if err := u.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, conflictf("a product with this name already exists")
		}
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	return product, nil
}

func (u *productUsecase) Delete(ctx context.Context, vendorID, productID string) error {
	if _, err := u.ownedProduct(ctx, vendorID, productID); err != nil {
		return err
	}
	if err := u.products.Delete(ctx, productID); err != nil {
		return fmt.Errorf("could not delete product: %w", err)
	}
	return nil
}

func (u *productUsecase) Get(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("product not found")
		}
		return nil, fmt.Errorf("could not load product: %w", err)
	}
	return product, nil
}

func (u *productUsecase) List(ctx context.Context, filter entity.ProductFilter) (*ProductList, error) {
	items, total, err := u.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	return &ProductList{Items: items, Total: total}, nil
}

func (u *productUsecase) UploadImages(ctx context.Context, vendorID, productID string, files []ImageFile) ([]entity.ProductImage, error) {
	if len(files) == 0 {
		return nil, validationf("no images supplied")
	}
	if _, err := u.ownedProduct(ctx, vendorID, productID); err != nil {
		return nil, err
	}

	existing, err := u.products.CountImages(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("could not count images: %w", err)
	}
	remaining := entity.MaxImagesPerProduct - existing
	if len(files) > remaining {
		return nil, validationf("image limit exceeded: you can upload %d more image(s)", remaining)
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := u.storage.Upload(ctx, f.Name, f.Data)
		if err != nil {
			return nil, fmt.Errorf("could not upload image %s: %w", f.Name, err)
		}
		urls = append(urls, url)
	}

	images, err := u.products.AddImages(ctx, productID, urls)
	if err != nil {
		return nil, fmt.Errorf("could not save images: %w", err)
	}
	u.log.Infof("Uploaded %d image(s) for product %s", len(images), productID)
	return images, nil
}
