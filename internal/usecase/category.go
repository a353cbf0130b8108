package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/repository"
)

type CategoryUsecase interface {
	Create(ctx context.Context, title string) (*entity.Category, error)
	Update(ctx context.Context, id, title string) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}

type categoryUsecase struct {
	categories repository.CategoryRepository
	log        logger.Logger
}

func NewCategoryUsecase(categories repository.CategoryRepository, log logger.Logger) CategoryUsecase {
	return &categoryUsecase{categories: categories, log: log}
}

func (u *categoryUsecase) Create(ctx context.Context, title string) (*entity.Category, error) {
	if title == "" {
		return nil, validationf("title is required")
	}

	category := &entity.Category{Title: title, Slug: entity.Slugify(title)}
	if err := u.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, conflictf("a category with this title already exists")
		}
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	u.log.Infof("Category created: %s", category.Slug)
	return category, nil
}

func (u *categoryUsecase) Update(ctx context.Context, id, title string) (*entity.Category, error) {
	if title == "" {
		return nil, validationf("title is required")
	}

	category, err := u.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("category not found")
		}
		return nil, fmt.Errorf("could not load category: %w", err)
	}

	category.Title = title
	category.Slug = entity.Slugify(title)
	if err := u.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, conflictf("a category with this title already exists")
		}
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	return category, nil
}

func (u *categoryUsecase) Delete(ctx context.Context, id string) error {
	if err := u.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundf("category not found")
		}
		return fmt.Errorf("could not delete category: %w", err)
	}
	return nil
}

func (u *categoryUsecase) Get(ctx context.Context, id string) (*entity.Category, error) {
	category, err := u.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("category not found")
		}
		return nil, fmt.Errorf("could not load category: %w", err)
	}
	return category, nil
}

func (u *categoryUsecase) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := u.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	return categories, nil
}
