package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
)

type storer interface {
	createBrand(ctx context.Context, brand *Brand) error
	createCategory(ctx context.Context, category *Category) error
	findAllBrands(ctx context.Context) ([]*Brand, error)
	findAllCategories(ctx context.Context) ([]*Category, error)
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createBrand(ctx context.Context, req *CreateBrandRequest) (*Brand, error) {
	brand := &Brand{BrandName: strings.TrimSpace(req.BrandName)}

	if err := s.store.createBrand(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

func (s *service) createCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	category := &Category{CategoryName: strings.TrimSpace(req.CategoryName)}

	if err := s.store.createCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *service) getAllBrands(ctx context.Context) ([]*Brand, error) {
	brands, err := s.store.findAllBrands(ctx)
	if err != nil {
		return nil, err
	}

	if len(brands) == 0 {
		return nil, fmt.Errorf("%w: no brands found", servererrors.ErrResourceNotFound)
	}

	return brands, nil
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.store.findAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories found", servererrors.ErrResourceNotFound)
	}

	return categories, nil
}
