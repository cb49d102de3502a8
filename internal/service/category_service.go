package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// CategoryService manages the incident taxonomy.
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*domain.TicketCategory, error)
	CreateSubCategory(ctx context.Context, categoryID, name string) (*domain.TicketSubCategory, error)
	ListCategories(ctx context.Context) ([]domain.TicketCategory, error)
	ListSubCategories(ctx context.Context, categoryID string) ([]domain.TicketSubCategory, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*domain.TicketCategory, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	category := &domain.TicketCategory{Name: name}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

func (s *categoryService) CreateSubCategory(ctx context.Context, categoryID, name string) (*domain.TicketSubCategory, error) {
	if categoryID == "" || name == "" {
		return nil, apperrors.NewValidationError("category id and name are required", nil)
	}
	if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": categoryID})
		}
		return nil, apperrors.MapError(err)
	}
	sub := &domain.TicketSubCategory{CategoryID: categoryID, Name: name}
	if err := s.categories.CreateSubCategory(ctx, sub); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sub, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.TicketCategory, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

func (s *categoryService) ListSubCategories(ctx context.Context, categoryID string) ([]domain.TicketSubCategory, error) {
	subs, err := s.categories.ListSubCategories(ctx, categoryID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return subs, nil
}
