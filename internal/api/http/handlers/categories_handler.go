package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-response/internal/api/dto"
	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/service"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// CategoriesHandler exposes the incident taxonomy endpoints.
type CategoriesHandler struct {
	categories service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// CreateCategory POST /categories.
func (h *CategoriesHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.categories.CreateCategory(c.UserContext(), strings.TrimSpace(req.Name))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": categoryResponse(category)})
}

// CreateSubCategory POST /categories/:categoryId/sub-categories.
func (h *CategoriesHandler) CreateSubCategory(c *fiber.Ctx) error {
	var req dto.CreateSubCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sub, err := h.categories.CreateSubCategory(c.UserContext(), c.Params("categoryId"), strings.TrimSpace(req.Name))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": subCategoryResponse(sub)})
}

// ListCategories GET /categories.
func (h *CategoriesHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListSubCategories GET /categories/:categoryId/sub-categories.
func (h *CategoriesHandler) ListSubCategories(c *fiber.Ctx) error {
	subs, err := h.categories.ListSubCategories(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	items := make([]dto.SubCategoryResponse, 0, len(subs))
	for i := range subs {
		items = append(items, subCategoryResponse(&subs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func categoryResponse(category *domain.TicketCategory) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}

func subCategoryResponse(sub *domain.TicketSubCategory) dto.SubCategoryResponse {
	return dto.SubCategoryResponse{
		ID:         sub.ID,
		CategoryID: sub.CategoryID,
		Name:       sub.Name,
		CreatedAt:  sub.CreatedAt,
	}
}
