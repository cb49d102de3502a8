package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-response/internal/domain"
)

// CategoryRepository manages the incident taxonomy.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.TicketCategory) error
	CreateSubCategory(ctx context.Context, sub *domain.TicketSubCategory) error
	GetCategory(ctx context.Context, id string) (*domain.TicketCategory, error)
	ListCategories(ctx context.Context) ([]domain.TicketCategory, error)
	ListSubCategories(ctx context.Context, categoryID string) ([]domain.TicketSubCategory, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository instantiates the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *domain.TicketCategory) error {
	const query = `INSERT INTO ticket_categories (name) VALUES ($1) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, category.Name).Scan(&category.ID, &category.CreatedAt)
}

func (r *categoryRepository) CreateSubCategory(ctx context.Context, sub *domain.TicketSubCategory) error {
	const query = `
        INSERT INTO ticket_sub_categories (category_id, name)
        VALUES ($1,$2) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, sub.CategoryID, sub.Name).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *categoryRepository) GetCategory(ctx context.Context, id string) (*domain.TicketCategory, error) {
	const query = `SELECT id, name, created_at FROM ticket_categories WHERE id=$1`
	var category domain.TicketCategory
	if err := r.pool.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]domain.TicketCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM ticket_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketCategory
	for rows.Next() {
		var category domain.TicketCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) ListSubCategories(ctx context.Context, categoryID string) ([]domain.TicketSubCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, category_id, name, created_at FROM ticket_sub_categories WHERE category_id=$1 ORDER BY name`,
		categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketSubCategory
	for rows.Next() {
		var sub domain.TicketSubCategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}
