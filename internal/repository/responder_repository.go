package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-response/internal/domain"
)

// ResponderFilter defines query params for responder listing.
type ResponderFilter struct {
	Tier   *domain.ResponderTier
	Active *bool
	Online *bool
	Limit  int
	Offset int
}

// ResponderRepository handles persistence for incident responders.
type ResponderRepository interface {
	Create(ctx context.Context, responder *domain.Responder) error
	Update(ctx context.Context, responder *domain.Responder) error
	GetByResponderID(ctx context.Context, responderID string) (*domain.Responder, error)
	List(ctx context.Context, filter ResponderFilter) ([]domain.Responder, error)
}

type responderRepository struct {
	pool *pgxpool.Pool
}

// NewResponderRepository instantiates the repository.
func NewResponderRepository(pool *pgxpool.Pool) ResponderRepository {
	return &responderRepository{pool: pool}
}

func (r *responderRepository) Create(ctx context.Context, responder *domain.Responder) error {
	const query = `
        INSERT INTO responders (responder_id, name, tier, active, online, last_seen)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		responder.ResponderID,
		responder.Name,
		responder.Tier,
		responder.Active,
		responder.Online,
		responder.LastSeen,
	).Scan(&responder.CreatedAt, &responder.UpdatedAt)
}

func (r *responderRepository) Update(ctx context.Context, responder *domain.Responder) error {
	const query = `
        UPDATE responders SET name=$1, tier=$2, active=$3, online=$4, last_seen=$5, updated_at=NOW()
        WHERE responder_id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		responder.Name,
		responder.Tier,
		responder.Active,
		responder.Online,
		responder.LastSeen,
		responder.ResponderID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const responderColumns = "responder_id, name, tier, active, online, last_seen, created_at, updated_at"

func (r *responderRepository) GetByResponderID(ctx context.Context, responderID string) (*domain.Responder, error) {
	query := "SELECT " + responderColumns + " FROM responders WHERE responder_id=$1"
	var responder domain.Responder
	if err := r.pool.QueryRow(ctx, query, responderID).Scan(
		&responder.ResponderID,
		&responder.Name,
		&responder.Tier,
		&responder.Active,
		&responder.Online,
		&responder.LastSeen,
		&responder.CreatedAt,
		&responder.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &responder, nil
}

func (r *responderRepository) List(ctx context.Context, filter ResponderFilter) ([]domain.Responder, error) {
	query := "SELECT " + responderColumns + " FROM responders"
	args := []any{}
	clauses := []string{}

	if filter.Tier != nil {
		args = append(args, *filter.Tier)
		clauses = append(clauses, fmt.Sprintf("tier=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active=$%d", len(args)))
	}
	if filter.Online != nil {
		args = append(args, *filter.Online)
		clauses = append(clauses, fmt.Sprintf("online=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Responder
	for rows.Next() {
		var responder domain.Responder
		if err := rows.Scan(
			&responder.ResponderID,
			&responder.Name,
			&responder.Tier,
			&responder.Active,
			&responder.Online,
			&responder.LastSeen,
			&responder.CreatedAt,
			&responder.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, responder)
	}
	return result, rows.Err()
}
