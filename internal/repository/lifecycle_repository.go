package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-response/internal/domain"
)

// LifecycleFilter narrows global lifecycle queries, e.g. all escalations.
type LifecycleFilter struct {
	Action *domain.TicketStatus
}

// LifecycleRepository stores the append-only audit trail. Entries are
// write-once: there is deliberately no update or delete operation.
type LifecycleRepository interface {
	Append(ctx context.Context, tx pgx.Tx, entry *domain.LifecycleEntry) error
	ListByTicket(ctx context.Context, ticketID string, page, limit int) ([]domain.LifecycleEntry, int64, error)
	ListAll(ctx context.Context, filter LifecycleFilter, page, limit int) ([]domain.LifecycleEntry, int64, error)
}

type lifecycleRepository struct {
	pool *pgxpool.Pool
}

// NewLifecycleRepository builds the repository.
func NewLifecycleRepository(pool *pgxpool.Pool) LifecycleRepository {
	return &lifecycleRepository{pool: pool}
}

func (r *lifecycleRepository) q(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}

func (r *lifecycleRepository) Append(ctx context.Context, tx pgx.Tx, entry *domain.LifecycleEntry) error {
	const query = `
        INSERT INTO ticket_lifecycle (ticket_id, action, performed_by_kind, performed_by_id, performed_by_role, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.q(tx).QueryRow(ctx, query,
		entry.TicketID,
		entry.Action,
		entry.PerformedBy.Kind,
		entry.PerformedBy.ID,
		entry.PerformedBy.Role,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *lifecycleRepository) ListByTicket(ctx context.Context, ticketID string, page, limit int) ([]domain.LifecycleEntry, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM ticket_lifecycle WHERE ticket_id=$1", ticketID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`
        SELECT id, ticket_id, action, performed_by_kind, performed_by_id, performed_by_role, notes, created_at
        FROM ticket_lifecycle WHERE ticket_id=$1
        ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	entries, err := scanLifecycleEntries(rows)
	return entries, total, err
}

func (r *lifecycleRepository) ListAll(ctx context.Context, filter LifecycleFilter, page, limit int) ([]domain.LifecycleEntry, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		clauses = append(clauses, fmt.Sprintf("action=$%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM ticket_lifecycle WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`
        SELECT id, ticket_id, action, performed_by_kind, performed_by_id, performed_by_role, notes, created_at
        FROM ticket_lifecycle WHERE %s
        ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	entries, err := scanLifecycleEntries(rows)
	return entries, total, err
}

func scanLifecycleEntries(rows pgx.Rows) ([]domain.LifecycleEntry, error) {
	var result []domain.LifecycleEntry
	for rows.Next() {
		var entry domain.LifecycleEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.Action,
			&entry.PerformedBy.Kind,
			&entry.PerformedBy.ID,
			&entry.PerformedBy.Role,
			&entry.Notes,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
