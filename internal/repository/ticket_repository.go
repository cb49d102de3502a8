package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-response/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so read helpers
// can run against either.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TicketFilter captures list-view filters.
type TicketFilter struct {
	Status *domain.TicketStatus
}

// TicketUpdate holds the mutable fields a transition may change. Nil
// fields are left untouched.
type TicketUpdate struct {
	Status              *domain.TicketStatus
	Severity            *domain.TicketSeverity
	Tier                *domain.ResponderTier
	AssignedResponderID *string
}

// TicketRepository encapsulates ticket persistence. Mutations take the
// open transaction handle so the engine can compose them atomically with
// lifecycle writes; reads use the ambient pool when tx is nil.
type TicketRepository interface {
	Create(ctx context.Context, tx pgx.Tx, ticket *domain.Ticket) error
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter, page, limit int) ([]domain.TicketSummary, int64, error)
	Update(ctx context.Context, tx pgx.Tx, ticketID string, update TicketUpdate) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) q(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}

func (r *ticketRepository) Create(ctx context.Context, tx pgx.Tx, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_id, title, type, description, status, severity, tier, location,
            reporter_name, victim_information, contact_information, attachments, internal_notes,
            created_by_kind, created_by_id, created_by_role, assigned_responder_id, category_id, sub_category_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING created_at, updated_at`
	var assignedID *string
	if ticket.AssignedResponder != nil {
		assignedID = &ticket.AssignedResponder.ID
	}
	return r.q(tx).QueryRow(ctx, query,
		ticket.TicketID,
		ticket.Title,
		ticket.Type,
		ticket.Description,
		ticket.Status,
		ticket.Severity,
		ticket.Tier,
		ticket.Location,
		ticket.ReporterName,
		ticket.VictimInformation,
		ticket.ContactInformation,
		ticket.Attachments,
		ticket.InternalNotes,
		ticket.CreatedBy.Kind,
		ticket.CreatedBy.ID,
		ticket.CreatedBy.Role,
		assignedID,
		ticket.CategoryID,
		ticket.SubCategoryID,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
}

const ticketColumns = `
        t.ticket_id, t.title, t.type, t.description, t.status, t.severity, t.tier, t.location,
        t.reporter_name, t.victim_information, t.contact_information, t.attachments, t.internal_notes,
        t.created_by_kind, t.created_by_id, t.created_by_role, t.assigned_responder_id,
        t.category_id, t.sub_category_id, t.created_at, t.updated_at`

func (r *ticketRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	query := `
        SELECT` + ticketColumns + `, r.name, r.tier
        FROM tickets t
        LEFT JOIN responders r ON r.responder_id = t.assigned_responder_id
        WHERE t.ticket_id=$1`
	return scanTicket(r.pool.QueryRow(ctx, query, ticketID), true)
}

// GetForUpdate locks the ticket row for the duration of the enclosing
// transaction so concurrent transitions serialize on it.
func (r *ticketRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error) {
	query := `
        SELECT` + ticketColumns + `
        FROM tickets t
        WHERE t.ticket_id=$1
        FOR UPDATE`
	return scanTicket(r.q(tx).QueryRow(ctx, query, ticketID), false)
}

func scanTicket(row pgx.Row, withResponder bool) (*domain.Ticket, error) {
	var (
		ticket        domain.Ticket
		assignedID    *string
		responderName *string
		responderTier *domain.ResponderTier
	)
	dest := []any{
		&ticket.TicketID,
		&ticket.Title,
		&ticket.Type,
		&ticket.Description,
		&ticket.Status,
		&ticket.Severity,
		&ticket.Tier,
		&ticket.Location,
		&ticket.ReporterName,
		&ticket.VictimInformation,
		&ticket.ContactInformation,
		&ticket.Attachments,
		&ticket.InternalNotes,
		&ticket.CreatedBy.Kind,
		&ticket.CreatedBy.ID,
		&ticket.CreatedBy.Role,
		&assignedID,
		&ticket.CategoryID,
		&ticket.SubCategoryID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	}
	if withResponder {
		dest = append(dest, &responderName, &responderTier)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if assignedID != nil {
		ref := domain.ResponderRef{ID: *assignedID}
		if responderName != nil {
			ref.Name = *responderName
		}
		switch {
		case ticket.Tier != nil:
			ref.Tier = *ticket.Tier
		case responderTier != nil:
			ref.Tier = *responderTier
		}
		ticket.AssignedResponder = &ref
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter, page, limit int) ([]domain.TicketSummary, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM tickets WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`
        SELECT ticket_id, title, status, severity, tier, category_id, sub_category_id, created_at, updated_at
        FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.TicketSummary
	for rows.Next() {
		var summary domain.TicketSummary
		if err := rows.Scan(
			&summary.TicketID,
			&summary.Title,
			&summary.Status,
			&summary.Severity,
			&summary.Tier,
			&summary.CategoryID,
			&summary.SubCategoryID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, summary)
	}
	return result, total, rows.Err()
}

func (r *ticketRepository) Update(ctx context.Context, tx pgx.Tx, ticketID string, update TicketUpdate) error {
	sets := []string{}
	args := []any{}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if update.Severity != nil {
		args = append(args, *update.Severity)
		sets = append(sets, fmt.Sprintf("severity=$%d", len(args)))
	}
	if update.Tier != nil {
		args = append(args, *update.Tier)
		sets = append(sets, fmt.Sprintf("tier=$%d", len(args)))
	}
	if update.AssignedResponderID != nil {
		args = append(args, *update.AssignedResponderID)
		sets = append(sets, fmt.Sprintf("assigned_responder_id=$%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, ticketID)
	query := fmt.Sprintf("UPDATE tickets SET %s WHERE ticket_id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.q(tx).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
