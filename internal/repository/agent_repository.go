package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-response/internal/domain"
)

// AgentFilter defines query params for agent listing.
type AgentFilter struct {
	Active *bool
	Limit  int
	Offset int
}

// AgentRepository handles persistence for field agents.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByAgentID(ctx context.Context, agentID string) (*domain.Agent, error)
	SetActive(ctx context.Context, agentID string, active bool) error
	List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error)
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agents (agent_id, active)
        VALUES ($1,$2)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query, agent.AgentID, agent.Active).
		Scan(&agent.CreatedAt, &agent.UpdatedAt)
}

func (r *agentRepository) GetByAgentID(ctx context.Context, agentID string) (*domain.Agent, error) {
	const query = `SELECT agent_id, active, created_at, updated_at FROM agents WHERE agent_id=$1`
	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, agentID).Scan(
		&agent.AgentID,
		&agent.Active,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) SetActive(ctx context.Context, agentID string, active bool) error {
	cmd, err := r.pool.Exec(ctx,
		"UPDATE agents SET active=$1, updated_at=NOW() WHERE agent_id=$2", active, agentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agentRepository) List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error) {
	query := "SELECT agent_id, active, created_at, updated_at FROM agents"
	args := []any{}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += " WHERE active=$1"
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

	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(&agent.AgentID, &agent.Active, &agent.CreatedAt, &agent.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, agent)
	}
	return result, rows.Err()
}
