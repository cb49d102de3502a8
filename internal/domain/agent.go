package domain

import "time"

// Agent is a field agent who can file incident tickets. Agents carry a
// short human-readable id generated by the agent service.
type Agent struct {
	AgentID   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
