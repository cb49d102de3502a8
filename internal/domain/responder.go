package domain

import "time"

// ResponderTier is the responder specialization level. A ticket's tier
// must match its assigned responder's tier.
type ResponderTier string

const (
	ResponderTier1 ResponderTier = "TIER_1"
	ResponderTier2 ResponderTier = "TIER_2"
)

// Responder handles assigned incident tickets.
type Responder struct {
	ResponderID string
	Name        string
	Tier        ResponderTier
	Active      bool
	Online      bool
	LastSeen    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
