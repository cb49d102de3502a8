package dto

import (
	"time"

	"github.com/spec-kit/incident-response/internal/domain"
)

// AgentResponse is the public agent view.
type AgentResponse struct {
	AgentID   string    `json:"agent_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AgentCredentialsResponse is returned at enrollment and token reissue.
type AgentCredentialsResponse struct {
	Agent     AgentResponse `json:"agent"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// SetAgentActiveRequest payload.
type SetAgentActiveRequest struct {
	Active bool `json:"active"`
}

// CreateResponderRequest payload.
type CreateResponderRequest struct {
	Name string               `json:"name"`
	Tier domain.ResponderTier `json:"tier"`
}

// UpdateResponderRequest payload. Nil fields are unchanged.
type UpdateResponderRequest struct {
	Name   *string               `json:"name"`
	Tier   *domain.ResponderTier `json:"tier"`
	Active *bool                 `json:"active"`
}

// ResponderResponse is the public responder view.
type ResponderResponse struct {
	ResponderID string               `json:"responder_id"`
	Name        string               `json:"name"`
	Tier        domain.ResponderTier `json:"tier"`
	Active      bool                 `json:"active"`
	Online      bool                 `json:"online"`
	LastSeen    *time.Time           `json:"last_seen,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ResponderCredentialsResponse is returned at onboarding and token
// reissue.
type ResponderCredentialsResponse struct {
	Responder ResponderResponse `json:"responder"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateSubCategoryRequest payload.
type CreateSubCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse is a taxonomy entry.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SubCategoryResponse is a taxonomy leaf.
type SubCategoryResponse struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}
