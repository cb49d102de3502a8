package domain

// ActorKind distinguishes the account type behind an action.
type ActorKind string

const (
	ActorKindUser      ActorKind = "USER"
	ActorKindAgent     ActorKind = "AGENT"
	ActorKindResponder ActorKind = "RESPONDER"
)

// Actor identifies who performed an action. Exactly one kind is set;
// modeling it as a single tagged value avoids the nullable-column fan-out
// of one foreign key per account type.
type Actor struct {
	Kind ActorKind `json:"kind"`
	ID   string    `json:"id"`
	Role Role      `json:"role"`
}

// ActorAccount is the resolved, live record behind an Actor reference.
type ActorAccount struct {
	Kind   ActorKind
	ID     string
	Name   string
	Email  string
	Role   Role
	Tier   *ResponderTier
	Active bool
}
