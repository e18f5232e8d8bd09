package accessgrants

import "time"

type Scope string

const (
	ScopeAnimalsRead  Scope = "animals:read"
	ScopeAnimalsEdit  Scope = "animals:edit"
	ScopeCalendarRead Scope = "calendar:read"
	ScopeEventsCreate Scope = "events:create"
	ScopeEventsVoid   Scope = "events:void"
)

type Status string

const (
	StatusInvited Status = "invited"
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Grant delega acceso sobre el rebaño completo de un dueño
// (el veterinario o el empleado no se delega animal por animal).
type Grant struct {
	ID string

	OwnerUserID   string // dueño del rebaño que comparte
	GranteeUserID string // delegado (veterinario, empleado)

	Scopes []Scope
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
