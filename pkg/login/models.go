package login

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a stored login identity. PasswordHash is never serialized,
// logged, or returned to clients.
type Credential struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role is a named authority. Names are unique.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateCredentialParams contains parameters for storing a new credential.
type CreateCredentialParams struct {
	Username     string
	PasswordHash string
	RoleIDs      []uuid.UUID
}
