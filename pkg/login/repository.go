package login

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrUsernameTaken      = errors.New("username already taken")
)

// CredentialRepository defines storage operations for credentials and roles.
// Username uniqueness is enforced by the backing store, not in-process.
type CredentialRepository interface {
	// GetByUsername retrieves a credential with its role names
	GetByUsername(ctx context.Context, username string) (Credential, error)

	// CreateCredential stores a new credential with role assignments.
	// Returns ErrUsernameTaken when the username is already in use.
	CreateCredential(ctx context.Context, params CreateCredentialParams) (Credential, error)

	// RolesByNames resolves role names to stored roles. Unknown names are
	// silently omitted from the result.
	RolesByNames(ctx context.Context, names []string) ([]Role, error)

	// AnyCredentialExists reports whether at least one credential is stored.
	AnyCredentialExists(ctx context.Context) (bool, error)
}
