package login

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemCredentialRepository implements CredentialRepository using in-memory
// storage. Used in tests and quick-start mode.
type InMemCredentialRepository struct {
	mu          sync.RWMutex
	credentials map[string]Credential
	roles       map[string]Role
}

// NewInMemCredentialRepository creates a new in-memory credential repository
// seeded with the given role names.
func NewInMemCredentialRepository(roleNames ...string) *InMemCredentialRepository {
	roles := make(map[string]Role, len(roleNames))
	for _, name := range roleNames {
		roles[name] = Role{ID: uuid.New(), Name: name}
	}
	return &InMemCredentialRepository{
		credentials: make(map[string]Credential),
		roles:       roles,
	}
}

// GetByUsername retrieves a credential by username
func (r *InMemCredentialRepository) GetByUsername(ctx context.Context, username string) (Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cred, ok := r.credentials[username]
	if !ok {
		return Credential{}, ErrCredentialNotFound
	}
	return cred, nil
}

// CreateCredential stores a new credential with role assignments
func (r *InMemCredentialRepository) CreateCredential(ctx context.Context, params CreateCredentialParams) (Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.credentials[params.Username]; ok {
		return Credential{}, ErrUsernameTaken
	}

	roleNames := []string{}
	for _, roleID := range params.RoleIDs {
		for _, role := range r.roles {
			if role.ID == roleID {
				roleNames = append(roleNames, role.Name)
			}
		}
	}

	cred := Credential{
		ID:           uuid.New(),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		Roles:        roleNames,
		CreatedAt:    time.Now().UTC(),
	}
	r.credentials[params.Username] = cred
	return cred, nil
}

// AnyCredentialExists reports whether at least one credential is stored
func (r *InMemCredentialRepository) AnyCredentialExists(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.credentials) > 0, nil
}

// RolesByNames resolves role names to stored roles
func (r *InMemCredentialRepository) RolesByNames(ctx context.Context, names []string) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var roles []Role
	for _, name := range names {
		if role, ok := r.roles[name]; ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}
