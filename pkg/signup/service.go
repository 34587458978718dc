package signup

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/surest/member-service/pkg/apierror"
	"github.com/surest/member-service/pkg/login"
)

// Service registers new credentials with one or more roles.
type Service struct {
	repo   login.CredentialRepository
	hasher login.PasswordHasher
}

func NewService(repo login.CredentialRepository, hasher login.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
	}
}

// Register stores a new credential with the given role set. Username
// uniqueness is enforced by the store's constraint; a violation surfaces as
// an already-exists conflict with no partial state.
func (s *Service) Register(ctx context.Context, username, password string, roleNames []string) (login.Credential, error) {
	roles, err := s.repo.RolesByNames(ctx, roleNames)
	if err != nil {
		return login.Credential{}, apierror.Internal(err)
	}
	if len(roles) == 0 {
		return login.Credential{}, apierror.ValidationFailed(map[string]interface{}{
			"roles": "at least one valid role must be provided",
		})
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return login.Credential{}, apierror.Internal(err)
	}

	roleIDs := make([]uuid.UUID, len(roles))
	for i, role := range roles {
		roleIDs[i] = role.ID
	}

	cred, err := s.repo.CreateCredential(ctx, login.CreateCredentialParams{
		Username:     username,
		PasswordHash: hash,
		RoleIDs:      roleIDs,
	})
	if err != nil {
		if errors.Is(err, login.ErrUsernameTaken) {
			return login.Credential{}, apierror.AlreadyExists("username", username)
		}
		return login.Credential{}, apierror.Internal(err)
	}

	slog.Info("registered new credential", "username", cred.Username, "roles", cred.Roles)
	return cred, nil
}
