package login

import (
	"context"
	"log/slog"

	"github.com/surest/member-service/pkg/apierror"
	"github.com/surest/member-service/pkg/token"
)

// LoginService authenticates username/password pairs against the credential
// store and mints bearer tokens on success.
type LoginService struct {
	repo   CredentialRepository
	hasher PasswordHasher
	tokens *token.Service
}

func NewLoginService(repo CredentialRepository, hasher PasswordHasher, tokens *token.Service) *LoginService {
	return &LoginService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login verifies the password against the stored hash and returns a minted
// token. Unknown username and wrong password are indistinguishable to the
// caller so usernames cannot be enumerated.
func (s *LoginService) Login(ctx context.Context, username, password string) (string, error) {
	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		slog.Debug("login failed: credential lookup", "username", username)
		return "", apierror.InvalidCredentials()
	}

	ok, err := s.hasher.Verify(password, cred.PasswordHash)
	if err != nil || !ok {
		slog.Debug("login failed: password verification", "username", username)
		return "", apierror.InvalidCredentials()
	}

	tokenStr, err := s.tokens.Generate(cred.Username)
	if err != nil {
		return "", apierror.Internal(err)
	}
	return tokenStr, nil
}
