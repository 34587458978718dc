package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a structurally valid, correctly signed
	// token is past its expiry. Callers use this to prompt re-authentication.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens and signature failures.
	ErrTokenInvalid = errors.New("token invalid")

	ErrEmptySubject = errors.New("subject cannot be empty")
)

// Service mints and validates HS256 bearer tokens. The signing secret and the
// token lifetime are fixed at construction and never change within a process.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Generate mints a token for subject with expiry = issue time + TTL.
func (s *Service) Generate(subject string) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Subject extracts the subject claim, failing with ErrTokenExpired or
// ErrTokenInvalid. Expiry is distinguishable so callers can react with a
// re-authentication prompt instead of a hard failure.
func (s *Service) Subject(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Valid reports whether subject matches username and the token is unexpired.
// Unlike Subject, every failure degrades to false: the request authentication
// path treats a bad token as "no principal", not as an error.
func (s *Service) Valid(subject, username, tokenStr string) bool {
	if subject != username {
		return false
	}
	_, err := s.parse(tokenStr)
	return err == nil
}
