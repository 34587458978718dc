package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresCredentialRepository implements CredentialRepository using PostgreSQL.
type PostgresCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCredentialRepository creates a new PostgreSQL credential repository
func NewPostgresCredentialRepository(pool *pgxpool.Pool) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{
		pool: pool,
	}
}

// GetByUsername retrieves a credential with its role names
func (r *PostgresCredentialRepository) GetByUsername(ctx context.Context, username string) (Credential, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.created_at,
			COALESCE(ARRAY_AGG(ro.name) FILTER (WHERE ro.name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_role ur ON ur.user_id = u.id
		LEFT JOIN role ro ON ro.id = ur.role_id
		WHERE u.username = $1
		GROUP BY u.id, u.username, u.password_hash, u.created_at
	`

	var cred Credential
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&cred.ID,
		&cred.Username,
		&cred.PasswordHash,
		&cred.CreatedAt,
		&cred.Roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credential{}, ErrCredentialNotFound
		}
		return Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}
	return cred, nil
}

// CreateCredential stores a new credential and its role assignments in a
// single transaction. A username uniqueness violation surfaces as
// ErrUsernameTaken.
func (r *PostgresCredentialRepository) CreateCredential(ctx context.Context, params CreateCredentialParams) (Credential, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cred := Credential{Roles: []string{}}
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`, params.Username, params.PasswordHash).Scan(
		&cred.ID,
		&cred.Username,
		&cred.PasswordHash,
		&cred.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Credential{}, ErrUsernameTaken
		}
		return Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}

	for _, roleID := range params.RoleIDs {
		var roleName string
		err = tx.QueryRow(ctx, `
			WITH assigned AS (
				INSERT INTO user_role (user_id, role_id)
				VALUES ($1, $2)
				RETURNING role_id
			)
			SELECT ro.name FROM role ro JOIN assigned a ON a.role_id = ro.id
		`, cred.ID, roleID).Scan(&roleName)
		if err != nil {
			return Credential{}, fmt.Errorf("failed to assign role: %w", err)
		}
		cred.Roles = append(cred.Roles, roleName)
	}

	if err := tx.Commit(ctx); err != nil {
		return Credential{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return cred, nil
}

// AnyCredentialExists reports whether at least one credential is stored
func (r *PostgresCredentialRepository) AnyCredentialExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check credential existence: %w", err)
	}
	return exists, nil
}

// RolesByNames resolves role names to stored roles
func (r *PostgresCredentialRepository) RolesByNames(ctx context.Context, names []string) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM role WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
