package member

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

const memberColumns = "id, first_name, last_name, date_of_birth, email, created_at, updated_at"

// PostgresMemberRepository implements MemberRepository using PostgreSQL.
type PostgresMemberRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMemberRepository creates a new PostgreSQL member repository
func NewPostgresMemberRepository(pool *pgxpool.Pool) *PostgresMemberRepository {
	return &PostgresMemberRepository{
		pool: pool,
	}
}

func scanMember(row pgx.Row) (Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.DateOfBirth, &m.Email, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func filterClause(params ListMembersParams, args *[]interface{}) string {
	var conditions []string
	if params.FirstName != "" {
		*args = append(*args, "%"+strings.ToLower(params.FirstName)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(first_name) LIKE $%d", len(*args)))
	}
	if params.LastName != "" {
		*args = append(*args, "%"+strings.ToLower(params.LastName)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(last_name) LIKE $%d", len(*args)))
	}
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// ListMembers returns one page of members matching the filters
func (r *PostgresMemberRepository) ListMembers(ctx context.Context, params ListMembersParams) ([]Member, error) {
	column, ok := SortColumns[params.SortField]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field: %s", params.SortField)
	}
	direction := "DESC"
	if params.SortAsc {
		direction = "ASC"
	}

	var args []interface{}
	query := "SELECT " + memberColumns + " FROM member" + filterClause(params, &args)
	args = append(args, params.Limit, params.Offset)
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", column, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CountMembers returns the total number of members matching the filters
func (r *PostgresMemberRepository) CountMembers(ctx context.Context, params ListMembersParams) (int64, error) {
	var args []interface{}
	query := "SELECT COUNT(*) FROM member" + filterClause(params, &args)

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// GetMember retrieves a member by ID
func (r *PostgresMemberRepository) GetMember(ctx context.Context, id uuid.UUID) (Member, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+memberColumns+" FROM member WHERE id = $1", id)
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// CreateMember stores a new member
func (r *PostgresMemberRepository) CreateMember(ctx context.Context, params MemberParams) (Member, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO member (first_name, last_name, date_of_birth, email)
		VALUES ($1, $2, $3, $4)
		RETURNING `+memberColumns,
		params.FirstName, params.LastName, params.DateOfBirth, params.Email)

	m, err := scanMember(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Member{}, ErrEmailTaken
		}
		return Member{}, fmt.Errorf("failed to create member: %w", err)
	}
	return m, nil
}

// UpdateMember replaces the client-settable fields of an existing member
func (r *PostgresMemberRepository) UpdateMember(ctx context.Context, id uuid.UUID, params MemberParams) (Member, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE member
		SET first_name = $2, last_name = $3, date_of_birth = $4, email = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+memberColumns,
		id, params.FirstName, params.LastName, params.DateOfBirth, params.Email)

	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Member{}, ErrEmailTaken
		}
		return Member{}, fmt.Errorf("failed to update member: %w", err)
	}
	return m, nil
}

// DeleteMember removes a member by ID
func (r *PostgresMemberRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM member WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}
