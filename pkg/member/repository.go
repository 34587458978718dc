package member

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrEmailTaken     = errors.New("email already taken")
)

// MemberRepository defines storage operations for member records. Email
// uniqueness is enforced by the backing store.
type MemberRepository interface {
	// ListMembers returns one page of members matching the filters
	ListMembers(ctx context.Context, params ListMembersParams) ([]Member, error)

	// CountMembers returns the total number of members matching the filters
	CountMembers(ctx context.Context, params ListMembersParams) (int64, error)

	// GetMember retrieves a member by ID
	GetMember(ctx context.Context, id uuid.UUID) (Member, error)

	// CreateMember stores a new member. Returns ErrEmailTaken on a
	// duplicate email.
	CreateMember(ctx context.Context, params MemberParams) (Member, error)

	// UpdateMember replaces the client-settable fields of an existing member
	UpdateMember(ctx context.Context, id uuid.UUID, params MemberParams) (Member, error)

	// DeleteMember removes a member by ID
	DeleteMember(ctx context.Context, id uuid.UUID) error
}
