package member

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemMemberRepository implements MemberRepository using in-memory storage.
// Used in tests and quick-start mode.
type InMemMemberRepository struct {
	mu      sync.RWMutex
	members map[uuid.UUID]Member
}

// NewInMemMemberRepository creates a new in-memory member repository
func NewInMemMemberRepository() *InMemMemberRepository {
	return &InMemMemberRepository{
		members: make(map[uuid.UUID]Member),
	}
}

func matches(m Member, params ListMembersParams) bool {
	if params.FirstName != "" && !strings.Contains(strings.ToLower(m.FirstName), strings.ToLower(params.FirstName)) {
		return false
	}
	if params.LastName != "" && !strings.Contains(strings.ToLower(m.LastName), strings.ToLower(params.LastName)) {
		return false
	}
	return true
}

func sortKey(m Member, field string) string {
	switch field {
	case "firstName":
		return strings.ToLower(m.FirstName)
	case "dateOfBirth":
		return m.DateOfBirth.Format(DateLayout)
	case "email":
		return strings.ToLower(m.Email)
	case "createdAt":
		return m.CreatedAt.Format(time.RFC3339Nano)
	default:
		return strings.ToLower(m.LastName)
	}
}

// ListMembers returns one page of members matching the filters
func (r *InMemMemberRepository) ListMembers(ctx context.Context, params ListMembersParams) ([]Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []Member
	for _, m := range r.members {
		if matches(m, params) {
			all = append(all, m)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		less := sortKey(all[i], params.SortField) < sortKey(all[j], params.SortField)
		if params.SortAsc {
			return less
		}
		return !less
	})

	start := params.Offset
	if start >= len(all) {
		return []Member{}, nil
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// CountMembers returns the total number of members matching the filters
func (r *InMemMemberRepository) CountMembers(ctx context.Context, params ListMembersParams) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, m := range r.members {
		if matches(m, params) {
			count++
		}
	}
	return count, nil
}

// GetMember retrieves a member by ID
func (r *InMemMemberRepository) GetMember(ctx context.Context, id uuid.UUID) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return m, nil
}

func (r *InMemMemberRepository) emailInUse(email string, exclude uuid.UUID) bool {
	for _, m := range r.members {
		if m.ID != exclude && strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}

// CreateMember stores a new member
func (r *InMemMemberRepository) CreateMember(ctx context.Context, params MemberParams) (Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailInUse(params.Email, uuid.Nil) {
		return Member{}, ErrEmailTaken
	}

	now := time.Now().UTC()
	m := Member{
		ID:          uuid.New(),
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		DateOfBirth: params.DateOfBirth,
		Email:       params.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.members[m.ID] = m
	return m, nil
}

// UpdateMember replaces the client-settable fields of an existing member
func (r *InMemMemberRepository) UpdateMember(ctx context.Context, id uuid.UUID, params MemberParams) (Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	if r.emailInUse(params.Email, id) {
		return Member{}, ErrEmailTaken
	}

	m.FirstName = params.FirstName
	m.LastName = params.LastName
	m.DateOfBirth = params.DateOfBirth
	m.Email = params.Email
	m.UpdatedAt = time.Now().UTC()
	r.members[id] = m
	return m, nil
}

// DeleteMember removes a member by ID
func (r *InMemMemberRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}
