package member

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/surest/member-service/pkg/apierror"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "lastName,asc"
)

// MemberResponse is the client-facing member record.
type MemberResponse struct {
	MemberID    uuid.UUID `json:"memberId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth string    `json:"dateOfBirth"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Page is one page of member responses with paging metadata.
type Page struct {
	Content       []MemberResponse `json:"content"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
}

// ListQuery carries the listing parameters as received from the client.
type ListQuery struct {
	FirstName string
	LastName  string
	Page      int
	Size      int
	Sort      string
}

func toResponse(m Member) MemberResponse {
	var resp MemberResponse
	copier.Copy(&resp, &m)
	resp.MemberID = m.ID
	resp.DateOfBirth = m.DateOfBirth.Format(DateLayout)
	return resp
}

// MemberService provides member CRUD operations.
type MemberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{
		repo: repo,
	}
}

// parseSort validates a "field,direction" sort expression against the
// sortable-field whitelist.
func parseSort(sort string) (field string, asc bool, err error) {
	if sort == "" {
		sort = DefaultSort
	}
	parts := strings.SplitN(sort, ",", 2)
	field = parts[0]
	if _, ok := SortColumns[field]; !ok {
		return "", false, apierror.ValidationFailed(map[string]interface{}{
			"sort": "unsupported sort field: " + field,
		})
	}
	asc = true
	if len(parts) > 1 && strings.EqualFold(parts[1], "desc") {
		asc = false
	}
	return field, asc, nil
}

// GetMembers returns one page of members matching the name filters.
func (s *MemberService) GetMembers(ctx context.Context, query ListQuery) (Page, error) {
	if query.Page < 0 {
		query.Page = 0
	}
	if query.Size <= 0 {
		query.Size = DefaultPageSize
	}
	if query.Size > MaxPageSize {
		query.Size = MaxPageSize
	}

	field, asc, err := parseSort(query.Sort)
	if err != nil {
		return Page{}, err
	}

	params := ListMembersParams{
		FirstName: strings.TrimSpace(query.FirstName),
		LastName:  strings.TrimSpace(query.LastName),
		SortField: field,
		SortAsc:   asc,
		Limit:     query.Size,
		Offset:    query.Page * query.Size,
	}

	members, err := s.repo.ListMembers(ctx, params)
	if err != nil {
		return Page{}, apierror.Internal(err)
	}
	total, err := s.repo.CountMembers(ctx, params)
	if err != nil {
		return Page{}, apierror.Internal(err)
	}

	content := make([]MemberResponse, len(members))
	for i, m := range members {
		content[i] = toResponse(m)
	}

	totalPages := int((total + int64(query.Size) - 1) / int64(query.Size))
	return Page{
		Content:       content,
		Page:          query.Page,
		Size:          query.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// GetMember retrieves a member by ID.
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (MemberResponse, error) {
	m, err := s.repo.GetMember(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return MemberResponse{}, apierror.NotFound("member", id.String())
		}
		return MemberResponse{}, apierror.Internal(err)
	}
	return toResponse(m), nil
}

// CreateMember stores a new member; a duplicate email is a conflict.
func (s *MemberService) CreateMember(ctx context.Context, params MemberParams) (MemberResponse, error) {
	m, err := s.repo.CreateMember(ctx, params)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return MemberResponse{}, apierror.AlreadyExists("email", params.Email)
		}
		return MemberResponse{}, apierror.Internal(err)
	}
	return toResponse(m), nil
}

// UpdateMember replaces the client-settable fields of an existing member.
func (s *MemberService) UpdateMember(ctx context.Context, id uuid.UUID, params MemberParams) (MemberResponse, error) {
	m, err := s.repo.UpdateMember(ctx, id, params)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return MemberResponse{}, apierror.NotFound("member", id.String())
		}
		if errors.Is(err, ErrEmailTaken) {
			return MemberResponse{}, apierror.AlreadyExists("email", params.Email)
		}
		return MemberResponse{}, apierror.Internal(err)
	}
	return toResponse(m), nil
}

// DeleteMember removes a member by ID.
func (s *MemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteMember(ctx, id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return apierror.NotFound("member", id.String())
		}
		return apierror.Internal(err)
	}
	return nil
}
