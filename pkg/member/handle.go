package member

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/surest/member-service/pkg/apierror"
)

type Handle struct {
	memberService *MemberService
}

func NewHandle(memberService *MemberService) Handle {
	return Handle{
		memberService: memberService,
	}
}

type MemberRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
}

func (req MemberRequest) toParams() (MemberParams, map[string]interface{}) {
	details := make(map[string]interface{})
	if strings.TrimSpace(req.FirstName) == "" {
		details["firstName"] = "first name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		details["lastName"] = "last name is required"
	}
	if req.Email == "" {
		details["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		details["email"] = "email must be a valid address"
	}

	var dob time.Time
	if req.DateOfBirth == "" {
		details["dateOfBirth"] = "date of birth is required"
	} else {
		var err error
		dob, err = time.Parse(DateLayout, req.DateOfBirth)
		if err != nil {
			details["dateOfBirth"] = "date of birth must use format " + DateLayout
		}
	}

	if len(details) > 0 {
		return MemberParams{}, details
	}
	return MemberParams{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dob,
		Email:       req.Email,
	}, nil
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// GetMembers returns one page of members
// (GET /members)
func (h Handle) GetMembers(w http.ResponseWriter, r *http.Request) {
	query := ListQuery{
		FirstName: r.URL.Query().Get("firstName"),
		LastName:  r.URL.Query().Get("lastName"),
		Page:      intQuery(r, "page", 0),
		Size:      intQuery(r, "size", DefaultPageSize),
		Sort:      r.URL.Query().Get("sort"),
	}

	page, err := h.memberService.GetMembers(r.Context(), query)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

func memberID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apierror.ValidationFailed(map[string]interface{}{
			"id": "id must be a valid UUID",
		})
	}
	return id, nil
}

// GetMember returns one member by ID
// (GET /members/{id})
func (h Handle) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := memberID(r)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}

	resp, err := h.memberService.GetMember(r.Context(), id)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// CreateMember stores a new member
// (POST /members)
func (h Handle) CreateMember(w http.ResponseWriter, r *http.Request) {
	var request MemberRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		apierror.Respond(w, r, apierror.ValidationFailed(map[string]interface{}{
			"body": "invalid request body",
		}))
		return
	}

	params, details := request.toParams()
	if details != nil {
		apierror.Respond(w, r, apierror.ValidationFailed(details))
		return
	}

	resp, err := h.memberService.CreateMember(r.Context(), params)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// UpdateMember replaces an existing member's fields
// (PUT /members/{id})
func (h Handle) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := memberID(r)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}

	var request MemberRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		apierror.Respond(w, r, apierror.ValidationFailed(map[string]interface{}{
			"body": "invalid request body",
		}))
		return
	}

	params, details := request.toParams()
	if details != nil {
		apierror.Respond(w, r, apierror.ValidationFailed(details))
		return
	}

	resp, err := h.memberService.UpdateMember(r.Context(), id, params)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// DeleteMember removes a member
// (DELETE /members/{id})
func (h Handle) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := memberID(r)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}

	if err := h.memberService.DeleteMember(r.Context(), id); err != nil {
		apierror.Respond(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
