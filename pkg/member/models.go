package member

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for dates of birth.
const DateLayout = "2006-01-02"

// Member is a stored member record. Email is unique.
type Member struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MemberParams contains the client-settable member fields.
type MemberParams struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Email       string
}

// ListMembersParams filters and pages a member listing. Name filters are
// case-insensitive substring matches. SortField must be one of the keys in
// SortColumns.
type ListMembersParams struct {
	FirstName string
	LastName  string
	SortField string
	SortAsc   bool
	Limit     int
	Offset    int
}

// SortColumns maps API sort fields to store columns. Sorting is restricted to
// this whitelist.
var SortColumns = map[string]string{
	"firstName":   "first_name",
	"lastName":    "last_name",
	"dateOfBirth": "date_of_birth",
	"email":       "email",
	"createdAt":   "created_at",
}
