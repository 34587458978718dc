package auth

// Role names known to the service. Authorization is plain membership in
// these sets; there is no hierarchy between them.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
