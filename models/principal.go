package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Principal is the authenticated identity attached to a request after
// token verification. Every service operation takes it as an explicit
// argument; nothing reads it from ambient request state.
type Principal struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
	// Projects lists project ids the principal is a member of, when the
	// token carries them. Used as a fallback when deciding task access.
	Projects []string `json:"projects,omitempty"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
