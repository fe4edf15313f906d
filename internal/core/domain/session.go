package domain

import "errors"

// Role is the marketplace role carried by a session. Values match the
// backend's enumeration verbatim.
type Role string

const (
	RoleClient    Role = "CLIENT"
	RoleVendor    Role = "VENDEUR"
	RoleDeliverer Role = "LIVREUR"
)

// Valid reports whether r is one of the known marketplace roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleVendor, RoleDeliverer:
		return true
	}
	return false
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Session is the locally persisted record identifying the logged-in user and
// carrying their bearer token. At most one session exists on the device; its
// presence gates access to role-specific screens.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	Token       string `json:"token"`
}
