package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is supplied by the external identity provider with every request.
// The ledger trusts it; it carries no user records of its own.
type Role string

const (
	RoleConsumer     Role = "consumer"
	RoleVendor       Role = "vendor"
	RoleOrganisation Role = "charitable_organisation"
	RoleAdmin        Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleConsumer, RoleVendor, RoleOrganisation, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
