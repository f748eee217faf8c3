package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageOrders reports whether the role may drive staff-side order transitions.
func (r Role) CanManageOrders() bool {
	return r == RoleStaff || r == RoleAdmin
}

// NewRole maps the provider's role claim. An empty claim is a plain customer.
func NewRole(s string) (Role, error) {
	if s == "" || s == "authenticated" {
		return RoleCustomer, nil
	}
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
