package models

import "fmt"

// Role is the closed set of marketplace roles. The auth provider reports the
// role as a lowercase string; everything downstream works with this type so
// the gate and navigation switches stay exhaustive.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
)

// ParseRole maps the auth provider's role string onto the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
