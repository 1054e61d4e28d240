package model

// Role identifies what a viewer is allowed to see.
//
// Role is a closed enumeration: ParseRole rejects every string outside the
// set, including case variants such as "admin". The zero Role (absent) is
// treated as a non-admin by the report package.
type Role string

const (
	// RoleAdmin sees every item, with high-value items emphasized.
	RoleAdmin Role = "ADMIN"

	// RoleUser sees only items at or below the view limit.
	RoleUser Role = "USER"
)

// Roles returns all valid roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser}
}

// ParseRole converts s to a Role. The comparison is exact and case-sensitive.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", &UnknownRoleError{Value: s}
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether r is exactly RoleAdmin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is the viewer a report is generated for.
// Only Name and Role are read by the report package.
type User struct {
	Name string `json:"name" yaml:"name"`
	Role Role   `json:"role" yaml:"role"`
}

// NewUser creates a User after validating role.
func NewUser(name, role string) (User, error) {
	r, err := ParseRole(role)
	if err != nil {
		return User{}, err
	}
	return User{Name: name, Role: r}, nil
}
