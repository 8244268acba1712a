package models

// Role rank constants. Lower rank means more privilege.
const (
	RolePrincipal = 1
	RoleAdmin     = 2
	RoleHOD       = 3
	RoleTeacher   = 4
	RoleUser      = 5
)

// Role defines a role row from the 'roles' table.
// The set of roles is a fixed enumeration seeded at startup and is not user-editable.
type Role struct {
	ID   int    `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Principal"`
}

// IsValidRoleID reports whether id is within the seeded role range.
func IsValidRoleID(id int) bool {
	return id >= RolePrincipal && id <= RoleUser
}
