package models

// Role is resolved once from the auth gateway headers and passed into
// handlers; core operations never probe it themselves.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a header value to a Role. Unknown values yield an invalid
// zero Role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(s)
	default:
		return ""
	}
}

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleAdmin
}

// CanViewOthers reports whether the role may read other users' attempts and
// statistics.
func (r Role) CanViewOthers() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// User is the authenticated caller as seen by this service: an opaque id,
// a display name for quiz titles, and a role.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
