package domain

// Role is the single authorization role carried on a user record and inside
// token claims. The auth core only reads it; it is mutated through the user
// admin surface.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	RoleJudge Role = "JUDGE"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleJudge:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
