package models

// Role is the privilege level a membership grants within a group.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// ParseRole converts a wire-level role string to a Role.
// The empty string maps to RoleMember, matching the creation default.
// Returns false for anything else that is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleMember, true
	case RoleMember:
		return RoleMember, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Membership links one User to one Group with a role.
// The (UserID, GroupID) pair is unique: a user belongs to a group at most once.
type Membership struct {
	// ID is the unique identifier for the membership (UUID format).
	ID string `json:"id"`

	// UserID references the member's user record.
	UserID string `json:"user_id"`

	// GroupID references the joined group.
	GroupID string `json:"group_id"`

	// Role is the member's privilege level in the group.
	Role Role `json:"role"`

	// JoinedAt is the Unix timestamp when the membership was created.
	// It is set once and never updated, including on role changes.
	JoinedAt int64 `json:"joined_at"`
}
