package domain

import "time"

// Role enumerates the platform's account roles.
type Role string

const (
	RoleStudent        Role = "student"
	RoleAdmin          Role = "admin"
	RoleForumModerator Role = "forum_moderator"
	RoleTutor          Role = "tutor"
)

// AllRoles lists every valid role, in declaration order.
func AllRoles() []Role {
	return []Role{RoleStudent, RoleAdmin, RoleForumModerator, RoleTutor}
}

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleForumModerator, RoleTutor:
		return true
	}
	return false
}

// User is the domain model for platform accounts: students, tutors,
// admins and forum moderators.
type User struct {
	ID                  string
	Email               string
	FirstName           string
	LastName            string
	PasswordHash        string
	Roles               []Role
	TrackSlug           *string
	ScholarshipInterest bool
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user's role set intersects roles.
// An empty argument list matches any user.
func (u *User) HasAnyRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}
