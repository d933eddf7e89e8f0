package user

import (
	"time"

	"jobboard/internal/common"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleEmployer  Role = "EMPLOYER"
	RoleJobSeeker Role = "JOB_SEEKER"
)

// User is an account. Every account carries exactly one role; public
// registration always assigns RoleJobSeeker, other roles are set only
// through the admin user-management path.
type User struct {
	ID           common.UUID `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Role         Role        `json:"role"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	LastLogin    *time.Time  `json:"last_login,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

func (u *User) IsJobSeeker() bool {
	return u.Role == RoleJobSeeker
}

func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleEmployer, RoleJobSeeker:
		return true
	default:
		return false
	}
}
