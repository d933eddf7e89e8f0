// Package authz decides, for each (actor, action, resource) triple, whether
// access is granted. Rules are pure predicates composed with OR semantics:
// an ordered rule list grants on the first match, the way stacked permission
// classes would.
package authz

import (
	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

// Actor is the authenticated identity the HTTP layer hands to services.
// The zero value is an anonymous caller.
type Actor struct {
	ID            common.UUID
	Role          user.Role
	Authenticated bool
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated && a.Role == user.RoleAdmin
}

func (a Actor) IsEmployer() bool {
	return a.Authenticated && a.Role == user.RoleEmployer
}

func (a Actor) IsJobSeeker() bool {
	return a.Authenticated && a.Role == user.RoleJobSeeker
}

type Rule func(Actor) bool

// Evaluate grants if any rule matches.
func Evaluate(actor Actor, rules ...Rule) bool {
	for _, rule := range rules {
		if rule(actor) {
			return true
		}
	}
	return false
}

func Authenticated(actor Actor) bool {
	return actor.Authenticated
}

func IsAdmin(actor Actor) bool {
	return actor.IsAdmin()
}

func IsEmployer(actor Actor) bool {
	return actor.IsEmployer()
}

func IsJobSeeker(actor Actor) bool {
	return actor.IsJobSeeker()
}

func IsAdminOrEmployer(actor Actor) bool {
	return actor.IsAdmin() || actor.IsEmployer()
}

// OwnerOf matches the account that created the resource.
func OwnerOf(createdBy common.UUID) Rule {
	return func(actor Actor) bool {
		return actor.Authenticated && actor.ID == createdBy
	}
}

// ApplicantOf matches the job seeker who submitted the application.
func ApplicantOf(app *application.Application) Rule {
	return func(actor Actor) bool {
		return app != nil && actor.Authenticated && actor.ID == app.ApplicantID
	}
}

// JobOwnerOf matches the employer who created the job. A nil job matches
// nobody: an absent job is treated as denial, not as a missing resource,
// so ownership checks never leak existence.
func JobOwnerOf(j *job.Job) Rule {
	return func(actor Actor) bool {
		return j != nil && actor.IsEmployer() && actor.ID == j.CreatedBy
	}
}
