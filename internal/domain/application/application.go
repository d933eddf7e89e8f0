package application

import (
	"strings"
	"time"

	"jobboard/internal/common"
)

type Status string

const (
	StatusApplied     Status = "APPLIED"
	StatusReviewed    Status = "REVIEWED"
	StatusShortlisted Status = "SHORTLISTED"
	StatusAccepted    Status = "ACCEPTED"
	StatusRejected    Status = "REJECTED"
	StatusWithdrawn   Status = "WITHDRAWN"
)

// Application joins one job seeker to one job; unique per (applicant, job).
type Application struct {
	ID          common.UUID `json:"id"`
	ApplicantID common.UUID `json:"applicant_id"`
	JobID       common.UUID `json:"job_id"`
	CoverLetter string      `json:"cover_letter"`
	ResumeURL   string      `json:"resume_url"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ReviewedAt  *time.Time  `json:"reviewed_at,omitempty"`
	WithdrawnAt *time.Time  `json:"withdrawn_at,omitempty"`
}

func NormalizeStatus(status Status) Status {
	return Status(strings.ToUpper(strings.TrimSpace(string(status))))
}

func KnownStatus(status Status) bool {
	switch status {
	case StatusApplied, StatusReviewed, StatusShortlisted, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// ReviewStatus reports whether status is one an employer or admin may set.
// WITHDRAWN is excluded: only the applicant reaches it, via withdrawal.
func ReviewStatus(status Status) bool {
	switch status {
	case StatusReviewed, StatusShortlisted, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}
