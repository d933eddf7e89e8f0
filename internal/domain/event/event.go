package event

import "jobboard/internal/common"

type SubjectType string

const (
	SubjectAccount     SubjectType = "account"
	SubjectApplication SubjectType = "application"
)

const (
	NameCreated       = "created"
	NameStatusChanged = "status_changed"
)

// Event is a notification-worthy record handed to an external worker queue
// after a successful state change. Delivery is fire-and-forget: a publish
// failure never rolls back or blocks the state change that produced it.
type Event struct {
	SubjectType SubjectType       `json:"subject_type"`
	SubjectID   common.UUID       `json:"subject_id"`
	Name        string            `json:"event"`
	Payload     map[string]string `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(e Event) error
}
