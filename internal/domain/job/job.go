package job

import (
	"time"

	"jobboard/internal/common"
)

type Job struct {
	ID          common.UUID  `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CompanyID   *common.UUID `json:"company_id,omitempty"`
	CreatedBy   common.UUID  `json:"created_by"`
	CategoryID  common.UUID  `json:"category_id"`
	JobTypeID   *common.UUID `json:"job_type_id,omitempty"`
	LocationID  *common.UUID `json:"location_id,omitempty"`
	Salary      *float64     `json:"salary,omitempty"`
	IsRemote    bool         `json:"is_remote"`
	IsActive    bool         `json:"is_active"`
	Slug        string       `json:"slug"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Category struct {
	ID          common.UUID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type JobType struct {
	ID          common.UUID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Location is unique per (city, state, country).
type Location struct {
	ID         common.UUID `json:"id"`
	City       string      `json:"city"`
	State      string      `json:"state"`
	Country    string      `json:"country"`
	PostalCode string      `json:"postal_code"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
