package job

import (
	"context"
	"time"

	"jobboard/internal/common"
)

type ListFilter struct {
	CreatedBy  common.UUID
	CategoryID common.UUID
	JobTypeID  common.UUID
	LocationID common.UUID
	IsRemote   *bool
	IsActive   *bool
	Search     string
	OrderBy    string
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	List(ctx context.Context, filter ListFilter) ([]Job, error)
	DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c Category) (*Category, error)
	Update(ctx context.Context, c Category) (*Category, error)
	GetByID(ctx context.Context, id common.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, id common.UUID) error
}

type JobTypeRepository interface {
	Create(ctx context.Context, t JobType) (*JobType, error)
	Update(ctx context.Context, t JobType) (*JobType, error)
	GetByID(ctx context.Context, id common.UUID) (*JobType, error)
	List(ctx context.Context) ([]JobType, error)
	Delete(ctx context.Context, id common.UUID) error
}

type LocationRepository interface {
	Create(ctx context.Context, l Location) (*Location, error)
	Update(ctx context.Context, l Location) (*Location, error)
	GetByID(ctx context.Context, id common.UUID) (*Location, error)
	List(ctx context.Context) ([]Location, error)
	Delete(ctx context.Context, id common.UUID) error
}
