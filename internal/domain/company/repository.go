package company

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, c Company) (*Company, error)
	Update(ctx context.Context, c Company) (*Company, error)
	GetByID(ctx context.Context, id common.UUID) (*Company, error)
	GetByCreator(ctx context.Context, creatorID common.UUID) (*Company, error)
	List(ctx context.Context, limit, offset int) ([]Company, error)
	Delete(ctx context.Context, id common.UUID) error
}
