package application

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, app Application) (*Application, error)
}
