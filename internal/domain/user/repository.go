package user

import (
	"context"

	"jobboard/internal/common"
)

// ListFilter narrows admin user listings. Zero values mean "no filter".
type ListFilter struct {
	Role     Role
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	Update(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Delete(ctx context.Context, id common.UUID) error
}
