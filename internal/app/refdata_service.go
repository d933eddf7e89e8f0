package app

import (
	"context"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

// RefDataService serves the category, job-type and location lookups. Reads
// are public; creates and updates are open to admins and employers, deletes
// stay admin-only because jobs reference these rows.
type RefDataService struct {
	categories job.CategoryRepository
	jobTypes   job.JobTypeRepository
	locations  job.LocationRepository
}

func NewRefDataService(categories job.CategoryRepository, jobTypes job.JobTypeRepository, locations job.LocationRepository) *RefDataService {
	return &RefDataService{categories: categories, jobTypes: jobTypes, locations: locations}
}

func (s *RefDataService) ListCategories(ctx context.Context) ([]job.Category, error) {
	return s.categories.List(ctx)
}

func (s *RefDataService) ListJobTypes(ctx context.Context) ([]job.JobType, error) {
	return s.jobTypes.List(ctx)
}

func (s *RefDataService) ListLocations(ctx context.Context) ([]job.Location, error) {
	return s.locations.List(ctx)
}

func (s *RefDataService) GetCategory(ctx context.Context, id common.UUID) (*job.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *RefDataService) GetJobType(ctx context.Context, id common.UUID) (*job.JobType, error) {
	return s.jobTypes.GetByID(ctx, id)
}

func (s *RefDataService) GetLocation(ctx context.Context, id common.UUID) (*job.Location, error) {
	return s.locations.GetByID(ctx, id)
}

func (s *RefDataService) CreateCategory(ctx context.Context, actor authz.Actor, c job.Category) (*job.Category, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer or admin access required", nil)
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, common.NewValidationError("invalid category", map[string]string{"name": "name is required"})
	}
	return s.categories.Create(ctx, c)
}

func (s *RefDataService) CreateJobType(ctx context.Context, actor authz.Actor, t job.JobType) (*job.JobType, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer or admin access required", nil)
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, common.NewValidationError("invalid job type", map[string]string{"name": "name is required"})
	}
	return s.jobTypes.Create(ctx, t)
}

func (s *RefDataService) CreateLocation(ctx context.Context, actor authz.Actor, l job.Location) (*job.Location, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer or admin access required", nil)
	}
	l.City = strings.TrimSpace(l.City)
	l.Country = strings.TrimSpace(l.Country)
	if l.City == "" || l.Country == "" {
		return nil, common.NewValidationError("invalid location", map[string]string{"city": "city and country are required"})
	}
	return s.locations.Create(ctx, l)
}

// RefDataInput carries the optional fields of a reference-data update.
type RefDataInput struct {
	Name        *string
	Description *string
}

func (s *RefDataService) UpdateCategory(ctx context.Context, actor authz.Actor, id common.UUID, input RefDataInput) (*job.Category, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer or admin access required", nil)
	}
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, common.NewValidationError("invalid category", map[string]string{"name": "name must not be empty"})
		}
		existing.Name = name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	return s.categories.Update(ctx, *existing)
}

func (s *RefDataService) UpdateJobType(ctx context.Context, actor authz.Actor, id common.UUID, input RefDataInput) (*job.JobType, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer or admin access required", nil)
	}
	existing, err := s.jobTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, common.NewValidationError("invalid job type", map[string]string{"name": "name must not be empty"})
		}
		existing.Name = name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	return s.jobTypes.Update(ctx, *existing)
}

// LocationInput carries the optional fields of a location update.
type LocationInput struct {
	City       *string
	State      *string
	Country    *string
	PostalCode *string
}

func (s *RefDataService) UpdateLocation(ctx context.Context, actor authz.Actor, id common.UUID, input LocationInput) (*job.Location, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer or admin access required", nil)
	}
	existing, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.City != nil {
		city := strings.TrimSpace(*input.City)
		if city == "" {
			return nil, common.NewValidationError("invalid location", map[string]string{"city": "city must not be empty"})
		}
		existing.City = city
	}
	if input.State != nil {
		existing.State = *input.State
	}
	if input.Country != nil {
		country := strings.TrimSpace(*input.Country)
		if country == "" {
			return nil, common.NewValidationError("invalid location", map[string]string{"country": "country must not be empty"})
		}
		existing.Country = country
	}
	if input.PostalCode != nil {
		existing.PostalCode = *input.PostalCode
	}
	return s.locations.Update(ctx, *existing)
}

func (s *RefDataService) DeleteCategory(ctx context.Context, actor authz.Actor, id common.UUID) error {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	return s.categories.Delete(ctx, id)
}

func (s *RefDataService) DeleteJobType(ctx context.Context, actor authz.Actor, id common.UUID) error {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	return s.jobTypes.Delete(ctx, id)
}

func (s *RefDataService) DeleteLocation(ctx context.Context, actor authz.Actor, id common.UUID) error {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	return s.locations.Delete(ctx, id)
}
