package app

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/company"
)

// CompanyService enforces the one-company-per-employer rule: an employer may
// create and own at most one company profile, while admins may create any
// number and edit anyone's.
type CompanyService struct {
	companies company.Repository
	logger    Logger
}

func NewCompanyService(companies company.Repository, logger Logger) *CompanyService {
	return &CompanyService{companies: companies, logger: logger}
}

type CompanyInput struct {
	Name        string
	Description string
	Website     string
}

func (in *CompanyInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return common.NewValidationError("invalid company", map[string]string{"name": "name is required"})
	}
	if company.Slugify(in.Name) == "" {
		return common.NewValidationError("invalid company", map[string]string{"name": "name must contain letters or digits"})
	}
	return nil
}

func (s *CompanyService) Create(ctx context.Context, actor authz.Actor, in CompanyInput) (*company.Company, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer access required", nil)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if _, err := s.companies.GetByCreator(ctx, actor.ID); err == nil {
			return nil, common.NewError(common.CodeConflict, "employer already owns a company", nil)
		} else if !common.Is(err, common.CodeNotFound) {
			return nil, err
		}
	}
	created, err := s.companies.Create(ctx, company.Company{
		Name:        in.Name,
		Slug:        company.Slugify(in.Name),
		Description: strings.TrimSpace(in.Description),
		Website:     strings.TrimSpace(in.Website),
		IsActive:    true,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("company created company_id=%s created_by=%s", created.ID, actor.ID))
	return created, nil
}

type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Website     *string
	IsVerified  *bool
}

func (s *CompanyService) Update(ctx context.Context, actor authz.Actor, id common.UUID, in UpdateCompanyInput) (*company.Company, error) {
	existing, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) && !actor.IsAdmin() {
			return nil, common.NewError(common.CodeForbidden, "company belongs to another account", nil)
		}
		return nil, err
	}
	if !authz.Evaluate(actor, authz.IsAdmin, authz.OwnerOf(existing.CreatedBy)) {
		return nil, common.NewError(common.CodeForbidden, "company belongs to another account", nil)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || company.Slugify(name) == "" {
			return nil, common.NewValidationError("invalid company", map[string]string{"name": "name must contain letters or digits"})
		}
		existing.Name = name
		existing.Slug = company.Slugify(name)
	}
	if in.Description != nil {
		existing.Description = strings.TrimSpace(*in.Description)
	}
	if in.Website != nil {
		existing.Website = strings.TrimSpace(*in.Website)
	}
	// Verification is an admin-only flag.
	if in.IsVerified != nil {
		if !actor.IsAdmin() {
			return nil, common.NewError(common.CodeForbidden, "only admins may verify companies", nil)
		}
		existing.IsVerified = *in.IsVerified
	}
	return s.companies.Update(ctx, *existing)
}

// Deactivate soft-deletes a company profile. The row stays so existing jobs
// keep their reference; inactive companies drop out of public listings.
func (s *CompanyService) Deactivate(ctx context.Context, actor authz.Actor, id common.UUID) error {
	existing, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) && !actor.IsAdmin() {
			return common.NewError(common.CodeForbidden, "company belongs to another account", nil)
		}
		return err
	}
	if !authz.Evaluate(actor, authz.IsAdmin, authz.OwnerOf(existing.CreatedBy)) {
		return common.NewError(common.CodeForbidden, "company belongs to another account", nil)
	}
	if !existing.IsActive {
		return nil
	}
	existing.IsActive = false
	if _, err := s.companies.Update(ctx, *existing); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("company deactivated company_id=%s by=%s", existing.ID, actor.ID))
	return nil
}

func (s *CompanyService) Get(ctx context.Context, id common.UUID) (*company.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *CompanyService) GetMine(ctx context.Context, actorID common.UUID) (*company.Company, error) {
	return s.companies.GetByCreator(ctx, actorID)
}

func (s *CompanyService) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.companies.List(ctx, limit, offset)
}

func (s *CompanyService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
