package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
)

// JobCache is the read-through cache the job service consults before the
// repository. Implementations must tolerate being nil-backed: a miss and a
// dead cache look identical to this service.
type JobCache interface {
	GetJob(ctx context.Context, id common.UUID) (*job.Job, bool)
	SetJob(ctx context.Context, j *job.Job)
	GetList(ctx context.Context, key string) ([]job.Job, bool)
	SetList(ctx context.Context, key string, jobs []job.Job)
	Invalidate(ctx context.Context, id common.UUID)
}

const defaultStaleJobDays = 90

type JobService struct {
	jobs       job.Repository
	categories job.CategoryRepository
	jobTypes   job.JobTypeRepository
	locations  job.LocationRepository
	companies  company.Repository
	cache      JobCache
	logger     Logger
}

func NewJobService(jobs job.Repository, categories job.CategoryRepository, jobTypes job.JobTypeRepository, locations job.LocationRepository, companies company.Repository, cache JobCache, logger Logger) *JobService {
	return &JobService{
		jobs:       jobs,
		categories: categories,
		jobTypes:   jobTypes,
		locations:  locations,
		companies:  companies,
		cache:      cache,
		logger:     logger,
	}
}

type JobInput struct {
	Title       string
	Description string
	CategoryID  common.UUID
	JobTypeID   *common.UUID
	LocationID  *common.UUID
	CompanyID   *common.UUID
	Salary      *float64
	IsRemote    bool
}

func (in *JobInput) validate() error {
	fields := map[string]string{}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if in.Description == "" {
		fields["description"] = "description is required"
	}
	if in.CategoryID == "" {
		fields["category_id"] = "category_id is required"
	}
	if in.Salary != nil && *in.Salary < 0 {
		fields["salary"] = "salary must not be negative"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}

func (s *JobService) Create(ctx context.Context, actor authz.Actor, in JobInput) (*job.Job, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer access required", nil)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}
	companyID, err := s.resolveCompany(ctx, actor, in.CompanyID)
	if err != nil {
		return nil, err
	}
	created, err := s.jobs.Create(ctx, job.Job{
		Title:       in.Title,
		Description: in.Description,
		CompanyID:   companyID,
		CreatedBy:   actor.ID,
		CategoryID:  in.CategoryID,
		JobTypeID:   in.JobTypeID,
		LocationID:  in.LocationID,
		Salary:      in.Salary,
		IsRemote:    in.IsRemote,
		IsActive:    true,
		Slug:        jobSlug(in.Title, actor.ID),
	})
	if err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, created.ID)
	s.logInfo(fmt.Sprintf("job created job_id=%s created_by=%s", created.ID, actor.ID))
	return created, nil
}

func (s *JobService) checkReferences(ctx context.Context, in JobInput) error {
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewValidationError("invalid job", map[string]string{"category_id": "category does not exist"})
		}
		return err
	}
	if in.JobTypeID != nil {
		if _, err := s.jobTypes.GetByID(ctx, *in.JobTypeID); err != nil {
			if common.Is(err, common.CodeNotFound) {
				return common.NewValidationError("invalid job", map[string]string{"job_type_id": "job type does not exist"})
			}
			return err
		}
	}
	if in.LocationID != nil {
		if _, err := s.locations.GetByID(ctx, *in.LocationID); err != nil {
			if common.Is(err, common.CodeNotFound) {
				return common.NewValidationError("invalid job", map[string]string{"location_id": "location does not exist"})
			}
			return err
		}
	}
	return nil
}

// resolveCompany pins an employer's jobs to the company they own; admins may
// post for any company or none.
func (s *JobService) resolveCompany(ctx context.Context, actor authz.Actor, requested *common.UUID) (*common.UUID, error) {
	if actor.IsAdmin() {
		if requested != nil {
			if _, err := s.companies.GetByID(ctx, *requested); err != nil {
				return nil, err
			}
		}
		return requested, nil
	}
	owned, err := s.companies.GetByCreator(ctx, actor.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if requested != nil && *requested != owned.ID {
		return nil, common.NewError(common.CodeForbidden, "company belongs to another account", nil)
	}
	return &owned.ID, nil
}

type UpdateJobInput struct {
	Title       *string
	Description *string
	CategoryID  *common.UUID
	JobTypeID   *common.UUID
	LocationID  *common.UUID
	Salary      *float64
	IsRemote    *bool
	IsActive    *bool
}

func (s *JobService) Update(ctx context.Context, actor authz.Actor, id common.UUID, in UpdateJobInput) (*job.Job, error) {
	existing, err := s.authorizeJobWrite(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, common.NewValidationError("invalid job", map[string]string{"title": "title is required"})
		}
		existing.Title = title
		existing.Slug = jobSlug(title, existing.CreatedBy)
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, common.NewValidationError("invalid job", map[string]string{"description": "description is required"})
		}
		existing.Description = description
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewValidationError("invalid job", map[string]string{"category_id": "category does not exist"})
			}
			return nil, err
		}
		existing.CategoryID = *in.CategoryID
	}
	if in.JobTypeID != nil {
		if _, err := s.jobTypes.GetByID(ctx, *in.JobTypeID); err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewValidationError("invalid job", map[string]string{"job_type_id": "job type does not exist"})
			}
			return nil, err
		}
		existing.JobTypeID = in.JobTypeID
	}
	if in.LocationID != nil {
		if _, err := s.locations.GetByID(ctx, *in.LocationID); err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewValidationError("invalid job", map[string]string{"location_id": "location does not exist"})
			}
			return nil, err
		}
		existing.LocationID = in.LocationID
	}
	if in.Salary != nil {
		if *in.Salary < 0 {
			return nil, common.NewValidationError("invalid job", map[string]string{"salary": "salary must not be negative"})
		}
		existing.Salary = in.Salary
	}
	if in.IsRemote != nil {
		existing.IsRemote = *in.IsRemote
	}
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}
	updated, err := s.jobs.Update(ctx, *existing)
	if err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, id)
	return updated, nil
}

// Deactivate is the delete operation for jobs: the posting disappears from
// public listings but its applications stay intact.
func (s *JobService) Deactivate(ctx context.Context, actor authz.Actor, id common.UUID) error {
	existing, err := s.authorizeJobWrite(ctx, actor, id)
	if err != nil {
		return err
	}
	if !existing.IsActive {
		return nil
	}
	existing.IsActive = false
	if _, err := s.jobs.Update(ctx, *existing); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, id)
	s.logInfo(fmt.Sprintf("job deactivated job_id=%s", id))
	return nil
}

// authorizeJobWrite loads the job and checks write access. Non-admins get
// the same forbidden answer whether the job is absent or owned by someone
// else; only admins learn that a job does not exist.
func (s *JobService) authorizeJobWrite(ctx context.Context, actor authz.Actor, id common.UUID) (*job.Job, error) {
	existing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) && !actor.IsAdmin() {
			return nil, common.NewError(common.CodeForbidden, "job belongs to another account", nil)
		}
		return nil, err
	}
	if !authz.Evaluate(actor, authz.IsAdmin, authz.JobOwnerOf(existing)) {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another account", nil)
	}
	return existing, nil
}

// Get serves the public job detail. Inactive jobs stay visible only to
// their owner and admins.
func (s *JobService) Get(ctx context.Context, actor authz.Actor, id common.UUID) (*job.Job, error) {
	if cached, ok := s.cacheGetJob(ctx, id); ok {
		return s.visibleJob(actor, cached)
	}
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSetJob(ctx, j)
	return s.visibleJob(actor, j)
}

func (s *JobService) visibleJob(actor authz.Actor, j *job.Job) (*job.Job, error) {
	if j.IsActive {
		return j, nil
	}
	if authz.Evaluate(actor, authz.IsAdmin, authz.JobOwnerOf(j)) {
		return j, nil
	}
	return nil, common.NewError(common.CodeNotFound, "job not found", nil)
}

// List serves the public job board. Anonymous and non-admin callers only
// ever see active jobs; admins may widen the filter.
func (s *JobService) List(ctx context.Context, actor authz.Actor, filter job.ListFilter) ([]job.Job, error) {
	if !actor.IsAdmin() || filter.IsActive == nil {
		active := true
		filter.IsActive = &active
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	key := listCacheKey(filter)
	if cached, ok := s.cacheGetList(ctx, key); ok {
		return cached, nil
	}
	items, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cacheSetList(ctx, key, items)
	return items, nil
}

// ListMine returns the actor's own postings, inactive ones included.
func (s *JobService) ListMine(ctx context.Context, actor authz.Actor) ([]job.Job, error) {
	if !authz.Evaluate(actor, authz.IsAdminOrEmployer) {
		return nil, common.NewError(common.CodeForbidden, "employer access required", nil)
	}
	return s.jobs.List(ctx, job.ListFilter{CreatedBy: actor.ID, Limit: 100})
}

// DeactivateStale bulk-deactivates active jobs older than the given number
// of days. Zero or negative days falls back to the 90-day default.
func (s *JobService) DeactivateStale(ctx context.Context, actor authz.Actor, days int) (int64, error) {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return 0, common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	if days <= 0 {
		days = defaultStaleJobDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	count, err := s.jobs.DeactivateOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.cacheInvalidate(ctx, "")
	}
	s.logInfo(fmt.Sprintf("stale jobs deactivated count=%d days=%d", count, days))
	return count, nil
}

func listCacheKey(filter job.ListFilter) string {
	active := ""
	if filter.IsActive != nil {
		active = fmt.Sprintf("%t", *filter.IsActive)
	}
	remote := ""
	if filter.IsRemote != nil {
		remote = fmt.Sprintf("%t", *filter.IsRemote)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%d|%d",
		filter.CreatedBy, filter.CategoryID, filter.JobTypeID, filter.LocationID,
		remote, active, filter.Search, filter.OrderBy, filter.Limit, filter.Offset)
}

// jobSlug derives the unique URL slug from the title and the creator, so
// two employers posting the same title never collide.
func jobSlug(title string, createdBy common.UUID) string {
	return company.Slugify(title + "-" + string(createdBy))
}

func (s *JobService) cacheGetJob(ctx context.Context, id common.UUID) (*job.Job, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.GetJob(ctx, id)
}

func (s *JobService) cacheSetJob(ctx context.Context, j *job.Job) {
	if s.cache == nil {
		return
	}
	s.cache.SetJob(ctx, j)
}

func (s *JobService) cacheGetList(ctx context.Context, key string) ([]job.Job, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.GetList(ctx, key)
}

func (s *JobService) cacheSetList(ctx context.Context, key string, jobs []job.Job) {
	if s.cache == nil {
		return
	}
	s.cache.SetList(ctx, key, jobs)
}

func (s *JobService) cacheInvalidate(ctx context.Context, id common.UUID) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, id)
}

func (s *JobService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
