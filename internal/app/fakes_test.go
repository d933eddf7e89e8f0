package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == account.Username || existing.Email == account.Email {
			return nil, common.NewError(common.CodeConflict, "username or email already taken", nil)
		}
	}
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := account
	r.users[account.ID] = &stored
	return &account, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[account.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.UpdatedAt = time.Now().UTC()
	stored := account
	r.users[account.ID] = &stored
	return &account, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.users[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *account
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.users {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.users {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []user.User
	for _, account := range r.users {
		if filter.Role != "" && account.Role != filter.Role {
			continue
		}
		if filter.IsActive != nil && account.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(account.Username, filter.Search) && !strings.Contains(account.Email, filter.Search) {
			continue
		}
		items = append(items, *account)
	}
	return items, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.users, id)
	return nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]auth.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]auth.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Store(ctx context.Context, token auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	copied := value
	return &copied, nil
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	value.RevokedAt = &revokedAt
	r.tokens[token] = value
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	for key, value := range r.tokens {
		if value.UserID == userID {
			value.RevokedAt = &revokedAt
			r.tokens[key] = value
		}
	}
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[common.UUID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[common.UUID]*company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.Name == c.Name {
			return nil, common.NewError(common.CodeConflict, "company name already taken", nil)
		}
	}
	c.ID = common.NewUUID()
	c.CreatedAt = time.Now().UTC()
	stored := c
	r.companies[c.ID] = &stored
	return &c, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	stored := c
	r.companies[c.ID] = &stored
	return &c, nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCompanyRepo) GetByCreator(ctx context.Context, creatorID common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.CreatedBy == creatorID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "company not found", nil)
}

func (r *fakeCompanyRepo) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []company.Company
	for _, c := range r.companies {
		if c.IsActive {
			items = append(items, *c)
		}
	}
	return items, nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	delete(r.companies, id)
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	stored := j
	r.jobs[j.ID] = &stored
	return &j, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.UpdatedAt = time.Now().UTC()
	stored := j
	r.jobs[j.ID] = &stored
	return &j, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJobRepo) List(ctx context.Context, filter job.ListFilter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.jobs {
		if filter.CreatedBy != "" && j.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.CategoryID != "" && j.CategoryID != filter.CategoryID {
			continue
		}
		if filter.IsActive != nil && j.IsActive != *filter.IsActive {
			continue
		}
		if filter.IsRemote != nil && j.IsRemote != *filter.IsRemote {
			continue
		}
		items = append(items, *j)
	}
	return items, nil
}

func (r *fakeJobRepo) DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, j := range r.jobs {
		if j.IsActive && j.CreatedAt.Before(cutoff) {
			j.IsActive = false
			count++
		}
	}
	return count, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[common.UUID]*job.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[common.UUID]*job.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c job.Category) (*job.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = common.NewUUID()
	stored := c
	r.categories[c.ID] = &stored
	return &c, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c job.Category) (*job.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "category not found", nil)
	}
	stored := c
	r.categories[c.ID] = &stored
	return &c, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id common.UUID) (*job.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "category not found", nil)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]job.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Category
	for _, c := range r.categories {
		items = append(items, *c)
	}
	return items, nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return common.NewError(common.CodeNotFound, "category not found", nil)
	}
	delete(r.categories, id)
	return nil
}

type fakeJobTypeRepo struct {
	mu    sync.Mutex
	types map[common.UUID]*job.JobType
}

func newFakeJobTypeRepo() *fakeJobTypeRepo {
	return &fakeJobTypeRepo{types: make(map[common.UUID]*job.JobType)}
}

func (r *fakeJobTypeRepo) Create(ctx context.Context, t job.JobType) (*job.JobType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = common.NewUUID()
	stored := t
	r.types[t.ID] = &stored
	return &t, nil
}

func (r *fakeJobTypeRepo) Update(ctx context.Context, t job.JobType) (*job.JobType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[t.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "job type not found", nil)
	}
	stored := t
	r.types[t.ID] = &stored
	return &t, nil
}

func (r *fakeJobTypeRepo) GetByID(ctx context.Context, id common.UUID) (*job.JobType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.types[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job type not found", nil)
	}
	copied := *t
	return &copied, nil
}

func (r *fakeJobTypeRepo) List(ctx context.Context) ([]job.JobType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.JobType
	for _, t := range r.types {
		items = append(items, *t)
	}
	return items, nil
}

func (r *fakeJobTypeRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.types, id)
	return nil
}

type fakeLocationRepo struct {
	mu        sync.Mutex
	locations map[common.UUID]*job.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[common.UUID]*job.Location)}
}

func (r *fakeLocationRepo) Create(ctx context.Context, l job.Location) (*job.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = common.NewUUID()
	stored := l
	r.locations[l.ID] = &stored
	return &l, nil
}

func (r *fakeLocationRepo) Update(ctx context.Context, l job.Location) (*job.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locations[l.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "location not found", nil)
	}
	stored := l
	r.locations[l.ID] = &stored
	return &l, nil
}

func (r *fakeLocationRepo) GetByID(ctx context.Context, id common.UUID) (*job.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locations[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "location not found", nil)
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLocationRepo) List(ctx context.Context) ([]job.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Location
	for _, l := range r.locations {
		items = append(items, *l)
	}
	return items, nil
}

func (r *fakeLocationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locations, id)
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[common.UUID]*application.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return nil, common.NewError(common.CodeConflict, "already applied to this job", nil)
		}
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	stored := app
	r.apps[app.ID] = &stored
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if app.JobID == jobID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if app.ApplicantID == applicantID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.UpdatedAt = time.Now().UTC()
	stored := app
	r.apps[app.ID] = &stored
	return &app, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *capturePublisher) Publish(e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) last() (event.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return event.Event{}, false
	}
	return p.events[len(p.events)-1], true
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type noopCache struct{}

func (noopCache) GetJob(ctx context.Context, id common.UUID) (*job.Job, bool) {
	return nil, false
}

func (noopCache) SetJob(ctx context.Context, j *job.Job) {}

func (noopCache) GetList(ctx context.Context, key string) ([]job.Job, bool) {
	return nil, false
}

func (noopCache) SetList(ctx context.Context, key string, jobs []job.Job) {}

func (noopCache) Invalidate(ctx context.Context, id common.UUID) {}

type recordingCache struct {
	noopCache
	mu          sync.Mutex
	invalidated []common.UUID
}

func (c *recordingCache) Invalidate(ctx context.Context, id common.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
}
