package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

// Reference-data repositories back the category, job-type and location
// lookups. All three tables are small and read-heavy; lists return every
// row ordered by name.

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c job.Category) (*job.Category, error) {
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO categories (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "category name already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create category", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c job.Category) (*job.Category, error) {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE categories SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		c.Name, c.Description, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "category name already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update category", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "category not found", sql.ErrNoRows)
	}
	return &c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id common.UUID) (*job.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`, id)
	var c job.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "category not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load category", err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]job.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list categories", err)
	}
	defer rows.Close()
	items := []job.Category{}
	for rows.Next() {
		var c job.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan category", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list categories", err)
	}
	return items, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete category", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "category not found", sql.ErrNoRows)
	}
	return nil
}

type JobTypeRepository struct {
	db *sql.DB
}

func NewJobTypeRepository(db *sql.DB) *JobTypeRepository {
	return &JobTypeRepository{db: db}
}

func (r *JobTypeRepository) Create(ctx context.Context, t job.JobType) (*job.JobType, error) {
	t.ID = common.NewUUID()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_types (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "job type name already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create job type", err)
	}
	return &t, nil
}

func (r *JobTypeRepository) Update(ctx context.Context, t job.JobType) (*job.JobType, error) {
	t.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE job_types SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		t.Name, t.Description, t.UpdatedAt, t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "job type name already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update job type", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job type not found", sql.ErrNoRows)
	}
	return &t, nil
}

func (r *JobTypeRepository) GetByID(ctx context.Context, id common.UUID) (*job.JobType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, created_at, updated_at FROM job_types WHERE id = $1`, id)
	var t job.JobType
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job type not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job type", err)
	}
	return &t, nil
}

func (r *JobTypeRepository) List(ctx context.Context) ([]job.JobType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, created_at, updated_at FROM job_types ORDER BY name ASC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job types", err)
	}
	defer rows.Close()
	items := []job.JobType{}
	for rows.Next() {
		var t job.JobType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job type", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job types", err)
	}
	return items, nil
}

func (r *JobTypeRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_types WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job type", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job type not found", sql.ErrNoRows)
	}
	return nil
}

type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, l job.Location) (*job.Location, error) {
	l.ID = common.NewUUID()
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO locations (id, city, state, country, postal_code, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.City, l.State, l.Country, l.PostalCode, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "location already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create location", err)
	}
	return &l, nil
}

func (r *LocationRepository) Update(ctx context.Context, l job.Location) (*job.Location, error) {
	l.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE locations SET city = $1, state = $2, country = $3, postal_code = $4, updated_at = $5 WHERE id = $6`,
		l.City, l.State, l.Country, l.PostalCode, l.UpdatedAt, l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "location already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update location", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "location not found", sql.ErrNoRows)
	}
	return &l, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id common.UUID) (*job.Location, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, city, state, country, postal_code, created_at, updated_at FROM locations WHERE id = $1`, id)
	var l job.Location
	if err := row.Scan(&l.ID, &l.City, &l.State, &l.Country, &l.PostalCode, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "location not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load location", err)
	}
	return &l, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]job.Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, city, state, country, postal_code, created_at, updated_at FROM locations ORDER BY country ASC, city ASC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list locations", err)
	}
	defer rows.Close()
	items := []job.Location{}
	for rows.Next() {
		var l job.Location
		if err := rows.Scan(&l.ID, &l.City, &l.State, &l.Country, &l.PostalCode, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan location", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list locations", err)
	}
	return items, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete location", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "location not found", sql.ErrNoRows)
	}
	return nil
}
