package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, title, description, company_id, created_by, category_id, job_type_id, location_id, salary, is_remote, is_active, slug, created_at, updated_at`

func scanJob(row interface{ Scan(dest ...any) error }) (*job.Job, error) {
	var j job.Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.CompanyID, &j.CreatedBy, &j.CategoryID, &j.JobTypeID, &j.LocationID, &j.Salary, &j.IsRemote, &j.IsActive, &j.Slug, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, title, description, company_id, created_by, category_id, job_type_id, location_id, salary, is_remote, is_active, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		j.ID, j.Title, j.Description, j.CompanyID, j.CreatedBy, j.CategoryID, j.JobTypeID, j.LocationID, j.Salary, j.IsRemote, j.IsActive, j.Slug, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "job slug already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, company_id = $3, category_id = $4, job_type_id = $5, location_id = $6, salary = $7, is_remote = $8, is_active = $9, slug = $10, updated_at = $11
		WHERE id = $12`,
		j.Title, j.Description, j.CompanyID, j.CategoryID, j.JobTypeID, j.LocationID, j.Salary, j.IsRemote, j.IsActive, j.Slug, j.UpdatedAt, j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return j, nil
}

func (r *JobRepository) List(ctx context.Context, filter job.ListFilter) ([]job.Job, error) {
	var (
		where []string
		args  []any
	)
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		where = append(where, "created_by = $"+strconv.Itoa(len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, "category_id = $"+strconv.Itoa(len(args)))
	}
	if filter.JobTypeID != "" {
		args = append(args, filter.JobTypeID)
		where = append(where, "job_type_id = $"+strconv.Itoa(len(args)))
	}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		where = append(where, "location_id = $"+strconv.Itoa(len(args)))
	}
	if filter.IsRemote != nil {
		args = append(args, *filter.IsRemote)
		where = append(where, "is_remote = $"+strconv.Itoa(len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where = append(where, "is_active = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(title ILIKE $"+n+" OR description ILIKE $"+n+")")
	}
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	switch filter.OrderBy {
	case "salary":
		query += " ORDER BY salary DESC NULLS LAST"
	case "title":
		query += " ORDER BY title ASC"
	default:
		query += " ORDER BY created_at DESC"
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	items := []job.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return items, nil
}

func (r *JobRepository) DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE AND created_at < $2`,
		time.Now().UTC(), cutoff)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to deactivate old jobs", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count deactivated jobs", err)
	}
	return rows, nil
}
