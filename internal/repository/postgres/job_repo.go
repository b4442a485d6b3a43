package postgres

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (title, company_name, department, location, description,
		                  salary_min, salary_max, status, applications_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10)
		RETURNING id`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.ApplicationsCount = 0

	return r.db.QueryRow(ctx, query,
		job.Title, job.CompanyName, job.Department, job.Location, job.Description,
		job.SalaryMin, job.SalaryMax, job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, title, company_name, department, location, description,
		       salary_min, salary_max, status, applications_count, created_at, updated_at
		FROM jobs
		WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.CompanyName, &job.Department, &job.Location, &job.Description,
		&job.SalaryMin, &job.SalaryMax, &job.Status, &job.ApplicationsCount, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, company_name, department, location, description,
		       salary_min, salary_max, status, applications_count, created_at, updated_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.CompanyName, &job.Department, &job.Location, &job.Description,
			&job.SalaryMin, &job.SalaryMax, &job.Status, &job.ApplicationsCount, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecountApplications recomputes applications_count from the applications
// table. Idempotent; used as the repair path for counter drift.
func (r *jobRepo) RecountApplications(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE jobs
		SET applications_count = (SELECT COUNT(*) FROM applications WHERE job_id = jobs.id),
		    updated_at = $2
		WHERE id = $1
		RETURNING applications_count`

	var count int
	err := r.db.QueryRow(ctx, query, id, time.Now()).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return count, nil
}
