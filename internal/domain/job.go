package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
)

// Job status constants. Applications may only be created against OPEN jobs.
const (
	JobStatusOpen      = "OPEN"
	JobStatusClosed    = "CLOSED"
	JobStatusOnHold    = "ON_HOLD"
	JobStatusCancelled = "CANCELLED"
)

type Job struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	CompanyName string  `json:"company_name"`
	Department  *string `json:"department,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	SalaryMin   *int64  `json:"salary_min,omitempty"`
	SalaryMax   *int64  `json:"salary_max,omitempty"`
	Status      string  `json:"status"`
	// ApplicationsCount is denormalized and maintained in the same
	// transaction as application creation.
	ApplicationsCount int       `json:"applications_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ValidJobStatus(status string) bool {
	switch status {
	case JobStatusOpen, JobStatusClosed, JobStatusOnHold, JobStatusCancelled:
		return true
	}
	return false
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// RecountApplications recomputes applications_count from the
	// applications table and returns the repaired value.
	RecountApplications(ctx context.Context, id int64) (int, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	UpdateJobStatus(ctx context.Context, id int64, status string) (*Job, error)
	RecountApplications(ctx context.Context, id int64) (int, error)
}
