package usecase

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (uc *jobUsecase) CreateJob(ctx context.Context, job *domain.Job) error {
	if job.Title == "" || job.CompanyName == "" {
		return apperror.Validation("Job title and company name are required")
	}
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if !domain.ValidJobStatus(job.Status) {
		return apperror.Validation("Invalid job status")
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

func (uc *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Storage(err)
	}
	return job, nil
}

func (uc *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	jobs, total, err := uc.jobRepo.Fetch(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperror.Storage(err)
	}
	return jobs, total, nil
}

func (uc *jobUsecase) UpdateJobStatus(ctx context.Context, id int64, status string) (*domain.Job, error) {
	if !domain.ValidJobStatus(status) {
		return nil, apperror.Validation("Invalid job status")
	}

	job, err := uc.GetJobDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperror.Storage(err)
	}

	job.Status = status
	return job, nil
}

// RecountApplications is the idempotent repair path for the denormalized
// applications counter: recompute from the applications table.
func (uc *jobUsecase) RecountApplications(ctx context.Context, id int64) (int, error) {
	if _, err := uc.GetJobDetails(ctx, id); err != nil {
		return 0, err
	}

	count, err := uc.jobRepo.RecountApplications(ctx, id)
	if err != nil {
		return 0, apperror.Storage(err)
	}
	return count, nil
}
