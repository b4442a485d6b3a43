package usecase

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	validate      *validator.Validate
}

// NewCandidateUsecase creates a new candidate usecase
func NewCandidateUsecase(candidateRepo domain.CandidateRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		validate:      validate,
	}
}

// Resolve maps a submission to its canonical candidate record, keyed by
// (email, phone). First submission creates the record attributed to the
// actor; later submissions enrich it fill-only.
func (uc *candidateUsecase) Resolve(ctx context.Context, sub *domain.CandidateSubmission, actor domain.Actor) (*domain.Candidate, error) {
	// 1. Required fields: name, email, phone
	if err := uc.validate.Struct(sub); err != nil {
		return nil, apperror.Validation("Candidate name, email and phone are required")
	}

	// 2. Exact lookup on the composite key
	existing, err := uc.candidateRepo.GetByEmailPhone(ctx, sub.Email, sub.Phone)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Storage(err)
	}

	// 3a. Create on first submission
	if existing == nil {
		candidate := domain.NewCandidate(sub, actor)
		if err := uc.candidateRepo.Create(ctx, candidate); err != nil {
			return nil, apperror.Storage(err)
		}
		return candidate, nil
	}

	// 3b. Enrich on resubmission; existing non-null values always win.
	if domain.MergeFillOnly(existing, sub) {
		if err := uc.candidateRepo.Update(ctx, existing); err != nil {
			return nil, apperror.Storage(err)
		}
	}

	return existing, nil
}
