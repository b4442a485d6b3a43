package usecase

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"
	"time"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateUC     domain.CandidateUsecase
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateUC domain.CandidateUsecase,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		candidateUC:     candidateUC,
		now:             time.Now,
	}
}

// ApplyToJob submits a candidate against an open job on behalf of the
// actor. The candidate is resolved through the global dedup store first.
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, jobID int64, sub *domain.CandidateSubmission, actor domain.Actor, channel string) (*domain.Application, error) {
	// 1. Validate job exists and is open
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Storage(err)
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperror.InvalidState("Job is not open for applications")
	}

	// 2. Partners must carry a resolved partner id
	if actor.Role == domain.RolePartner && actor.PartnerID == nil {
		return nil, apperror.InvalidState("Partner profile is not approved")
	}

	// 3. Resolve candidate (create or fill-only enrich)
	candidate, err := uc.candidateUC.Resolve(ctx, sub, actor)
	if err != nil {
		return nil, err
	}

	// 4. One application per (candidate, job), system-wide
	exists, err := uc.applicationRepo.Exists(ctx, candidate.ID, jobID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if exists {
		return nil, apperror.Conflict("Candidate already applied to this job")
	}

	now := uc.now()
	app := &domain.Application{
		JobID:         jobID,
		CandidateID:   candidate.ID,
		PipelineStage: domain.StageApplied,
		Source:        deriveSource(actor, channel),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Attribution is mutually exclusive: partner id for partners,
	// user id for users and recruiters.
	if actor.Role == domain.RolePartner {
		app.AppliedByPartnerID = actor.PartnerID
	} else {
		userID := actor.UserID
		app.AppliedByUserID = &userID
	}

	// 5. Insert + counter increment happen in one transaction in the
	// repository. The storage-level unique constraint closes the race
	// left open by the pre-check above.
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Candidate already applied to this job")
		}
		return nil, apperror.Storage(err)
	}

	return app, nil
}

// AdvanceStage moves an application to a new pipeline stage and stamps
// the associated milestone. Job status is intentionally not re-checked:
// an application keeps progressing even if its job has since closed.
func (uc *applicationUsecase) AdvanceStage(ctx context.Context, applicationID int64, stage domain.PipelineStage) (*domain.Application, error) {
	if !stage.Valid() {
		return nil, apperror.Validation("Invalid pipeline stage")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Storage(err)
	}

	app.AdvanceTo(stage, uc.now())

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Storage(err)
	}

	return app, nil
}

// Withdraw records a candidate-initiated withdrawal as a final-status
// overlay, independent of the current pipeline stage.
func (uc *applicationUsecase) Withdraw(ctx context.Context, applicationID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Storage(err)
	}

	if app.FinalStatus != nil {
		return nil, apperror.InvalidState("Application already has a final status")
	}

	app.Withdraw(uc.now())

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Storage(err)
	}

	return app, nil
}

// ListApplicationsFor returns applications visible to the actor. Admins
// see everything; other roles are pinned to their own attribution id.
func (uc *applicationUsecase) ListApplicationsFor(ctx context.Context, actor domain.Actor, filter domain.ApplicationFilter) ([]domain.Application, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		// Filter passes through untouched.
	case domain.RolePartner:
		if actor.PartnerID == nil {
			return nil, apperror.Forbidden("Partner profile is not approved")
		}
		filter.PartnerID = actor.PartnerID
		filter.UserID = nil
	default:
		userID := actor.UserID
		filter.UserID = &userID
		filter.PartnerID = nil
	}

	apps, err := uc.applicationRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return apps, nil
}

// deriveSource picks the channel tag: an explicit one from the submitter
// wins, otherwise it follows the actor role.
func deriveSource(actor domain.Actor, channel string) string {
	if channel != "" {
		return channel
	}
	switch actor.Role {
	case domain.RolePartner:
		return domain.SourcePartner
	case domain.RoleRecruiter:
		return domain.SourceRecruiter
	default:
		return domain.SourceUser
	}
}
