package domain

import (
	"context"
	"time"
)

// PipelineStage is the closed, ordered set of hiring steps.
type PipelineStage string

const (
	StageApplied            PipelineStage = "APPLIED"
	StageScreening          PipelineStage = "SCREENING"
	StageContacted          PipelineStage = "CONTACTED"
	StageDocumentRequested  PipelineStage = "DOCUMENT_REQUESTED"
	StageDocumentReceived   PipelineStage = "DOCUMENT_RECEIVED"
	StageSubmittedToClient  PipelineStage = "SUBMITTED_TO_CLIENT"
	StageInterviewScheduled PipelineStage = "INTERVIEW_SCHEDULED"
	StageInterviewCompleted PipelineStage = "INTERVIEW_COMPLETED"
	StageShortlisted        PipelineStage = "SHORTLISTED"
	StageOfferSent          PipelineStage = "OFFER_SENT"
	StageOfferAccepted      PipelineStage = "OFFER_ACCEPTED"
	StageOfferRejected      PipelineStage = "OFFER_REJECTED"
	StageHired              PipelineStage = "HIRED"
	StageRejected           PipelineStage = "REJECTED"
)

// PipelineStages lists every stage in pipeline order. Dashboard pipeline
// maps are zero-filled from this list.
var PipelineStages = []PipelineStage{
	StageApplied,
	StageScreening,
	StageContacted,
	StageDocumentRequested,
	StageDocumentReceived,
	StageSubmittedToClient,
	StageInterviewScheduled,
	StageInterviewCompleted,
	StageShortlisted,
	StageOfferSent,
	StageOfferAccepted,
	StageOfferRejected,
	StageHired,
	StageRejected,
}

func (s PipelineStage) Valid() bool {
	for _, stage := range PipelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Final status values. WITHDRAWN is an overlay reachable from any stage.
const (
	FinalStatusHired     = "HIRED"
	FinalStatusRejected  = "REJECTED"
	FinalStatusWithdrawn = "WITHDRAWN"
)

// Source channel tags. Derived from the actor role unless the submitter
// provides an explicit channel such as "LINKEDIN" or "REFERRAL".
const (
	SourcePartner   = "PARTNER"
	SourceRecruiter = "RECRUITER"
	SourceUser      = "USER"
)

// Application joins exactly one candidate to exactly one job, attributed
// to exactly one submitting actor.
type Application struct {
	ID          int64 `json:"id"`
	JobID       int64 `json:"job_id"`
	CandidateID int64 `json:"candidate_id"`

	// Exactly one of these is set.
	AppliedByUserID    *string `json:"applied_by_user_id,omitempty"`
	AppliedByPartnerID *int64  `json:"applied_by_partner_id,omitempty"`

	PipelineStage PipelineStage `json:"pipeline_stage"`
	FinalStatus   *string       `json:"final_status,omitempty"`
	Source        string        `json:"source"`

	ContactedAt          *time.Time `json:"contacted_at,omitempty"`
	InterviewScheduledAt *time.Time `json:"interview_scheduled_at,omitempty"`
	InterviewCompletedAt *time.Time `json:"interview_completed_at,omitempty"`
	OfferSentAt          *time.Time `json:"offer_sent_at,omitempty"`
	OfferAcceptedAt      *time.Time `json:"offer_accepted_at,omitempty"`
	OfferRejectedAt      *time.Time `json:"offer_rejected_at,omitempty"`
	HiredAt              *time.Time `json:"hired_at,omitempty"`
	RejectedAt           *time.Time `json:"rejected_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle       *string `json:"job_title,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	CandidateName  *string `json:"candidate_name,omitempty"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	PartnerName    *string `json:"partner_name,omitempty"`
	SubmitterName  *string `json:"submitter_name,omitempty"`
}

// AdvanceTo moves the application to stage and applies the stage's side
// effects. Milestone timestamps are stamped first-write-only: re-entering
// a stage never moves the original milestone.
func (a *Application) AdvanceTo(stage PipelineStage, now time.Time) {
	a.PipelineStage = stage

	switch stage {
	case StageContacted:
		stampOnce(&a.ContactedAt, now)
	case StageInterviewScheduled:
		stampOnce(&a.InterviewScheduledAt, now)
	case StageInterviewCompleted:
		stampOnce(&a.InterviewCompletedAt, now)
	case StageOfferSent:
		stampOnce(&a.OfferSentAt, now)
	case StageOfferAccepted:
		stampOnce(&a.OfferAcceptedAt, now)
	case StageOfferRejected:
		stampOnce(&a.OfferRejectedAt, now)
	case StageHired:
		status := FinalStatusHired
		a.FinalStatus = &status
		stampOnce(&a.HiredAt, now)
	case StageRejected:
		status := FinalStatusRejected
		a.FinalStatus = &status
		stampOnce(&a.RejectedAt, now)
	}

	a.UpdatedAt = now
}

// Withdraw marks the application withdrawn without touching the stage.
func (a *Application) Withdraw(now time.Time) {
	status := FinalStatusWithdrawn
	a.FinalStatus = &status
	a.UpdatedAt = now
}

func stampOnce(t **time.Time, now time.Time) {
	if *t == nil {
		v := now
		*t = &v
	}
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	JobID     *int64
	UserID    *string
	PartnerID *int64
	Stage     *PipelineStage
}

type ApplicationRepository interface {
	// Create inserts the application and increments the job's
	// applications_count in one transaction. A (candidate_id, job_id)
	// unique violation is returned as ErrDuplicate.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	Exists(ctx context.Context, candidateID, jobID int64) (bool, error)
	Update(ctx context.Context, app *Application) error
	List(ctx context.Context, filter ApplicationFilter) ([]Application, error)
}

type ApplicationUsecase interface {
	ApplyToJob(ctx context.Context, jobID int64, sub *CandidateSubmission, actor Actor, channel string) (*Application, error)
	AdvanceStage(ctx context.Context, applicationID int64, stage PipelineStage) (*Application, error)
	Withdraw(ctx context.Context, applicationID int64) (*Application, error)
	ListApplicationsFor(ctx context.Context, actor Actor, filter ApplicationFilter) ([]Application, error)
}
