package postgres

import (
	"context"
	"errors"
	"fmt"
	"recruitflow-backend/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts the application and bumps the job's denormalized counter
// in the same transaction, so the counter never drifts on the happy path.
// The unique index on (candidate_id, job_id) backstops the usecase's
// pre-check; a violation surfaces as ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	insert := `
		INSERT INTO applications (job_id, candidate_id, applied_by_user_id, applied_by_partner_id,
		                          pipeline_stage, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err = tx.QueryRow(ctx, insert,
		app.JobID, app.CandidateID, app.AppliedByUserID, app.AppliedByPartnerID,
		app.PipelineStage, app.Source, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicate
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE jobs SET applications_count = applications_count + 1, updated_at = $2 WHERE id = $1`,
		app.JobID, now,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const applicationSelect = `
	SELECT a.id, a.job_id, a.candidate_id, a.applied_by_user_id, a.applied_by_partner_id,
	       a.pipeline_stage, a.final_status, a.source,
	       a.contacted_at, a.interview_scheduled_at, a.interview_completed_at,
	       a.offer_sent_at, a.offer_accepted_at, a.offer_rejected_at,
	       a.hired_at, a.rejected_at,
	       a.created_at, a.updated_at,
	       j.title, j.company_name,
	       c.name, c.email,
	       p.organisation_name AS partner_name,
	       u.name AS submitter_name
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN candidates c ON c.id = a.candidate_id
	LEFT JOIN partners p ON p.id = a.applied_by_partner_id
	LEFT JOIN users u ON u.id = a.applied_by_user_id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.AppliedByUserID, &app.AppliedByPartnerID,
		&app.PipelineStage, &app.FinalStatus, &app.Source,
		&app.ContactedAt, &app.InterviewScheduledAt, &app.InterviewCompletedAt,
		&app.OfferSentAt, &app.OfferAcceptedAt, &app.OfferRejectedAt,
		&app.HiredAt, &app.RejectedAt,
		&app.CreatedAt, &app.UpdatedAt,
		&app.JobTitle, &app.CompanyName,
		&app.CandidateName, &app.CandidateEmail,
		&app.PartnerName,
		&app.SubmitterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := applicationSelect + ` WHERE a.id = $1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

func (r *applicationRepo) Exists(ctx context.Context, candidateID, jobID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications SET
			pipeline_stage = $2, final_status = $3,
			contacted_at = $4, interview_scheduled_at = $5, interview_completed_at = $6,
			offer_sent_at = $7, offer_accepted_at = $8, offer_rejected_at = $9,
			hired_at = $10, rejected_at = $11,
			updated_at = $12
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		app.ID,
		app.PipelineStage, app.FinalStatus,
		app.ContactedAt, app.InterviewScheduledAt, app.InterviewCompletedAt,
		app.OfferSentAt, app.OfferAcceptedAt, app.OfferRejectedAt,
		app.HiredAt, app.RejectedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := applicationSelect
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.JobID != nil {
		addCondition("a.job_id = $%d", *filter.JobID)
	}
	if filter.UserID != nil {
		addCondition("a.applied_by_user_id = $%d", *filter.UserID)
	}
	if filter.PartnerID != nil {
		addCondition("a.applied_by_partner_id = $%d", *filter.PartnerID)
	}
	if filter.Stage != nil {
		addCondition("a.pipeline_stage = $%d", string(*filter.Stage))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
