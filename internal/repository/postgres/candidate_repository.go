package postgres

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `
	id, name, email, phone,
	current_location, preferred_locations, hometown, pincode,
	total_experience, current_company, current_designation, department, industry,
	skills, current_salary, expected_salary, notice_period_days,
	highest_qualification, specialization, university, graduation_year,
	date_of_birth, gender, marital_status,
	created_by_user_id, created_by_partner_id,
	created_at, updated_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.CurrentLocation, &c.PreferredLocations, &c.Hometown, &c.Pincode,
		&c.TotalExperience, &c.CurrentCompany, &c.CurrentDesignation, &c.Department, &c.Industry,
		&c.Skills, &c.CurrentSalary, &c.ExpectedSalary, &c.NoticePeriodDays,
		&c.HighestQualification, &c.Specialization, &c.University, &c.GraduationYear,
		&c.DateOfBirth, &c.Gender, &c.MaritalStatus,
		&c.CreatedByUserID, &c.CreatedByPartnerID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByEmailPhone looks up a candidate by the composite dedup key.
func (r *candidateRepo) GetByEmailPhone(ctx context.Context, email, phone string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1 AND phone = $2`
	return scanCandidate(r.db.QueryRow(ctx, query, email, phone))
}

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (
			name, email, phone,
			current_location, preferred_locations, hometown, pincode,
			total_experience, current_company, current_designation, department, industry,
			skills, current_salary, expected_salary, notice_period_days,
			highest_qualification, specialization, university, graduation_year,
			date_of_birth, gender, marital_status,
			created_by_user_id, created_by_partner_id,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		)
		RETURNING id`

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone,
		c.CurrentLocation, pq.Array(c.PreferredLocations), c.Hometown, c.Pincode,
		c.TotalExperience, c.CurrentCompany, c.CurrentDesignation, c.Department, c.Industry,
		pq.Array(c.Skills), c.CurrentSalary, c.ExpectedSalary, c.NoticePeriodDays,
		c.HighestQualification, c.Specialization, c.University, c.GraduationYear,
		c.DateOfBirth, c.Gender, c.MaritalStatus,
		c.CreatedByUserID, c.CreatedByPartnerID,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
		UPDATE candidates SET
			current_location = $2, preferred_locations = $3, hometown = $4, pincode = $5,
			total_experience = $6, current_company = $7, current_designation = $8,
			department = $9, industry = $10, skills = $11,
			current_salary = $12, expected_salary = $13, notice_period_days = $14,
			highest_qualification = $15, specialization = $16, university = $17,
			graduation_year = $18, date_of_birth = $19, gender = $20, marital_status = $21,
			updated_at = $22
		WHERE id = $1`

	c.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		c.ID,
		c.CurrentLocation, pq.Array(c.PreferredLocations), c.Hometown, c.Pincode,
		c.TotalExperience, c.CurrentCompany, c.CurrentDesignation,
		c.Department, c.Industry, pq.Array(c.Skills),
		c.CurrentSalary, c.ExpectedSalary, c.NoticePeriodDays,
		c.HighestQualification, c.Specialization, c.University,
		c.GraduationYear, c.DateOfBirth, c.Gender, c.MaritalStatus,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
