package domain

import (
	"context"
	"time"
)

// Candidate is a global profile keyed by (email, phone). A candidate is
// created on first submission and only ever enriched afterwards: repeated
// submissions fill fields that are still empty, never overwrite.
type Candidate struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	CurrentLocation    *string  `json:"current_location,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	Hometown           *string  `json:"hometown,omitempty"`
	Pincode            *string  `json:"pincode,omitempty"`

	TotalExperience    *float64 `json:"total_experience,omitempty"` // years
	CurrentCompany     *string  `json:"current_company,omitempty"`
	CurrentDesignation *string  `json:"current_designation,omitempty"`
	Department         *string  `json:"department,omitempty"`
	Industry           *string  `json:"industry,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	CurrentSalary      *int64   `json:"current_salary,omitempty"`
	ExpectedSalary     *int64   `json:"expected_salary,omitempty"`
	NoticePeriodDays   *int     `json:"notice_period_days,omitempty"`

	HighestQualification *string `json:"highest_qualification,omitempty"`
	Specialization       *string `json:"specialization,omitempty"`
	University           *string `json:"university,omitempty"`
	GraduationYear       *int    `json:"graduation_year,omitempty"`

	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`

	// Ownership attribution: at most one of these is set, recording
	// whichever actor first created the record.
	CreatedByUserID    *string `json:"created_by_user_id,omitempty"`
	CreatedByPartnerID *int64  `json:"created_by_partner_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CandidateSubmission is the inbound candidate payload attached to an
// application. Name, email and phone are mandatory; everything else is
// optional enrichment.
type CandidateSubmission struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`

	CurrentLocation    *string  `json:"current_location,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	Hometown           *string  `json:"hometown,omitempty"`
	Pincode            *string  `json:"pincode,omitempty"`

	TotalExperience    *float64 `json:"total_experience,omitempty"`
	CurrentCompany     *string  `json:"current_company,omitempty"`
	CurrentDesignation *string  `json:"current_designation,omitempty"`
	Department         *string  `json:"department,omitempty"`
	Industry           *string  `json:"industry,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	CurrentSalary      *int64   `json:"current_salary,omitempty"`
	ExpectedSalary     *int64   `json:"expected_salary,omitempty"`
	NoticePeriodDays   *int     `json:"notice_period_days,omitempty"`

	HighestQualification *string `json:"highest_qualification,omitempty"`
	Specialization       *string `json:"specialization,omitempty"`
	University           *string `json:"university,omitempty"`
	GraduationYear       *int    `json:"graduation_year,omitempty"`

	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`
}

// NewCandidate builds a fresh candidate from a submission, attributing
// ownership to the actor.
func NewCandidate(sub *CandidateSubmission, actor Actor) *Candidate {
	c := &Candidate{
		Name:  sub.Name,
		Email: sub.Email,
		Phone: sub.Phone,

		CurrentLocation:    sub.CurrentLocation,
		PreferredLocations: sub.PreferredLocations,
		Hometown:           sub.Hometown,
		Pincode:            sub.Pincode,

		TotalExperience:    sub.TotalExperience,
		CurrentCompany:     sub.CurrentCompany,
		CurrentDesignation: sub.CurrentDesignation,
		Department:         sub.Department,
		Industry:           sub.Industry,
		Skills:             sub.Skills,
		CurrentSalary:      sub.CurrentSalary,
		ExpectedSalary:     sub.ExpectedSalary,
		NoticePeriodDays:   sub.NoticePeriodDays,

		HighestQualification: sub.HighestQualification,
		Specialization:       sub.Specialization,
		University:           sub.University,
		GraduationYear:       sub.GraduationYear,

		DateOfBirth:   sub.DateOfBirth,
		Gender:        sub.Gender,
		MaritalStatus: sub.MaritalStatus,
	}

	if actor.Role == RolePartner {
		c.CreatedByPartnerID = actor.PartnerID
	} else {
		userID := actor.UserID
		c.CreatedByUserID = &userID
	}

	return c
}

// MergeFillOnly applies the fill-only merge policy: incoming values land
// only on fields the existing record has empty. Returns true if anything
// changed. Name, email and phone identify the record and are never merged.
func MergeFillOnly(existing *Candidate, incoming *CandidateSubmission) bool {
	changed := false

	mergeStr := func(dst **string, src *string) {
		if *dst == nil && src != nil {
			*dst = src
			changed = true
		}
	}
	mergeInt64 := func(dst **int64, src *int64) {
		if *dst == nil && src != nil {
			*dst = src
			changed = true
		}
	}
	mergeInt := func(dst **int, src *int) {
		if *dst == nil && src != nil {
			*dst = src
			changed = true
		}
	}

	mergeStr(&existing.CurrentLocation, incoming.CurrentLocation)
	if len(existing.PreferredLocations) == 0 && len(incoming.PreferredLocations) > 0 {
		existing.PreferredLocations = incoming.PreferredLocations
		changed = true
	}
	mergeStr(&existing.Hometown, incoming.Hometown)
	mergeStr(&existing.Pincode, incoming.Pincode)

	if existing.TotalExperience == nil && incoming.TotalExperience != nil {
		existing.TotalExperience = incoming.TotalExperience
		changed = true
	}
	mergeStr(&existing.CurrentCompany, incoming.CurrentCompany)
	mergeStr(&existing.CurrentDesignation, incoming.CurrentDesignation)
	mergeStr(&existing.Department, incoming.Department)
	mergeStr(&existing.Industry, incoming.Industry)
	if len(existing.Skills) == 0 && len(incoming.Skills) > 0 {
		existing.Skills = incoming.Skills
		changed = true
	}
	mergeInt64(&existing.CurrentSalary, incoming.CurrentSalary)
	mergeInt64(&existing.ExpectedSalary, incoming.ExpectedSalary)
	mergeInt(&existing.NoticePeriodDays, incoming.NoticePeriodDays)

	mergeStr(&existing.HighestQualification, incoming.HighestQualification)
	mergeStr(&existing.Specialization, incoming.Specialization)
	mergeStr(&existing.University, incoming.University)
	mergeInt(&existing.GraduationYear, incoming.GraduationYear)

	if existing.DateOfBirth == nil && incoming.DateOfBirth != nil {
		existing.DateOfBirth = incoming.DateOfBirth
		changed = true
	}
	mergeStr(&existing.Gender, incoming.Gender)
	mergeStr(&existing.MaritalStatus, incoming.MaritalStatus)

	return changed
}

type CandidateRepository interface {
	GetByEmailPhone(ctx context.Context, email, phone string) (*Candidate, error)
	Create(ctx context.Context, candidate *Candidate) error
	Update(ctx context.Context, candidate *Candidate) error
}

// CandidateUsecase resolves submissions to canonical candidate records.
type CandidateUsecase interface {
	Resolve(ctx context.Context, sub *CandidateSubmission, actor Actor) (*Candidate, error)
}
