package domain_test

import (
	"testing"

	"recruitflow-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestMergeFillOnly(t *testing.T) {
	t.Run("Should fill empty fields from incoming", func(t *testing.T) {
		existing := &domain.Candidate{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "9000000001",
		}
		incoming := &domain.CandidateSubmission{
			Name:           "Asha Rao",
			Email:          "asha@example.com",
			Phone:          "9000000001",
			CurrentCompany: strPtr("Acme Corp"),
			Skills:         []string{"Go", "SQL"},
		}

		changed := domain.MergeFillOnly(existing, incoming)

		assert.True(t, changed)
		if assert.NotNil(t, existing.CurrentCompany) {
			assert.Equal(t, "Acme Corp", *existing.CurrentCompany)
		}
		assert.Equal(t, []string{"Go", "SQL"}, existing.Skills)
	})

	t.Run("Should never overwrite populated fields", func(t *testing.T) {
		existing := &domain.Candidate{
			Name:           "Asha Rao",
			Email:          "asha@example.com",
			Phone:          "9000000001",
			CurrentCompany: strPtr("Original Corp"),
			Skills:         []string{"Go"},
		}
		incoming := &domain.CandidateSubmission{
			Name:           "Asha Rao",
			Email:          "asha@example.com",
			Phone:          "9000000001",
			CurrentCompany: strPtr("Other Corp"),
			Skills:         []string{"Rust"},
		}

		domain.MergeFillOnly(existing, incoming)

		assert.Equal(t, "Original Corp", *existing.CurrentCompany)
		assert.Equal(t, []string{"Go"}, existing.Skills)
	})

	t.Run("Should never touch identity fields", func(t *testing.T) {
		existing := &domain.Candidate{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "9000000001",
		}
		incoming := &domain.CandidateSubmission{
			Name:  "A. Rao",
			Email: "asha@example.com",
			Phone: "9000000001",
		}

		changed := domain.MergeFillOnly(existing, incoming)

		assert.False(t, changed)
		assert.Equal(t, "Asha Rao", existing.Name)
	})

	t.Run("Should report no change when nothing fills", func(t *testing.T) {
		existing := &domain.Candidate{
			Name:           "Asha Rao",
			Email:          "asha@example.com",
			Phone:          "9000000001",
			CurrentCompany: strPtr("Acme"),
		}
		incoming := &domain.CandidateSubmission{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "9000000001",
		}

		assert.False(t, domain.MergeFillOnly(existing, incoming))
	})
}

func TestNewCandidateAttribution(t *testing.T) {
	sub := &domain.CandidateSubmission{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Phone: "9000000001",
	}

	t.Run("Should attribute partner submissions to the partner", func(t *testing.T) {
		partnerID := int64(42)
		c := domain.NewCandidate(sub, domain.Actor{UserID: "u1", Role: domain.RolePartner, PartnerID: &partnerID})

		assert.Nil(t, c.CreatedByUserID)
		if assert.NotNil(t, c.CreatedByPartnerID) {
			assert.Equal(t, int64(42), *c.CreatedByPartnerID)
		}
	})

	t.Run("Should attribute user submissions to the user", func(t *testing.T) {
		c := domain.NewCandidate(sub, domain.Actor{UserID: "u1", Role: domain.RoleUser})

		assert.Nil(t, c.CreatedByPartnerID)
		if assert.NotNil(t, c.CreatedByUserID) {
			assert.Equal(t, "u1", *c.CreatedByUserID)
		}
	})
}
