package domain_test

import (
	"testing"
	"time"

	"recruitflow-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceToMilestones(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	t.Run("Should stamp milestone on first entry", func(t *testing.T) {
		app := &domain.Application{PipelineStage: domain.StageApplied}

		app.AdvanceTo(domain.StageContacted, t1)

		assert.Equal(t, domain.StageContacted, app.PipelineStage)
		if assert.NotNil(t, app.ContactedAt) {
			assert.Equal(t, t1, *app.ContactedAt)
		}
	})

	t.Run("Should not move milestone on re-entry", func(t *testing.T) {
		app := &domain.Application{PipelineStage: domain.StageApplied}

		app.AdvanceTo(domain.StageContacted, t1)
		app.AdvanceTo(domain.StageScreening, t1)
		app.AdvanceTo(domain.StageContacted, t2)

		assert.Equal(t, t1, *app.ContactedAt)
		assert.Equal(t, t2, app.UpdatedAt)
	})

	t.Run("Should not stamp milestones for stages without one", func(t *testing.T) {
		app := &domain.Application{PipelineStage: domain.StageApplied}

		app.AdvanceTo(domain.StageScreening, t1)
		app.AdvanceTo(domain.StageShortlisted, t1)

		assert.Nil(t, app.ContactedAt)
		assert.Nil(t, app.InterviewScheduledAt)
		assert.Nil(t, app.OfferSentAt)
	})
}

func TestAdvanceToFinalStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Should set HIRED final status and hired_at", func(t *testing.T) {
		app := &domain.Application{PipelineStage: domain.StageOfferAccepted}

		app.AdvanceTo(domain.StageHired, now)

		if assert.NotNil(t, app.FinalStatus) {
			assert.Equal(t, domain.FinalStatusHired, *app.FinalStatus)
		}
		if assert.NotNil(t, app.HiredAt) {
			assert.Equal(t, now, *app.HiredAt)
		}
	})

	t.Run("Should set REJECTED final status and rejected_at", func(t *testing.T) {
		app := &domain.Application{PipelineStage: domain.StageScreening}

		app.AdvanceTo(domain.StageRejected, now)

		if assert.NotNil(t, app.FinalStatus) {
			assert.Equal(t, domain.FinalStatusRejected, *app.FinalStatus)
		}
		assert.NotNil(t, app.RejectedAt)
	})

	t.Run("Should leave final status nil for non-terminal stages", func(t *testing.T) {
		app := &domain.Application{PipelineStage: domain.StageApplied}

		app.AdvanceTo(domain.StageOfferSent, now)

		assert.Nil(t, app.FinalStatus)
	})
}

func TestWithdraw(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Should overlay WITHDRAWN without touching the stage", func(t *testing.T) {
		app := &domain.Application{PipelineStage: domain.StageInterviewScheduled}

		app.Withdraw(now)

		if assert.NotNil(t, app.FinalStatus) {
			assert.Equal(t, domain.FinalStatusWithdrawn, *app.FinalStatus)
		}
		assert.Equal(t, domain.StageInterviewScheduled, app.PipelineStage)
	})
}

func TestPipelineStageValid(t *testing.T) {
	assert.True(t, domain.PipelineStage("HIRED").Valid())
	assert.True(t, domain.PipelineStage("DOCUMENT_REQUESTED").Valid())
	assert.False(t, domain.PipelineStage("PHONE_SCREEN").Valid())
	assert.False(t, domain.PipelineStage("").Valid())
	assert.Len(t, domain.PipelineStages, 14)
}
