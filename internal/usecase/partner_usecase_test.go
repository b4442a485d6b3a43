package usecase_test

import (
	"context"
	"testing"

	"recruitflow-backend/internal/domain"
	"recruitflow-backend/internal/usecase"
	"recruitflow-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRequestPartnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Should file a pending request", func(t *testing.T) {
		repo := new(MockPartnerRepo)
		uc := usecase.NewPartnerUsecase(repo)

		repo.On("GetByUserID", ctx, "u1").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		partner, err := uc.RequestPartnership(ctx, "u1", "Acme Talent", "9000000001")

		assert.NoError(t, err)
		assert.Equal(t, domain.PartnerStatusPending, partner.Status)
		assert.Equal(t, "Acme Talent", partner.OrganisationName)
	})

	t.Run("Should conflict when a request already exists", func(t *testing.T) {
		repo := new(MockPartnerRepo)
		uc := usecase.NewPartnerUsecase(repo)

		existing := &domain.Partner{ID: 1, UserID: "u1", Status: domain.PartnerStatusPending}
		repo.On("GetByUserID", ctx, "u1").Return(existing, nil)

		_, err := uc.RequestPartnership(ctx, "u1", "Acme Talent", "")

		assert.Error(t, err)
		assert.Equal(t, apperror.KindConflict, kindOf(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestApprovePartner(t *testing.T) {
	ctx := context.Background()

	t.Run("Should approve a pending request through the promoting transaction", func(t *testing.T) {
		repo := new(MockPartnerRepo)
		uc := usecase.NewPartnerUsecase(repo)

		pending := &domain.Partner{ID: 1, UserID: "u1", Status: domain.PartnerStatusPending}
		repo.On("GetByID", ctx, int64(1)).Return(pending, nil)
		repo.On("Approve", ctx, int64(1), "u1").Return(nil)

		partner, err := uc.ApprovePartner(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, domain.PartnerStatusApproved, partner.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Should refuse to re-decide a decided request", func(t *testing.T) {
		repo := new(MockPartnerRepo)
		uc := usecase.NewPartnerUsecase(repo)

		approved := &domain.Partner{ID: 1, UserID: "u1", Status: domain.PartnerStatusApproved}
		repo.On("GetByID", ctx, int64(1)).Return(approved, nil)

		_, err := uc.ApprovePartner(ctx, 1)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindInvalidState, kindOf(t, err))
		repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRejectPartner(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a pending request without touching the user role", func(t *testing.T) {
		repo := new(MockPartnerRepo)
		uc := usecase.NewPartnerUsecase(repo)

		pending := &domain.Partner{ID: 1, UserID: "u1", Status: domain.PartnerStatusPending}
		repo.On("GetByID", ctx, int64(1)).Return(pending, nil)
		repo.On("UpdateStatus", ctx, int64(1), domain.PartnerStatusRejected).Return(nil)

		partner, err := uc.RejectPartner(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, domain.PartnerStatusRejected, partner.Status)
		repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return not found for unknown requests", func(t *testing.T) {
		repo := new(MockPartnerRepo)
		uc := usecase.NewPartnerUsecase(repo)

		repo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := uc.RejectPartner(ctx, 9)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
	})
}
