package usecase

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"
)

type partnerUsecase struct {
	partnerRepo domain.PartnerRepository
}

// NewPartnerUsecase creates a new partner usecase
func NewPartnerUsecase(partnerRepo domain.PartnerRepository) domain.PartnerUsecase {
	return &partnerUsecase{partnerRepo: partnerRepo}
}

// RequestPartnership files a pending partner request for the user.
func (uc *partnerUsecase) RequestPartnership(ctx context.Context, userID, organisationName, phone string) (*domain.Partner, error) {
	if organisationName == "" {
		return nil, apperror.Validation("Organisation name is required")
	}

	existing, err := uc.partnerRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Storage(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Partner request already exists")
	}

	partner := &domain.Partner{
		UserID:           userID,
		OrganisationName: organisationName,
		Status:           domain.PartnerStatusPending,
	}
	if phone != "" {
		partner.Phone = &phone
	}

	if err := uc.partnerRepo.Create(ctx, partner); err != nil {
		return nil, apperror.Storage(err)
	}
	return partner, nil
}

func (uc *partnerUsecase) GetPartnerForUser(ctx context.Context, userID string) (*domain.Partner, error) {
	partner, err := uc.partnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Partner profile not found")
		}
		return nil, apperror.Storage(err)
	}
	return partner, nil
}

func (uc *partnerUsecase) ListPendingRequests(ctx context.Context) ([]domain.Partner, error) {
	partners, err := uc.partnerRepo.ListByStatus(ctx, domain.PartnerStatusPending)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return partners, nil
}

// ApprovePartner approves a pending request. Approval also promotes the
// owning user to the PARTNER role; the repository does both in one
// transaction.
func (uc *partnerUsecase) ApprovePartner(ctx context.Context, partnerID int64) (*domain.Partner, error) {
	partner, err := uc.loadPending(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if err := uc.partnerRepo.Approve(ctx, partner.ID, partner.UserID); err != nil {
		return nil, apperror.Storage(err)
	}

	partner.Status = domain.PartnerStatusApproved
	return partner, nil
}

// RejectPartner rejects a pending request. Rejection is terminal.
func (uc *partnerUsecase) RejectPartner(ctx context.Context, partnerID int64) (*domain.Partner, error) {
	partner, err := uc.loadPending(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if err := uc.partnerRepo.UpdateStatus(ctx, partner.ID, domain.PartnerStatusRejected); err != nil {
		return nil, apperror.Storage(err)
	}

	partner.Status = domain.PartnerStatusRejected
	return partner, nil
}

// loadPending enforces the one-way state machine: transitions start from
// PENDING only.
func (uc *partnerUsecase) loadPending(ctx context.Context, partnerID int64) (*domain.Partner, error) {
	partner, err := uc.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Partner request not found")
		}
		return nil, apperror.Storage(err)
	}

	if partner.Status != domain.PartnerStatusPending {
		return nil, apperror.InvalidState("Partner request has already been decided")
	}
	return partner, nil
}
