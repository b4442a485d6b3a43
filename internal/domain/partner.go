package domain

import (
	"context"
	"time"
)

// Partner approval states. PENDING is the only state transitions start
// from; APPROVED and REJECTED are terminal.
const (
	PartnerStatusPending  = "PENDING"
	PartnerStatusApproved = "APPROVED"
	PartnerStatusRejected = "REJECTED"
)

type Partner struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"user_id"`
	OrganisationName string    `json:"organisation_name"`
	Phone            *string   `json:"phone,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined data for admin listings
	UserName  *string `json:"user_name,omitempty"`
	UserEmail *string `json:"user_email,omitempty"`
}

type PartnerRepository interface {
	Create(ctx context.Context, partner *Partner) error
	GetByID(ctx context.Context, id int64) (*Partner, error)
	GetByUserID(ctx context.Context, userID string) (*Partner, error)
	ListByStatus(ctx context.Context, status string) ([]Partner, error)
	// Approve flips the partner to APPROVED and promotes the owning user
	// to the PARTNER role in a single transaction.
	Approve(ctx context.Context, partnerID int64, userID string) error
	UpdateStatus(ctx context.Context, partnerID int64, status string) error
	// GetNamesByIDs resolves organisation names for leaderboard entries.
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type PartnerUsecase interface {
	RequestPartnership(ctx context.Context, userID, organisationName, phone string) (*Partner, error)
	GetPartnerForUser(ctx context.Context, userID string) (*Partner, error)
	ListPendingRequests(ctx context.Context) ([]Partner, error)
	ApprovePartner(ctx context.Context, partnerID int64) (*Partner, error)
	RejectPartner(ctx context.Context, partnerID int64) (*Partner, error)
}
