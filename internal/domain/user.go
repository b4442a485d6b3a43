package domain

import (
	"context"
	"time"
)

// Role constants
const (
	RoleUser      = "USER"
	RoleRecruiter = "RECRUITER"
	RolePartner   = "PARTNER"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the authenticated submitter of a request. PartnerID is set only
// for PARTNER-role actors, after their partner profile has been resolved.
type Actor struct {
	UserID    string
	Role      string
	PartnerID *int64
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateRole(ctx context.Context, id string, role string) error
	// GetNamesByIDs resolves display names for leaderboard entries.
	GetNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	CreateRecruiter(ctx context.Context, name, email string) (*User, error)
}
