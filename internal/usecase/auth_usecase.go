package usecase

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"
	"time"

	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// GetCurrentUser loads the user backing an authenticated request. The
// role always comes from the store, never from token claims.
func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Storage(err)
	}
	return user, nil
}

// CreateRecruiter provisions a recruiter account (admin operation).
func (uc *authUsecase) CreateRecruiter(ctx context.Context, name, email string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, apperror.Validation("Name and email are required")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Storage(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("A user with this email already exists")
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      domain.RoleRecruiter,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("A user with this email already exists")
		}
		return nil, apperror.Storage(err)
	}
	return user, nil
}
