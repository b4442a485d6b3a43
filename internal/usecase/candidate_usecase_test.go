package usecase_test

import (
	"context"
	"testing"

	"recruitflow-backend/internal/domain"
	"recruitflow-backend/internal/usecase"
	"recruitflow-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByEmailPhone(ctx context.Context, email, phone string) (*domain.Candidate, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}
func (m *MockCandidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()
	actor := domain.Actor{UserID: "u1", Role: domain.RoleUser}

	t.Run("Should reject submissions missing identity fields", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, validate)

		_, err := uc.Resolve(ctx, &domain.CandidateSubmission{Name: "Asha Rao"}, actor)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, kindOf(t, err))
		repo.AssertNotCalled(t, "GetByEmailPhone", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should create a new candidate on first submission", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, validate)

		repo.On("GetByEmailPhone", ctx, "asha@example.com", "9000000001").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		candidate, err := uc.Resolve(ctx, validSubmission(), actor)

		assert.NoError(t, err)
		if assert.NotNil(t, candidate.CreatedByUserID) {
			assert.Equal(t, "u1", *candidate.CreatedByUserID)
		}
		repo.AssertExpectations(t)
	})

	t.Run("Should enrich an existing candidate fill-only", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, validate)

		existing := &domain.Candidate{ID: 10, Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001"}
		repo.On("GetByEmailPhone", ctx, "asha@example.com", "9000000001").Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)

		company := "Acme Corp"
		sub := validSubmission()
		sub.CurrentCompany = &company

		candidate, err := uc.Resolve(ctx, sub, actor)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), candidate.ID)
		if assert.NotNil(t, candidate.CurrentCompany) {
			assert.Equal(t, "Acme Corp", *candidate.CurrentCompany)
		}
		repo.AssertExpectations(t)
	})

	t.Run("Should skip the update when nothing fills", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, validate)

		existing := &domain.Candidate{ID: 10, Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001"}
		repo.On("GetByEmailPhone", ctx, "asha@example.com", "9000000001").Return(existing, nil)

		candidate, err := uc.Resolve(ctx, validSubmission(), actor)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), candidate.ID)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
