package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruitflow-backend/internal/domain"
	"recruitflow-backend/internal/usecase"
	"recruitflow-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) CountApplications(ctx context.Context, f domain.ApplicationCountFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardRepo) CountCandidates(ctx context.Context, scope domain.DashboardScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardRepo) CountPartnersByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
func (m *MockDashboardRepo) CountJobsByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
func (m *MockDashboardRepo) CountUsersByRole(ctx context.Context, role string, from *time.Time) (int64, error) {
	args := m.Called(ctx, role, from)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardRepo) PipelineCounts(ctx context.Context, scope domain.DashboardScope) (map[domain.PipelineStage]int64, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.PipelineStage]int64), args.Error(1)
}
func (m *MockDashboardRepo) ApplicationsPerDay(ctx context.Context, scope domain.DashboardScope, from time.Time) ([]domain.DayCount, error) {
	args := m.Called(ctx, scope, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayCount), args.Error(1)
}
func (m *MockDashboardRepo) HiresPerDay(ctx context.Context, scope domain.DashboardScope, from time.Time) ([]domain.DayCount, error) {
	args := m.Called(ctx, scope, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayCount), args.Error(1)
}
func (m *MockDashboardRepo) JobsPerDay(ctx context.Context, from time.Time) ([]domain.DayCount, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayCount), args.Error(1)
}
func (m *MockDashboardRepo) SourceCounts(ctx context.Context) (*domain.SourceDistribution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDistribution), args.Error(1)
}
func (m *MockDashboardRepo) DepartmentCounts(ctx context.Context) ([]domain.DepartmentCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentCount), args.Error(1)
}
func (m *MockDashboardRepo) TopJobsByCount(ctx context.Context, limit int) ([]domain.JobLeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobLeaderboardEntry), args.Error(1)
}
func (m *MockDashboardRepo) TopJobsForScope(ctx context.Context, scope domain.DashboardScope, limit int) ([]domain.JobLeaderboardEntry, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobLeaderboardEntry), args.Error(1)
}
func (m *MockDashboardRepo) TopPartners(ctx context.Context, limit int) ([]domain.PartnerLeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartnerLeaderboardEntry), args.Error(1)
}
func (m *MockDashboardRepo) TopRecruiters(ctx context.Context, limit int) ([]domain.RecruiterLeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecruiterLeaderboardEntry), args.Error(1)
}
func (m *MockDashboardRepo) DistinctJobsWorked(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardRepo) RecentApplications(ctx context.Context, scope domain.DashboardScope, limit int) ([]domain.Application, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

type MockPartnerRepo struct {
	mock.Mock
}

func (m *MockPartnerRepo) Create(ctx context.Context, partner *domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}
func (m *MockPartnerRepo) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Partner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerRepo) ListByStatus(ctx context.Context, status string) ([]domain.Partner, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}
func (m *MockPartnerRepo) Approve(ctx context.Context, partnerID int64, userID string) error {
	return m.Called(ctx, partnerID, userID).Error(0)
}
func (m *MockPartnerRepo) UpdateStatus(ctx context.Context, partnerID int64, status string) error {
	return m.Called(ctx, partnerID, status).Error(0)
}
func (m *MockPartnerRepo) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, id string, role string) error {
	return m.Called(ctx, id, role).Error(0)
}
func (m *MockUserRepo) GetNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func TestGetUserDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Should assemble a dense scoped report", func(t *testing.T) {
		dashRepo := new(MockDashboardRepo)
		uc := usecase.NewDashboardUsecase(dashRepo, new(MockPartnerRepo), new(MockUserRepo))

		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.FinalStatus == nil && !f.ActiveOnly
		})).Return(int64(12), nil)
		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.ActiveOnly
		})).Return(int64(8), nil)
		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.FinalStatus != nil && *f.FinalStatus == domain.FinalStatusHired
		})).Return(int64(3), nil)
		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.FinalStatus != nil && *f.FinalStatus == domain.FinalStatusRejected
		})).Return(int64(1), nil)

		dashRepo.On("PipelineCounts", ctx, mock.Anything).Return(map[domain.PipelineStage]int64{
			domain.StageApplied: 5,
			domain.StageHired:   3,
		}, nil)
		dashRepo.On("ApplicationsPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("HiresPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("TopJobsForScope", ctx, mock.Anything, 5).Return([]domain.JobLeaderboardEntry{}, nil)

		report, err := uc.GetUserDashboard(ctx, "u1", "7d")

		assert.NoError(t, err)
		assert.Equal(t, "7d", report.Range)
		assert.Equal(t, int64(12), report.Summary.TotalApplications)
		assert.Equal(t, int64(3), report.Summary.Hired)

		// Every stage is present, zero-filled
		assert.Len(t, report.Pipeline, len(domain.PipelineStages))
		assert.Equal(t, int64(0), report.Pipeline[domain.StageOfferSent])
		assert.Equal(t, int64(5), report.Pipeline[domain.StageApplied])

		// Dense trends despite empty data
		assert.Len(t, report.Trends.Applications, 7)
		assert.Len(t, report.Trends.Hires, 7)

		// Zero-safe conversion: 3 hired of 12 total
		assert.Equal(t, 25.0, report.Conversion.ApplicationToHireRate)
		assert.Equal(t, 0.0, report.Conversion.ScreeningToInterviewRate)
	})

	t.Run("Should fall back to the 7d window for unknown range keys", func(t *testing.T) {
		dashRepo := new(MockDashboardRepo)
		uc := usecase.NewDashboardUsecase(dashRepo, new(MockPartnerRepo), new(MockUserRepo))

		dashRepo.On("CountApplications", ctx, mock.Anything).Return(int64(0), nil)
		dashRepo.On("PipelineCounts", ctx, mock.Anything).Return(map[domain.PipelineStage]int64{}, nil)
		dashRepo.On("ApplicationsPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("HiresPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("TopJobsForScope", ctx, mock.Anything, 5).Return([]domain.JobLeaderboardEntry{}, nil)

		report, err := uc.GetUserDashboard(ctx, "u1", "365d")

		assert.NoError(t, err)
		assert.Equal(t, "7d", report.Range)
		assert.Len(t, report.Trends.Applications, 7)
	})
}

func TestGetAdminDashboardLeaderboards(t *testing.T) {
	logger.Init()
	ctx := context.Background()

	setupAdminMocks := func(dashRepo *MockDashboardRepo) {
		dashRepo.On("CountPartnersByStatus", ctx, mock.Anything, mock.Anything).Return(map[string]int64{
			domain.PartnerStatusApproved: 2,
			domain.PartnerStatusPending:  1,
		}, nil)
		dashRepo.On("CountJobsByStatus", ctx, mock.Anything, mock.Anything).Return(map[string]int64{
			domain.JobStatusOpen: 4,
		}, nil)
		dashRepo.On("CountApplications", ctx, mock.Anything).Return(int64(10), nil)
		dashRepo.On("CountUsersByRole", ctx, domain.RoleRecruiter, mock.Anything).Return(int64(3), nil)
		dashRepo.On("PipelineCounts", ctx, mock.Anything).Return(map[domain.PipelineStage]int64{}, nil)
		dashRepo.On("ApplicationsPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("HiresPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("JobsPerDay", ctx, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("SourceCounts", ctx).Return(&domain.SourceDistribution{Partner: 6, User: 4}, nil)
		dashRepo.On("DepartmentCounts", ctx).Return([]domain.DepartmentCount{}, nil)
		dashRepo.On("TopJobsByCount", ctx, 5).Return([]domain.JobLeaderboardEntry{}, nil)
		dashRepo.On("TopRecruiters", ctx, 5).Return([]domain.RecruiterLeaderboardEntry{}, nil)
	}

	t.Run("Should enrich partner leaderboard with organisation names", func(t *testing.T) {
		dashRepo := new(MockDashboardRepo)
		partnerRepo := new(MockPartnerRepo)
		uc := usecase.NewDashboardUsecase(dashRepo, partnerRepo, new(MockUserRepo))

		setupAdminMocks(dashRepo)
		dashRepo.On("TopPartners", ctx, 5).Return([]domain.PartnerLeaderboardEntry{
			{PartnerID: 1, Applications: 9},
			{PartnerID: 2, Applications: 4},
		}, nil)
		partnerRepo.On("GetNamesByIDs", ctx, []int64{1, 2}).Return(map[int64]string{1: "Acme Talent"}, nil)

		report, err := uc.GetAdminDashboard(ctx, "7d")

		assert.NoError(t, err)
		assert.Equal(t, "Acme Talent", report.Leaderboards.TopPartners[0].PartnerName)
		// A missing name degrades, never drops the entry
		assert.Equal(t, "Unknown", report.Leaderboards.TopPartners[1].PartnerName)
		assert.Equal(t, int64(4), report.Leaderboards.TopPartners[1].Applications)
	})

	t.Run("Should degrade all names to Unknown when the lookup fails", func(t *testing.T) {
		dashRepo := new(MockDashboardRepo)
		partnerRepo := new(MockPartnerRepo)
		uc := usecase.NewDashboardUsecase(dashRepo, partnerRepo, new(MockUserRepo))

		setupAdminMocks(dashRepo)
		dashRepo.On("TopPartners", ctx, 5).Return([]domain.PartnerLeaderboardEntry{
			{PartnerID: 1, Applications: 9},
		}, nil)
		partnerRepo.On("GetNamesByIDs", ctx, []int64{1}).Return(nil, errors.New("connection reset"))

		report, err := uc.GetAdminDashboard(ctx, "7d")

		assert.NoError(t, err)
		assert.Equal(t, "Unknown", report.Leaderboards.TopPartners[0].PartnerName)
	})

	t.Run("Should fail the report when a count query fails", func(t *testing.T) {
		dashRepo := new(MockDashboardRepo)
		uc := usecase.NewDashboardUsecase(dashRepo, new(MockPartnerRepo), new(MockUserRepo))

		dashRepo.On("CountPartnersByStatus", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := uc.GetAdminDashboard(ctx, "7d")

		assert.Error(t, err)
	})

	t.Run("Should filter the recruiter count to the window", func(t *testing.T) {
		dashRepo := new(MockDashboardRepo)
		uc := usecase.NewDashboardUsecase(dashRepo, new(MockPartnerRepo), new(MockUserRepo))

		setupAdminMocks(dashRepo)
		dashRepo.On("TopPartners", ctx, 5).Return([]domain.PartnerLeaderboardEntry{}, nil)

		report, err := uc.GetAdminDashboard(ctx, "7d")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), report.Summary.TotalRecruiters)
		dashRepo.AssertCalled(t, "CountUsersByRole", ctx, domain.RoleRecruiter, mock.MatchedBy(func(from *time.Time) bool {
			return from != nil
		}))
	})
}

func TestGetRecruiterDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Should compute hire rate over the recruiter's own submissions", func(t *testing.T) {
		dashRepo := new(MockDashboardRepo)
		uc := usecase.NewDashboardUsecase(dashRepo, new(MockPartnerRepo), new(MockUserRepo))

		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.FinalStatus == nil && !f.ActiveOnly
		})).Return(int64(8), nil)
		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.ActiveOnly
		})).Return(int64(5), nil)
		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.FinalStatus != nil && *f.FinalStatus == domain.FinalStatusHired
		})).Return(int64(2), nil)
		dashRepo.On("CountApplications", ctx, mock.MatchedBy(func(f domain.ApplicationCountFilter) bool {
			return f.FinalStatus != nil && *f.FinalStatus == domain.FinalStatusRejected
		})).Return(int64(1), nil)

		dashRepo.On("CountCandidates", ctx, mock.Anything).Return(int64(20), nil)
		dashRepo.On("DistinctJobsWorked", ctx, "r1").Return(int64(6), nil)
		dashRepo.On("PipelineCounts", ctx, mock.Anything).Return(map[domain.PipelineStage]int64{}, nil)
		dashRepo.On("ApplicationsPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("HiresPerDay", ctx, mock.Anything, mock.Anything).Return([]domain.DayCount{}, nil)
		dashRepo.On("RecentApplications", ctx, mock.Anything, 5).Return([]domain.Application{}, nil)

		report, err := uc.GetRecruiterDashboard(ctx, "r1", "30d")

		assert.NoError(t, err)
		assert.Equal(t, "30d", report.Range)
		assert.Equal(t, int64(20), report.Summary.TotalCandidatesAdded)
		assert.Equal(t, int64(6), report.Summary.ActiveJobsWorkedOn)
		assert.Equal(t, 25.0, report.Summary.HireRate)
		assert.Len(t, report.Trends.Applications, 30)
	})
}
