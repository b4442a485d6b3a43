package usecase

import (
	"context"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"
	"recruitflow-backend/pkg/logger"
	"time"
)

const leaderboardSize = 5

type dashboardUsecase struct {
	dashRepo    domain.DashboardRepository
	partnerRepo domain.PartnerRepository
	userRepo    domain.UserRepository
	now         func() time.Time
}

// NewDashboardUsecase creates a new dashboard usecase
func NewDashboardUsecase(
	dashRepo domain.DashboardRepository,
	partnerRepo domain.PartnerRepository,
	userRepo domain.UserRepository,
) domain.DashboardUsecase {
	return &dashboardUsecase{
		dashRepo:    dashRepo,
		partnerRepo: partnerRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// parseRange maps a range key to its day count. Unknown keys fall back
// to the 7-day default.
func parseRange(key string) (string, int) {
	switch key {
	case "30d":
		return "30d", 30
	case "90d":
		return "90d", 90
	default:
		return "7d", 7
	}
}

// windowStart is today minus (days-1), truncated to local midnight, so a
// 7-day window covers today and the six days before it.
func windowStart(now time.Time, days int) time.Time {
	start := now.AddDate(0, 0, -(days - 1))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}

func (uc *dashboardUsecase) GetAdminDashboard(ctx context.Context, rangeKey string) (*domain.AdminDashboard, error) {
	rangeKey, days := parseRange(rangeKey)
	start := windowStart(uc.now(), days)
	prevStart := start.AddDate(0, 0, -days)

	// Summary (range-filtered) -------------------------------------------

	partnersByStatus, err := uc.dashRepo.CountPartnersByStatus(ctx, &start, nil)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	jobsByStatus, err := uc.dashRepo.CountJobsByStatus(ctx, &start, nil)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	global := domain.DashboardScope{}

	totalApplications, err := uc.dashRepo.CountApplications(ctx, domain.ApplicationCountFilter{CreatedFrom: &start})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	activeApplications, err := uc.dashRepo.CountApplications(ctx, domain.ApplicationCountFilter{CreatedFrom: &start, ActiveOnly: true})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	hired, err := uc.countFinal(ctx, global, domain.FinalStatusHired, &start, nil)
	if err != nil {
		return nil, err
	}
	rejected, err := uc.countFinal(ctx, global, domain.FinalStatusRejected, &start, nil)
	if err != nil {
		return nil, err
	}
	recruiters, err := uc.dashRepo.CountUsersByRole(ctx, domain.RoleRecruiter, &start)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	summary := domain.AdminSummary{
		TotalPartners:    sumCounts(partnersByStatus),
		ActivePartners:   partnersByStatus[domain.PartnerStatusApproved],
		PendingPartners:  partnersByStatus[domain.PartnerStatusPending],
		RejectedPartners: partnersByStatus[domain.PartnerStatusRejected],

		TotalJobs:  sumCounts(jobsByStatus),
		OpenJobs:   jobsByStatus[domain.JobStatusOpen],
		ClosedJobs: jobsByStatus[domain.JobStatusClosed],

		TotalApplications:  totalApplications,
		ActiveApplications: activeApplications,
		Hired:              hired,
		Rejected:           rejected,

		TotalRecruiters: recruiters,
	}

	// Period-over-period change -------------------------------------------

	prevApplications, err := uc.dashRepo.CountApplications(ctx, domain.ApplicationCountFilter{CreatedFrom: &prevStart, CreatedTo: &start})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	prevHired, err := uc.countFinal(ctx, global, domain.FinalStatusHired, &prevStart, &start)
	if err != nil {
		return nil, err
	}
	prevJobsByStatus, err := uc.dashRepo.CountJobsByStatus(ctx, &prevStart, &start)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	prevPartnersByStatus, err := uc.dashRepo.CountPartnersByStatus(ctx, &prevStart, &start)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	summaryChange := domain.SummaryChange{
		Applications: domain.PercentChange(totalApplications, prevApplications),
		Hires:        domain.PercentChange(hired, prevHired),
		Jobs:         domain.PercentChange(summary.TotalJobs, sumCounts(prevJobsByStatus)),
		Partners:     domain.PercentChange(summary.TotalPartners, sumCounts(prevPartnersByStatus)),
	}

	// Pipeline, trends ----------------------------------------------------

	pipeline, err := uc.pipelineFor(ctx, global)
	if err != nil {
		return nil, err
	}

	trends, err := uc.trendsFor(ctx, global, start, days)
	if err != nil {
		return nil, err
	}
	jobsPerDay, err := uc.dashRepo.JobsPerDay(ctx, start)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	// Distribution --------------------------------------------------------

	bySource, err := uc.dashRepo.SourceCounts(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	byDepartment, err := uc.dashRepo.DepartmentCounts(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	topJobs, err := uc.dashRepo.TopJobsByCount(ctx, leaderboardSize)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	// Leaderboards --------------------------------------------------------

	topPartners, err := uc.dashRepo.TopPartners(ctx, leaderboardSize)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	uc.resolvePartnerNames(ctx, topPartners)

	topRecruiters, err := uc.dashRepo.TopRecruiters(ctx, leaderboardSize)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	uc.resolveRecruiterNames(ctx, topRecruiters)

	// Conversion funnel ---------------------------------------------------

	allApplications, err := uc.dashRepo.CountApplications(ctx, domain.ApplicationCountFilter{})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &domain.AdminDashboard{
		Range:         rangeKey,
		Summary:       summary,
		SummaryChange: summaryChange,
		Pipeline:      pipeline,
		Trends: domain.AdminTrends{
			Applications: trends.Applications,
			Hires:        trends.Hires,
			JobsCreated:  domain.FillDailySeries(jobsPerDay, start, days),
		},
		Distribution: domain.AdminDistribution{
			BySource:     *bySource,
			ByDepartment: byDepartment,
			ByJob:        topJobs,
		},
		Leaderboards: domain.AdminLeaderboards{
			TopPartners:   topPartners,
			TopRecruiters: topRecruiters,
			TopJobs:       topJobs,
		},
		Conversion: conversionFrom(pipeline, allApplications),
	}, nil
}

func (uc *dashboardUsecase) GetPartnerDashboard(ctx context.Context, partnerID int64, rangeKey string) (*domain.ScopedDashboard, error) {
	scope := domain.DashboardScope{PartnerID: &partnerID}
	dash, err := uc.scopedDashboard(ctx, scope, rangeKey)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.dashRepo.CountCandidates(ctx, scope)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	dash.Summary.TotalCandidates = candidates
	return dash, nil
}

func (uc *dashboardUsecase) GetUserDashboard(ctx context.Context, userID string, rangeKey string) (*domain.ScopedDashboard, error) {
	return uc.scopedDashboard(ctx, domain.DashboardScope{UserID: &userID}, rangeKey)
}

func (uc *dashboardUsecase) GetRecruiterDashboard(ctx context.Context, userID string, rangeKey string) (*domain.RecruiterDashboard, error) {
	rangeKey, days := parseRange(rangeKey)
	start := windowStart(uc.now(), days)
	scope := domain.DashboardScope{UserID: &userID}

	summary, err := uc.scopedSummary(ctx, scope)
	if err != nil {
		return nil, err
	}

	candidatesAdded, err := uc.dashRepo.CountCandidates(ctx, scope)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	jobsWorked, err := uc.dashRepo.DistinctJobsWorked(ctx, userID)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	pipeline, err := uc.pipelineFor(ctx, scope)
	if err != nil {
		return nil, err
	}

	trends, err := uc.trendsFor(ctx, scope, start, days)
	if err != nil {
		return nil, err
	}

	recent, err := uc.dashRepo.RecentApplications(ctx, scope, leaderboardSize)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &domain.RecruiterDashboard{
		Range: rangeKey,
		Summary: domain.RecruiterSummary{
			TotalCandidatesAdded: candidatesAdded,
			ActiveJobsWorkedOn:   jobsWorked,
			HireRate:             domain.Rate(summary.Hired, summary.TotalApplications),
			TotalApplications:    summary.TotalApplications,
			ActiveApplications:   summary.ActiveApplications,
			Hired:                summary.Hired,
			Rejected:             summary.Rejected,
		},
		Pipeline:           pipeline,
		Trends:             *trends,
		RecentApplications: recent,
	}, nil
}

// scopedDashboard is the shared partner/user report builder: the same
// aggregation primitives as the admin report, pre-filtered to one
// attribution id.
func (uc *dashboardUsecase) scopedDashboard(ctx context.Context, scope domain.DashboardScope, rangeKey string) (*domain.ScopedDashboard, error) {
	rangeKey, days := parseRange(rangeKey)
	start := windowStart(uc.now(), days)

	summary, err := uc.scopedSummary(ctx, scope)
	if err != nil {
		return nil, err
	}

	pipeline, err := uc.pipelineFor(ctx, scope)
	if err != nil {
		return nil, err
	}

	trends, err := uc.trendsFor(ctx, scope, start, days)
	if err != nil {
		return nil, err
	}

	topJobs, err := uc.dashRepo.TopJobsForScope(ctx, scope, leaderboardSize)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &domain.ScopedDashboard{
		Range:      rangeKey,
		Summary:    *summary,
		Pipeline:   pipeline,
		Trends:     *trends,
		TopJobs:    topJobs,
		Conversion: conversionFrom(pipeline, summary.TotalApplications),
	}, nil
}

func (uc *dashboardUsecase) scopedSummary(ctx context.Context, scope domain.DashboardScope) (*domain.ScopedSummary, error) {
	total, err := uc.dashRepo.CountApplications(ctx, domain.ApplicationCountFilter{Scope: scope})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	active, err := uc.dashRepo.CountApplications(ctx, domain.ApplicationCountFilter{Scope: scope, ActiveOnly: true})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	hired, err := uc.countFinal(ctx, scope, domain.FinalStatusHired, nil, nil)
	if err != nil {
		return nil, err
	}
	rejected, err := uc.countFinal(ctx, scope, domain.FinalStatusRejected, nil, nil)
	if err != nil {
		return nil, err
	}

	return &domain.ScopedSummary{
		TotalApplications:  total,
		ActiveApplications: active,
		Hired:              hired,
		Rejected:           rejected,
	}, nil
}

// pipelineFor returns a fixed-key map covering every pipeline stage,
// zero-filled for stages with no applications.
func (uc *dashboardUsecase) pipelineFor(ctx context.Context, scope domain.DashboardScope) (map[domain.PipelineStage]int64, error) {
	raw, err := uc.dashRepo.PipelineCounts(ctx, scope)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	pipeline := make(map[domain.PipelineStage]int64, len(domain.PipelineStages))
	for _, stage := range domain.PipelineStages {
		pipeline[stage] = raw[stage]
	}
	return pipeline, nil
}

func (uc *dashboardUsecase) trendsFor(ctx context.Context, scope domain.DashboardScope, start time.Time, days int) (*domain.ScopedTrends, error) {
	applications, err := uc.dashRepo.ApplicationsPerDay(ctx, scope, start)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	hires, err := uc.dashRepo.HiresPerDay(ctx, scope, start)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &domain.ScopedTrends{
		Applications: domain.FillDailySeries(applications, start, days),
		Hires:        domain.FillDailySeries(hires, start, days),
	}, nil
}

func (uc *dashboardUsecase) countFinal(ctx context.Context, scope domain.DashboardScope, status string, from, to *time.Time) (int64, error) {
	count, err := uc.dashRepo.CountApplications(ctx, domain.ApplicationCountFilter{
		Scope:       scope,
		FinalStatus: &status,
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return 0, apperror.Storage(err)
	}
	return count, nil
}

// resolvePartnerNames enriches leaderboard entries with organisation
// names. Name resolution is non-critical: a lookup failure degrades to
// "Unknown" rather than failing the report.
func (uc *dashboardUsecase) resolvePartnerNames(ctx context.Context, entries []domain.PartnerLeaderboardEntry) {
	if len(entries) == 0 {
		return
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PartnerID)
	}

	names, err := uc.partnerRepo.GetNamesByIDs(ctx, ids)
	if err != nil {
		logger.Log.Warn("partner name lookup failed for leaderboard", "error", err)
		names = nil
	}

	for i := range entries {
		if name, ok := names[entries[i].PartnerID]; ok {
			entries[i].PartnerName = name
		} else {
			entries[i].PartnerName = "Unknown"
		}
	}
}

func (uc *dashboardUsecase) resolveRecruiterNames(ctx context.Context, entries []domain.RecruiterLeaderboardEntry) {
	if len(entries) == 0 {
		return
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}

	names, err := uc.userRepo.GetNamesByIDs(ctx, ids)
	if err != nil {
		logger.Log.Warn("user name lookup failed for leaderboard", "error", err)
		names = nil
	}

	for i := range entries {
		if name, ok := names[entries[i].UserID]; ok {
			entries[i].UserName = name
		} else {
			entries[i].UserName = "Unknown"
		}
	}
}

// conversionFrom derives the funnel from current stage occupancy. All
// rates are zero-safe.
func conversionFrom(pipeline map[domain.PipelineStage]int64, totalApplications int64) domain.ConversionFunnel {
	hired := pipeline[domain.StageHired]
	screening := pipeline[domain.StageScreening]
	interviewScheduled := pipeline[domain.StageInterviewScheduled]

	return domain.ConversionFunnel{
		ApplicationToHireRate:    domain.Rate(hired, totalApplications),
		ScreeningToInterviewRate: domain.Rate(interviewScheduled, screening),
		InterviewToHireRate:      domain.Rate(hired, interviewScheduled),
	}
}

func sumCounts(m map[string]int64) int64 {
	var total int64
	for _, v := range m {
		total += v
	}
	return total
}
