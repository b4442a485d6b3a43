package domain

import (
	"context"
	"math"
	"time"
)

// DashboardScope narrows aggregation queries to one attribution id. The
// zero value is the global (admin) scope.
type DashboardScope struct {
	PartnerID *int64
	UserID    *string
}

// DayCount is one grouped-by-day row from the store.
type DayCount struct {
	Date  time.Time
	Count int64
}

// TrendPoint is one day of a dense series.
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// FillDailySeries gap-fills a sparse grouped-by-day result into a dense
// series: exactly one point per calendar day in [start, start+days),
// ascending, zero for days with no events.
func FillDailySeries(data []DayCount, start time.Time, days int) []TrendPoint {
	byDay := make(map[string]int64, len(data))
	for _, d := range data {
		byDay[d.Date.Format("2006-01-02")] = d.Count
	}

	series := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, TrendPoint{Date: day, Count: byDay[day]})
	}
	return series
}

// Rate returns n/d as a percentage rounded to one decimal. A zero
// denominator yields 0, never NaN.
func Rate(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(d)*1000) / 10
}

// PercentChange compares a window count against the preceding window.
// Convention: previous 0 yields 0 when current is also 0, else 100.
func PercentChange(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return math.Round(float64(current-previous)/float64(previous)*1000) / 10
}

// ---------------------------------------------------------------------------
// Report shapes
// ---------------------------------------------------------------------------

type AdminSummary struct {
	TotalPartners    int64 `json:"total_partners"`
	ActivePartners   int64 `json:"active_partners"`
	PendingPartners  int64 `json:"pending_partners"`
	RejectedPartners int64 `json:"rejected_partners"`

	TotalJobs  int64 `json:"total_jobs"`
	OpenJobs   int64 `json:"open_jobs"`
	ClosedJobs int64 `json:"closed_jobs"`

	TotalApplications  int64 `json:"total_applications"`
	ActiveApplications int64 `json:"active_applications"`
	Hired              int64 `json:"hired"`
	Rejected           int64 `json:"rejected"`

	TotalRecruiters int64 `json:"total_recruiters"`
}

// SummaryChange holds period-over-period percentage deltas for the
// current window against the immediately preceding window.
type SummaryChange struct {
	Applications float64 `json:"applications"`
	Hires        float64 `json:"hires"`
	Jobs         float64 `json:"jobs"`
	Partners     float64 `json:"partners"`
}

type SourceDistribution struct {
	Partner   int64 `json:"partner"`
	Recruiter int64 `json:"recruiter"`
	User      int64 `json:"user"`
}

type DepartmentCount struct {
	Department   string `json:"department"`
	Applications int64  `json:"applications"`
}

type JobLeaderboardEntry struct {
	JobID        int64  `json:"job_id"`
	JobTitle     string `json:"job_title"`
	Applications int64  `json:"applications"`
}

type PartnerLeaderboardEntry struct {
	PartnerID    int64  `json:"partner_id"`
	PartnerName  string `json:"partner_name"`
	Applications int64  `json:"applications"`
}

type RecruiterLeaderboardEntry struct {
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	Applications int64  `json:"applications"`
}

type ConversionFunnel struct {
	ApplicationToHireRate    float64 `json:"application_to_hire_rate"`
	ScreeningToInterviewRate float64 `json:"screening_to_interview_rate"`
	InterviewToHireRate      float64 `json:"interview_to_hire_rate"`
}

type AdminTrends struct {
	Applications []TrendPoint `json:"applications"`
	Hires        []TrendPoint `json:"hires"`
	JobsCreated  []TrendPoint `json:"jobs_created"`
}

type AdminDistribution struct {
	BySource     SourceDistribution    `json:"applications_by_source"`
	ByDepartment []DepartmentCount     `json:"applications_by_department"`
	ByJob        []JobLeaderboardEntry `json:"applications_by_job"`
}

type AdminLeaderboards struct {
	TopPartners   []PartnerLeaderboardEntry   `json:"top_partners"`
	TopRecruiters []RecruiterLeaderboardEntry `json:"top_recruiters"`
	TopJobs       []JobLeaderboardEntry       `json:"top_jobs"`
}

type AdminDashboard struct {
	Range         string                  `json:"range"`
	Summary       AdminSummary            `json:"summary"`
	SummaryChange SummaryChange           `json:"summary_change"`
	Pipeline      map[PipelineStage]int64 `json:"pipeline"`
	Trends        AdminTrends             `json:"trends"`
	Distribution  AdminDistribution       `json:"distribution"`
	Leaderboards  AdminLeaderboards       `json:"leaderboards"`
	Conversion    ConversionFunnel        `json:"conversion"`
}

type ScopedSummary struct {
	TotalCandidates    int64 `json:"total_candidates,omitempty"`
	TotalApplications  int64 `json:"total_applications"`
	ActiveApplications int64 `json:"active_applications"`
	Hired              int64 `json:"hired"`
	Rejected           int64 `json:"rejected"`
}

type ScopedTrends struct {
	Applications []TrendPoint `json:"applications"`
	Hires        []TrendPoint `json:"hires"`
}

type ScopedDashboard struct {
	Range      string                  `json:"range"`
	Summary    ScopedSummary           `json:"summary"`
	Pipeline   map[PipelineStage]int64 `json:"pipeline"`
	Trends     ScopedTrends            `json:"trends"`
	TopJobs    []JobLeaderboardEntry   `json:"top_jobs"`
	Conversion ConversionFunnel        `json:"conversion"`
}

type RecruiterSummary struct {
	TotalCandidatesAdded int64   `json:"total_candidates_added"`
	ActiveJobsWorkedOn   int64   `json:"active_jobs_worked_on"`
	HireRate             float64 `json:"hire_rate"`

	TotalApplications  int64 `json:"total_applications"`
	ActiveApplications int64 `json:"active_applications"`
	Hired              int64 `json:"hired"`
	Rejected           int64 `json:"rejected"`
}

type RecruiterDashboard struct {
	Range              string                  `json:"range"`
	Summary            RecruiterSummary        `json:"summary"`
	Pipeline           map[PipelineStage]int64 `json:"pipeline"`
	Trends             ScopedTrends            `json:"trends"`
	RecentApplications []Application           `json:"recent_applications"`
}

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// ApplicationCountFilter parameterizes application count queries.
type ApplicationCountFilter struct {
	Scope       DashboardScope
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	FinalStatus *string
	ActiveOnly  bool // final_status IS NULL
}

// DashboardRepository is the read side of the aggregation engine. Every
// method takes the scope so the same queries serve admin, partner, user
// and recruiter reports.
type DashboardRepository interface {
	CountApplications(ctx context.Context, f ApplicationCountFilter) (int64, error)
	CountCandidates(ctx context.Context, scope DashboardScope) (int64, error)
	CountPartnersByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error)
	CountJobsByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error)
	CountUsersByRole(ctx context.Context, role string, from *time.Time) (int64, error)

	PipelineCounts(ctx context.Context, scope DashboardScope) (map[PipelineStage]int64, error)

	ApplicationsPerDay(ctx context.Context, scope DashboardScope, from time.Time) ([]DayCount, error)
	HiresPerDay(ctx context.Context, scope DashboardScope, from time.Time) ([]DayCount, error)
	JobsPerDay(ctx context.Context, from time.Time) ([]DayCount, error)

	SourceCounts(ctx context.Context) (*SourceDistribution, error)
	DepartmentCounts(ctx context.Context) ([]DepartmentCount, error)

	TopJobsByCount(ctx context.Context, limit int) ([]JobLeaderboardEntry, error)
	TopJobsForScope(ctx context.Context, scope DashboardScope, limit int) ([]JobLeaderboardEntry, error)
	TopPartners(ctx context.Context, limit int) ([]PartnerLeaderboardEntry, error)
	TopRecruiters(ctx context.Context, limit int) ([]RecruiterLeaderboardEntry, error)

	DistinctJobsWorked(ctx context.Context, userID string) (int64, error)
	RecentApplications(ctx context.Context, scope DashboardScope, limit int) ([]Application, error)
}

type DashboardUsecase interface {
	GetAdminDashboard(ctx context.Context, rangeKey string) (*AdminDashboard, error)
	GetPartnerDashboard(ctx context.Context, partnerID int64, rangeKey string) (*ScopedDashboard, error)
	GetUserDashboard(ctx context.Context, userID string, rangeKey string) (*ScopedDashboard, error)
	GetRecruiterDashboard(ctx context.Context, userID string, rangeKey string) (*RecruiterDashboard, error)
}
