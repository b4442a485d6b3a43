package postgres

import (
	"context"
	"fmt"
	"recruitflow-backend/internal/domain"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type dashboardRepo struct {
	db *pgxpool.Pool
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *pgxpool.Pool) domain.DashboardRepository {
	return &dashboardRepo{db: db}
}

// scopeClause renders the scope as WHERE fragments against the aliased
// applications table. The global scope renders nothing.
func scopeClause(scope domain.DashboardScope, alias string, args *[]interface{}) []string {
	var conditions []string
	if scope.PartnerID != nil {
		*args = append(*args, *scope.PartnerID)
		conditions = append(conditions, fmt.Sprintf("%s.applied_by_partner_id = $%d", alias, len(*args)))
	}
	if scope.UserID != nil {
		*args = append(*args, *scope.UserID)
		conditions = append(conditions, fmt.Sprintf("%s.applied_by_user_id = $%d", alias, len(*args)))
	}
	return conditions
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	clause := " WHERE " + conditions[0]
	for _, cond := range conditions[1:] {
		clause += " AND " + cond
	}
	return clause
}

func (r *dashboardRepo) CountApplications(ctx context.Context, f domain.ApplicationCountFilter) (int64, error) {
	var args []interface{}
	conditions := scopeClause(f.Scope, "a", &args)

	if f.CreatedFrom != nil {
		args = append(args, *f.CreatedFrom)
		conditions = append(conditions, fmt.Sprintf("a.created_at >= $%d", len(args)))
	}
	if f.CreatedTo != nil {
		args = append(args, *f.CreatedTo)
		conditions = append(conditions, fmt.Sprintf("a.created_at < $%d", len(args)))
	}
	if f.FinalStatus != nil {
		args = append(args, *f.FinalStatus)
		conditions = append(conditions, fmt.Sprintf("a.final_status = $%d", len(args)))
	}
	if f.ActiveOnly {
		conditions = append(conditions, "a.final_status IS NULL")
	}

	query := `SELECT COUNT(*) FROM applications a` + whereClause(conditions)

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *dashboardRepo) CountCandidates(ctx context.Context, scope domain.DashboardScope) (int64, error) {
	var args []interface{}
	var conditions []string
	if scope.PartnerID != nil {
		args = append(args, *scope.PartnerID)
		conditions = append(conditions, fmt.Sprintf("created_by_partner_id = $%d", len(args)))
	}
	if scope.UserID != nil {
		args = append(args, *scope.UserID)
		conditions = append(conditions, fmt.Sprintf("created_by_user_id = $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM candidates` + whereClause(conditions)

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *dashboardRepo) CountPartnersByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	var args []interface{}
	var conditions []string
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := `SELECT status, COUNT(*) FROM partners` + whereClause(conditions) + ` GROUP BY status`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *dashboardRepo) CountJobsByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	var args []interface{}
	var conditions []string
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := `SELECT status, COUNT(*) FROM jobs` + whereClause(conditions) + ` GROUP BY status`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *dashboardRepo) CountUsersByRole(ctx context.Context, role string, from *time.Time) (int64, error) {
	args := []interface{}{role}
	conditions := []string{"role = $1"}
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM users` + whereClause(conditions)

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *dashboardRepo) PipelineCounts(ctx context.Context, scope domain.DashboardScope) (map[domain.PipelineStage]int64, error) {
	var args []interface{}
	conditions := scopeClause(scope, "a", &args)

	query := `SELECT a.pipeline_stage, COUNT(*) FROM applications a` +
		whereClause(conditions) + ` GROUP BY a.pipeline_stage`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.PipelineStage]int64)
	for rows.Next() {
		var stage domain.PipelineStage
		var count int64
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		counts[stage] = count
	}
	return counts, rows.Err()
}

func (r *dashboardRepo) perDay(ctx context.Context, query string, args []interface{}) ([]domain.DayCount, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var data []domain.DayCount
	for rows.Next() {
		var d domain.DayCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		data = append(data, d)
	}
	return data, rows.Err()
}

func (r *dashboardRepo) ApplicationsPerDay(ctx context.Context, scope domain.DashboardScope, from time.Time) ([]domain.DayCount, error) {
	args := []interface{}{from}
	conditions := append([]string{"a.created_at >= $1"}, scopeClause(scope, "a", &args)...)

	query := `SELECT DATE(a.created_at), COUNT(*) FROM applications a` +
		whereClause(conditions) + ` GROUP BY DATE(a.created_at) ORDER BY DATE(a.created_at)`
	return r.perDay(ctx, query, args)
}

func (r *dashboardRepo) HiresPerDay(ctx context.Context, scope domain.DashboardScope, from time.Time) ([]domain.DayCount, error) {
	args := []interface{}{from}
	conditions := append([]string{"a.hired_at >= $1", "a.final_status = 'HIRED'"}, scopeClause(scope, "a", &args)...)

	query := `SELECT DATE(a.hired_at), COUNT(*) FROM applications a` +
		whereClause(conditions) + ` GROUP BY DATE(a.hired_at) ORDER BY DATE(a.hired_at)`
	return r.perDay(ctx, query, args)
}

func (r *dashboardRepo) JobsPerDay(ctx context.Context, from time.Time) ([]domain.DayCount, error) {
	query := `SELECT DATE(created_at), COUNT(*) FROM jobs WHERE created_at >= $1
	          GROUP BY DATE(created_at) ORDER BY DATE(created_at)`
	return r.perDay(ctx, query, []interface{}{from})
}

// SourceCounts buckets applications by their attribution fields, not the
// stored source tag: an explicit channel such as LINKEDIN overwrites the
// tag but never the attribution.
func (r *dashboardRepo) SourceCounts(ctx context.Context) (*domain.SourceDistribution, error) {
	query := `
		SELECT CASE
		           WHEN a.applied_by_partner_id IS NOT NULL THEN 'PARTNER'
		           WHEN u.role = 'RECRUITER' THEN 'RECRUITER'
		           ELSE 'USER'
		       END AS attribution, COUNT(*)
		FROM applications a
		LEFT JOIN users u ON u.id = a.applied_by_user_id
		GROUP BY 1`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var attribution string
		var count int64
		if err := rows.Scan(&attribution, &count); err != nil {
			return nil, err
		}
		counts[attribution] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dist := sourceDistributionFrom(counts)
	return &dist, nil
}

func sourceDistributionFrom(counts map[string]int64) domain.SourceDistribution {
	return domain.SourceDistribution{
		Partner:   counts[domain.SourcePartner],
		Recruiter: counts[domain.SourceRecruiter],
		User:      counts[domain.SourceUser],
	}
}

// DepartmentCounts only reports jobs that carry a department.
func (r *dashboardRepo) DepartmentCounts(ctx context.Context) ([]domain.DepartmentCount, error) {
	query := `
		SELECT j.department, COUNT(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.department IS NOT NULL
		GROUP BY j.department
		ORDER BY COUNT(*) DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.DepartmentCount
	for rows.Next() {
		var dc domain.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Applications); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

func (r *dashboardRepo) TopJobsByCount(ctx context.Context, limit int) ([]domain.JobLeaderboardEntry, error) {
	query := `
		SELECT j.id, j.title, j.applications_count
		FROM jobs j
		ORDER BY j.applications_count DESC, j.id
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JobLeaderboardEntry
	for rows.Next() {
		var e domain.JobLeaderboardEntry
		if err := rows.Scan(&e.JobID, &e.JobTitle, &e.Applications); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *dashboardRepo) TopJobsForScope(ctx context.Context, scope domain.DashboardScope, limit int) ([]domain.JobLeaderboardEntry, error) {
	var args []interface{}
	conditions := scopeClause(scope, "a", &args)
	args = append(args, limit)

	query := `
		SELECT j.id, j.title, COUNT(*) AS applications
		FROM applications a
		JOIN jobs j ON j.id = a.job_id` +
		whereClause(conditions) + fmt.Sprintf(`
		GROUP BY j.id, j.title
		ORDER BY applications DESC, j.id
		LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JobLeaderboardEntry
	for rows.Next() {
		var e domain.JobLeaderboardEntry
		if err := rows.Scan(&e.JobID, &e.JobTitle, &e.Applications); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TopPartners returns ids and counts only. Name enrichment happens in the
// usecase so one failed lookup degrades instead of dropping the entry.
func (r *dashboardRepo) TopPartners(ctx context.Context, limit int) ([]domain.PartnerLeaderboardEntry, error) {
	query := `
		SELECT a.applied_by_partner_id, COUNT(*) AS applications
		FROM applications a
		WHERE a.applied_by_partner_id IS NOT NULL
		GROUP BY a.applied_by_partner_id
		ORDER BY applications DESC, a.applied_by_partner_id
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PartnerLeaderboardEntry
	for rows.Next() {
		var e domain.PartnerLeaderboardEntry
		if err := rows.Scan(&e.PartnerID, &e.Applications); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *dashboardRepo) TopRecruiters(ctx context.Context, limit int) ([]domain.RecruiterLeaderboardEntry, error) {
	query := `
		SELECT a.applied_by_user_id, COUNT(*) AS applications
		FROM applications a
		JOIN users u ON u.id = a.applied_by_user_id
		WHERE u.role = 'RECRUITER'
		GROUP BY a.applied_by_user_id
		ORDER BY applications DESC, a.applied_by_user_id
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.RecruiterLeaderboardEntry
	for rows.Next() {
		var e domain.RecruiterLeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Applications); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *dashboardRepo) DistinctJobsWorked(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT job_id) FROM applications WHERE applied_by_user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}

func (r *dashboardRepo) RecentApplications(ctx context.Context, scope domain.DashboardScope, limit int) ([]domain.Application, error) {
	var args []interface{}
	conditions := scopeClause(scope, "a", &args)
	args = append(args, limit)

	query := applicationSelect + whereClause(conditions) +
		fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
