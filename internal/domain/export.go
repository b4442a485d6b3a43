package domain

import "context"

// ApplicationExportRequest configures an admin export of the application
// list.
type ApplicationExportRequest struct {
	Filter  ApplicationFilter `json:"filter"`
	Columns []string          `json:"columns"` // Selected columns for export
	Format  string            `json:"format"`  // "xlsx" or "csv"
}

// ApplicationExportColumns lists all columns that can be exported.
var ApplicationExportColumns = []string{
	"candidate_name",
	"candidate_email",
	"job_title",
	"company_name",
	"pipeline_stage",
	"final_status",
	"source",
	"submitted_by",
	"created_at",
	"contacted_at",
	"interview_scheduled_at",
	"offer_sent_at",
	"hired_at",
	"rejected_at",
}

type ExportUsecase interface {
	ExportApplications(ctx context.Context, req ApplicationExportRequest) ([]byte, string, error)
}
