package usecase

import (
	"bytes"
	"context"
	"fmt"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type exportUsecase struct {
	applicationRepo domain.ApplicationRepository
}

// NewExportUsecase creates a new export usecase
func NewExportUsecase(applicationRepo domain.ApplicationRepository) domain.ExportUsecase {
	return &exportUsecase{applicationRepo: applicationRepo}
}

// ExportApplications exports the application list to Excel or CSV.
func (u *exportUsecase) ExportApplications(ctx context.Context, req domain.ApplicationExportRequest) ([]byte, string, error) {
	apps, err := u.applicationRepo.List(ctx, req.Filter)
	if err != nil {
		return nil, "", apperror.Storage(err)
	}

	if len(req.Columns) == 0 {
		req.Columns = domain.ApplicationExportColumns
	}

	validColumns := make(map[string]bool)
	for _, col := range domain.ApplicationExportColumns {
		validColumns[col] = true
	}
	for _, col := range req.Columns {
		if !validColumns[col] {
			return nil, "", apperror.Validation(fmt.Sprintf("invalid export column: %s", col))
		}
	}

	switch req.Format {
	case "csv":
		return u.exportCSV(apps, req.Columns)
	case "xlsx", "":
		return u.exportExcel(apps, req.Columns)
	default:
		return nil, "", apperror.Validation(fmt.Sprintf("unsupported export format: %s", req.Format))
	}
}

// exportExcel generates an Excel file from application data
func (u *exportUsecase) exportExcel(apps []domain.Application, columns []string) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	headerNames := map[string]string{
		"candidate_name":         "CANDIDATE",
		"candidate_email":        "EMAIL",
		"job_title":              "JOB",
		"company_name":           "COMPANY",
		"pipeline_stage":         "PIPELINE STAGE",
		"final_status":           "FINAL STATUS",
		"source":                 "SOURCE",
		"submitted_by":           "SUBMITTED BY",
		"created_at":             "APPLIED AT",
		"contacted_at":           "CONTACTED AT",
		"interview_scheduled_at": "INTERVIEW SCHEDULED AT",
		"offer_sent_at":          "OFFER SENT AT",
		"hired_at":               "HIRED AT",
		"rejected_at":            "REJECTED AT",
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerName := headerNames[col]
		if headerName == "" {
			headerName = col
		}
		f.SetCellValue(sheetName, cell, headerName)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, fieldValue(app, col))
		}
	}

	for i := range columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportCSV generates a CSV file from application data
func (u *exportUsecase) exportCSV(apps []domain.Application, columns []string) ([]byte, string, error) {
	var buf bytes.Buffer

	buf.WriteString(strings.Join(columns, ",") + "\n")

	for _, app := range apps {
		var values []string
		for _, col := range columns {
			valueStr := fieldValue(app, col)
			if strings.Contains(valueStr, ",") || strings.Contains(valueStr, "\"") || strings.Contains(valueStr, "\n") {
				valueStr = "\"" + strings.ReplaceAll(valueStr, "\"", "\"\"") + "\""
			}
			values = append(values, valueStr)
		}
		buf.WriteString(strings.Join(values, ",") + "\n")
	}

	filename := fmt.Sprintf("applications_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func fieldValue(app domain.Application, column string) string {
	switch column {
	case "candidate_name":
		return strDeref(app.CandidateName)
	case "candidate_email":
		return strDeref(app.CandidateEmail)
	case "job_title":
		return strDeref(app.JobTitle)
	case "company_name":
		return strDeref(app.CompanyName)
	case "pipeline_stage":
		return string(app.PipelineStage)
	case "final_status":
		return strDeref(app.FinalStatus)
	case "source":
		return app.Source
	case "submitted_by":
		if app.PartnerName != nil {
			return *app.PartnerName
		}
		return strDeref(app.SubmitterName)
	case "created_at":
		return app.CreatedAt.Format(time.RFC3339)
	case "contacted_at":
		return timeDeref(app.ContactedAt)
	case "interview_scheduled_at":
		return timeDeref(app.InterviewScheduledAt)
	case "offer_sent_at":
		return timeDeref(app.OfferSentAt)
	case "hired_at":
		return timeDeref(app.HiredAt)
	case "rejected_at":
		return timeDeref(app.RejectedAt)
	default:
		return ""
	}
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeDeref(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
