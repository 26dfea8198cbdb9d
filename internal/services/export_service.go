package services

import (
	"fmt"
	"io"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	monthlySheet = "Monthly"

	// XLSXContentType is the media type of an exported workbook
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportService writes repository summaries as an xlsx workbook
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteWorkbook writes a "Summary" sheet with one column per repository and a "Monthly"
// sheet with one row per repository, event and month.
func (s *ExportService) WriteWorkbook(w io.Writer, summaries []*models.RepoSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return fmt.Errorf("failed to create monthly sheet: %w", err)
	}

	if err := writeSummarySheet(f, summaries); err != nil {
		return err
	}
	if err := writeMonthlySheet(f, summaries); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type summaryRow struct {
	label string
	value func(*models.RepoSummary) interface{}
}

var summaryRows = []summaryRow{
	{"Repository", func(s *models.RepoSummary) interface{} { return s.RepoName }},
	{"Pull Requests", func(s *models.RepoSummary) interface{} { return s.NumPulls }},
	{"Closed-Merged", func(s *models.RepoSummary) interface{} { return s.NumClosedMergedPulls }},
	{"Closed-Unmerged", func(s *models.RepoSummary) interface{} { return s.NumClosedUnmergedPulls }},
	{"Open", func(s *models.RepoSummary) interface{} { return s.NumOpenPulls }},
	{"Stars", func(s *models.RepoSummary) interface{} { return s.Stars }},
	{"Open Issues", func(s *models.RepoSummary) interface{} { return s.OpenIssues }},
	{"Forks", func(s *models.RepoSummary) interface{} { return s.NetworkCount }},
	{"Watchers", func(s *models.RepoSummary) interface{} { return s.SubscriberCount }},
	{"Language", func(s *models.RepoSummary) interface{} { return s.Language }},
	{"Created", func(s *models.RepoSummary) interface{} { return s.CreatedAt.Format(models.TimestampLayout) }},
	{"Updated", func(s *models.RepoSummary) interface{} { return s.UpdatedAt.Format(models.TimestampLayout) }},
}

func writeSummarySheet(f *excelize.File, summaries []*models.RepoSummary) error {
	for row, r := range summaryRows {
		if err := setCell(f, summarySheet, 1, row+1, r.label); err != nil {
			return err
		}
		for col, summary := range summaries {
			if err := setCell(f, summarySheet, col+2, row+1, r.value(summary)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMonthlySheet(f *excelize.File, summaries []*models.RepoSummary) error {
	header := []string{"Repository", "Event", "Month", "Count"}
	for col, h := range header {
		if err := setCell(f, monthlySheet, col+1, 1, h); err != nil {
			return err
		}
	}

	row := 2
	for _, summary := range summaries {
		events := []struct {
			name   string
			series models.MonthlySeries
		}{
			{"Created", summary.Frequency.Created},
			{"Closed", summary.Frequency.Closed},
			{"Merged", summary.Frequency.Merged},
		}
		for _, event := range events {
			for i, label := range event.series.Labels {
				values := []interface{}{summary.RepoName, event.name, label, event.series.Counts[i]}
				for col, v := range values {
					if err := setCell(f, monthlySheet, col+1, row, v); err != nil {
						return err
					}
				}
				row++
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
