package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"go-jobtracker-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ExportRequest selects the output shape of a grid export.
type ExportRequest struct {
	Format  string   `json:"format"`  // "csv" or "xlsx" (default)
	Columns []string `json:"columns"` // subset of ExportableColumns, all when empty
}

// ExportableColumns lists the columns an export may include, in default order.
var ExportableColumns = []string{
	domain.FieldCompany,
	domain.FieldPosition,
	domain.FieldLocation,
	domain.FieldJobType,
	domain.FieldApplicationDate,
	domain.FieldDeadline,
	domain.FieldStatus,
	domain.FieldJobURL,
	domain.FieldNotes,
}

// ExportUsecase renders the currently displayed collection to a file. It is a
// pure, read-only projection of the engine snapshot, not part of the sync
// core and never touching the row store.
type ExportUsecase interface {
	Export(ctx context.Context, rows []domain.ApplicationRecord, req ExportRequest) ([]byte, string, error)
}

type exportUsecase struct{}

func NewExportUsecase() ExportUsecase {
	return &exportUsecase{}
}

func (u *exportUsecase) Export(ctx context.Context, rows []domain.ApplicationRecord, req ExportRequest) ([]byte, string, error) {
	if len(req.Columns) == 0 {
		req.Columns = ExportableColumns
	}

	valid := make(map[string]bool, len(ExportableColumns))
	for _, col := range ExportableColumns {
		valid[col] = true
	}
	seen := make(map[string]bool, len(req.Columns))
	columns := make([]string, 0, len(req.Columns))
	for _, col := range req.Columns {
		if !valid[col] {
			return nil, "", fmt.Errorf("invalid export column: %s", col)
		}
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}

	switch req.Format {
	case "csv":
		return exportCSV(rows, columns)
	case "xlsx", "":
		return exportExcel(rows, columns)
	default:
		return nil, "", fmt.Errorf("unsupported export format: %s", req.Format)
	}
}

var exportHeaderNames = map[string]string{
	domain.FieldCompany:         "COMPANY",
	domain.FieldPosition:        "POSITION",
	domain.FieldLocation:        "LOCATION",
	domain.FieldJobType:         "JOB TYPE",
	domain.FieldApplicationDate: "APPLICATION DATE",
	domain.FieldDeadline:        "DEADLINE",
	domain.FieldStatus:          "STATUS",
	domain.FieldJobURL:          "JOB URL",
	domain.FieldNotes:           "NOTES",
}

// exportExcel generates a styled workbook from the snapshot.
func exportExcel(rows []domain.ApplicationRecord, columns []string) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		name := exportHeaderNames[col]
		if name == "" {
			name = col
		}
		f.SetCellValue(sheetName, cell, name)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, rec := range rows {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, recordFieldValue(rec, col))
		}
	}

	for i := range columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportCSV generates a CSV file from the snapshot.
func exportCSV(rows []domain.ApplicationRecord, columns []string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = recordFieldValue(rec, col)
		}
		if err := w.Write(values); err != nil {
			return nil, "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("applications_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// recordFieldValue renders one exported cell.
func recordFieldValue(rec domain.ApplicationRecord, field string) string {
	switch field {
	case domain.FieldCompany:
		return rec.Company
	case domain.FieldPosition:
		return rec.Position
	case domain.FieldLocation:
		return rec.Location
	case domain.FieldJobType:
		return rec.JobType
	case domain.FieldApplicationDate:
		return formatDate(rec.ApplicationDate)
	case domain.FieldDeadline:
		return formatDate(rec.Deadline)
	case domain.FieldStatus:
		return rec.Status
	case domain.FieldJobURL:
		return rec.JobURL
	case domain.FieldNotes:
		return rec.Notes
	default:
		return ""
	}
}
