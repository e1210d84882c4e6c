package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/khoahotran/educursus/internal/application/service"
)

const (
	SheetCertificates = "Certificates"
	SheetProgress     = "Progress"
)

type excelReportBuilder struct{}

func NewExcelReportBuilder() service.ReportBuilder {
	return &excelReportBuilder{}
}

// Build writes a two-sheet workbook: earned certificates and skill progress.
func (b *excelReportBuilder) Build(data service.ReportData) (io.Reader, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCertificates); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetProgress); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	rows := [][]any{
		{"Student", data.StudentName},
		{"Level", data.Level},
		{"Progress", fmt.Sprintf("%d%%", data.Percentage)},
		{},
		{"Project", "Phase", "Date"},
	}
	for _, t := range data.Tokens {
		rows = append(rows, []any{t.Project, t.Phase, t.Date})
	}
	if err := writeRows(f, SheetCertificates, rows); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetCertificates, "A5", "C5", header); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	skills := make([]string, 0, len(data.Progress))
	for s := range data.Progress {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	progressRows := [][]any{{"Skill", "Completed"}}
	for _, s := range skills {
		status := "No"
		if data.Progress[s] {
			status = "Yes"
		}
		progressRows = append(progressRows, []any{s, status})
	}
	if err := writeRows(f, SheetProgress, progressRows); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetProgress, "A1", "B1", header); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
