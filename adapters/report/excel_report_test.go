package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/token"
)

func TestBuild(t *testing.T) {
	data := service.ReportData{
		StudentName: "Asha",
		Level:       "Explorer",
		Percentage:  42,
		Progress:    progress.Progress{"SQL Databases": true, "Linear Algebra": false},
		Tokens:      []token.Token{{Project: "Churn Model", Phase: "Machine Learning", Date: "3/7/2025"}},
	}

	r, err := NewExcelReportBuilder().Build(data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(r)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(SheetCertificates, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", name)

	project, err := f.GetCellValue(SheetCertificates, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Churn Model", project)

	rows, err := f.GetRows(SheetProgress)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Skill", "Completed"},
		{"Linear Algebra", "No"},
		{"SQL Databases", "Yes"},
	}, rows)
}
