package service

import (
	"io"

	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/token"
)

type ReportData struct {
	StudentName string
	Level       string
	Percentage  int
	Progress    progress.Progress
	Tokens      []token.Token
}

// ReportBuilder renders a certificate report as a spreadsheet.
type ReportBuilder interface {
	Build(data ReportData) (io.Reader, error)
}
