package report

import "errors"

var (
	ErrInvalidExportFormat    = errors.New("export format must be xlsx or pdf")
	ErrNoDataFound            = errors.New("no data found for the specified criteria")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
