package report

import (
	"context"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// Attendance table with per-day derived values and summary counts
	GenerateAttendanceReport(ctx context.Context, filter attendance.AttendanceFilter) (AttendanceReport, error)

	// Duty summary for the period with a calendar-week breakdown
	GenerateDutySummaryReport(ctx context.Context, filter attendance.AttendanceFilter) (DutySummaryReport, error)

	// Printable duty summary as xlsx or pdf
	ExportDutySummary(ctx context.Context, req ExportRequest) (ExportFile, error)

	// Attendance table for the authenticated employee
	GetMyAttendance(ctx context.Context, req MyAttendanceRequest) (AttendanceReport, error)
}
