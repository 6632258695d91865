package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/report"
	"github.com/cmlabs-hris/hris-duty-report/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/export"
)

type ReportHandler interface {
	// Attendance table with derived lateness and day credit
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Duty summary with calendar-week breakdown
	GetDutySummaryReport(w http.ResponseWriter, r *http.Request)

	// Printable duty summary (xlsx or pdf)
	ExportDutySummary(w http.ResponseWriter, r *http.Request)

	// Caller's own attendance
	GetMyAttendance(w http.ResponseWriter, r *http.Request)

	// Print stylesheet for report pages
	GetPrintStylesheet(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func filterFromQuery(r *http.Request) attendance.AttendanceFilter {
	query := r.URL.Query()
	return attendance.AttendanceFilter{
		EmployeeID:   query.Get("employee_id"),
		DepartmentID: query.Get("department_id"),
		ScheduleID:   query.Get("schedule_id"),
		StartDate:    query.Get("start_date"),
		EndDate:      query.Get("end_date"),
	}
}

// GetAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GenerateAttendanceReport(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDutySummaryReport handles GET /reports/duty-summary
func (h *reportHandlerImpl) GetDutySummaryReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GenerateDutySummaryReport(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportDutySummary handles GET /reports/duty-summary/export
func (h *reportHandlerImpl) ExportDutySummary(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		AttendanceFilter: filterFromQuery(r),
		Format:           r.URL.Query().Get("format"),
	}

	file, err := h.reportService.ExportDutySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

// GetMyAttendance handles GET /attendance/me
func (h *reportHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	req := report.MyAttendanceRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.GetMyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPrintStylesheet handles GET /static/print.css
func (h *reportHandlerImpl) GetPrintStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(export.PrintStylesheet)
}
