package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/report"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/user"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/export"
	"github.com/cmlabs-hris/hris-duty-report/internal/service/metrics"
	"github.com/go-chi/jwtauth/v5"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    attendance.HolidayRepository
	now            func() time.Time
}

// NewReportService creates the report service. holidayRepo may be nil, in which
// case records keep only the holidays they arrived with.
func NewReportService(attendanceRepo attendance.AttendanceRepository, holidayRepo attendance.HolidayRepository) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		now:            time.Now,
	}
}

// getPrincipalFromContext extracts the caller from JWT claims
func (s *ReportServiceImpl) getPrincipalFromContext(ctx context.Context) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Principal{}, fmt.Errorf("failed to extract claims from context: %w", user.ErrInvalidToken)
	}
	return user.PrincipalFromClaims(claims)
}

// scopeFilter narrows filter to what the caller may see. Roles with
// reports.view_all keep the filter, managers are pinned to their department and
// everyone else to their own employee id.
func scopeFilter(p user.Principal, filter attendance.AttendanceFilter) (attendance.AttendanceFilter, error) {
	switch {
	case user.HasPermission(p.Role, user.PermissionReportsViewAll):
		return filter, nil
	case p.Role == user.RoleManager:
		if p.DepartmentID == "" {
			return filter, user.ErrDepartmentIDRequired
		}
		if filter.DepartmentID != "" && filter.DepartmentID != p.DepartmentID {
			return filter, user.ErrInsufficientPermissions
		}
		filter.DepartmentID = p.DepartmentID
		return filter, nil
	default:
		if p.EmployeeID == "" {
			return filter, user.ErrEmployeeIDRequired
		}
		if filter.EmployeeID != "" && filter.EmployeeID != p.EmployeeID {
			return filter, user.ErrInsufficientPermissions
		}
		filter.EmployeeID = p.EmployeeID
		return filter, nil
	}
}

// GenerateAttendanceReport generates the per-day attendance table
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, filter attendance.AttendanceFilter) (report.AttendanceReport, error) {
	if err := filter.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	principal, err := s.getPrincipalFromContext(ctx)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	filter, err = scopeFilter(principal, filter)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	return s.buildAttendanceReport(ctx, filter)
}

// GetMyAttendance generates the attendance table of the authenticated employee
func (s *ReportServiceImpl) GetMyAttendance(ctx context.Context, req report.MyAttendanceRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	principal, err := s.getPrincipalFromContext(ctx)
	if err != nil {
		return report.AttendanceReport{}, err
	}
	if principal.EmployeeID == "" {
		return report.AttendanceReport{}, user.ErrEmployeeIDRequired
	}

	filter := attendance.AttendanceFilter{
		EmployeeID: principal.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := filter.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	return s.buildAttendanceReport(ctx, filter)
}

// GenerateDutySummaryReport generates the duty summary with a weekly breakdown
func (s *ReportServiceImpl) GenerateDutySummaryReport(ctx context.Context, filter attendance.AttendanceFilter) (report.DutySummaryReport, error) {
	if err := filter.Validate(); err != nil {
		return report.DutySummaryReport{}, err
	}

	principal, err := s.getPrincipalFromContext(ctx)
	if err != nil {
		return report.DutySummaryReport{}, err
	}

	filter, err = scopeFilter(principal, filter)
	if err != nil {
		return report.DutySummaryReport{}, err
	}

	return s.buildDutySummaryReport(ctx, filter)
}

// ExportDutySummary renders the duty summary as a printable file
func (s *ReportServiceImpl) ExportDutySummary(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	summary, err := s.GenerateDutySummaryReport(ctx, req.AttendanceFilter)
	if err != nil {
		return report.ExportFile{}, err
	}
	if len(summary.Employees) == 0 {
		return report.ExportFile{}, report.ErrNoDataFound
	}

	filename := fmt.Sprintf("duty-summary_%s_%s.%s", summary.PeriodStart, summary.PeriodEnd, req.Format)

	switch report.ExportFormat(req.Format) {
	case report.ExportXLSX:
		content, err := export.DutySummaryXLSX(summary)
		if err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
		}
		return report.ExportFile{Filename: filename, ContentType: export.ContentTypeXLSX, Content: content}, nil
	case report.ExportPDF:
		content, err := export.DutySummaryPDF(summary)
		if err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
		}
		return report.ExportFile{Filename: filename, ContentType: export.ContentTypePDF, Content: content}, nil
	default:
		return report.ExportFile{}, report.ErrInvalidExportFormat
	}
}

func (s *ReportServiceImpl) buildAttendanceReport(ctx context.Context, filter attendance.AttendanceFilter) (report.AttendanceReport, error) {
	records, err := s.loadRecords(ctx, filter)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	groups := metrics.GroupByEmployee(ctx, records)
	employees := make([]report.EmployeeAttendance, 0, len(groups))
	for _, group := range groups {
		employees = append(employees, toEmployeeAttendance(group))
	}

	return report.AttendanceReport{
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
		GeneratedAt: s.now().In(attendance.Location).Format(time.RFC3339),
		Employees:   employees,
	}, nil
}

func (s *ReportServiceImpl) buildDutySummaryReport(ctx context.Context, filter attendance.AttendanceFilter) (report.DutySummaryReport, error) {
	records, err := s.loadRecords(ctx, filter)
	if err != nil {
		return report.DutySummaryReport{}, err
	}

	groups := metrics.GroupByEmployee(ctx, records)
	employees := make([]report.EmployeeDutySummary, 0, len(groups))
	for _, group := range groups {
		employees = append(employees, toEmployeeDutySummary(group))
	}

	return report.DutySummaryReport{
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
		GeneratedAt: s.now().In(attendance.Location).Format(time.RFC3339),
		Employees:   employees,
	}, nil
}

// loadRecords fetches the period and attaches known holidays. The returned
// slice is a copy; records from the repository are never modified.
func (s *ReportServiceImpl) loadRecords(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, error) {
	fetched, err := s.attendanceRepo.ListByPeriod(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance data: %w", err)
	}

	records := make([]attendance.AttendanceRecord, len(fetched))
	copy(records, fetched)

	if s.holidayRepo == nil || len(records) == 0 {
		return records, nil
	}

	start, end, err := filter.Period()
	if err != nil {
		return nil, err
	}
	holidays, err := s.holidayRepo.ListHolidays(ctx, start, end)
	if err != nil {
		// records still carry the holidays the HRIS attached itself
		slog.WarnContext(ctx, "Holiday lookup failed, continuing without it", "error", err)
		return records, nil
	}

	return attachHolidays(records, holidays), nil
}

// attachHolidays sets the holiday of records that have none. records is
// updated in place and must already be a private copy.
func attachHolidays(records []attendance.AttendanceRecord, holidays map[string]attendance.Holiday) []attendance.AttendanceRecord {
	for i := range records {
		if records[i].Holiday != nil {
			continue
		}
		if h, ok := holidays[records[i].DateKey()]; ok {
			records[i].Holiday = &h
		}
	}
	return records
}
