package report

import (
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/validator"
)

// ========================================
// ATTENDANCE REPORT
// ========================================

type AttendanceReport struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Employees []EmployeeAttendance `json:"employees"`
}

type EmployeeAttendance struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`

	Summary   AttendanceSummary `json:"summary"`
	DailyRows []DailyRow        `json:"daily_rows"`
}

type AttendanceSummary struct {
	Duty             int    `json:"duty"`
	HolidayDuty      int    `json:"holiday_duty"`
	HolidayOff       int    `json:"holiday_off"`
	Off              int    `json:"off"`
	Leave            int    `json:"leave"`
	Absent           int    `json:"absent"`
	TotalLateMinutes int    `json:"total_late_minutes"`
	TotalPaidDays    string `json:"total_paid_days"`
}

type DailyRow struct {
	Date         string `json:"date"`
	DayOfWeek    string `json:"day_of_week"`
	ScheduleType string `json:"schedule_type"`
	Status       string `json:"status"`
	ShiftType    string `json:"shift_type,omitempty"`
	Shift        string `json:"shift,omitempty"`

	MorningIn    *TimeLog `json:"morning_in,omitempty"`
	MorningOut   *TimeLog `json:"morning_out,omitempty"`
	AfternoonIn  *TimeLog `json:"afternoon_in,omitempty"`
	AfternoonOut *TimeLog `json:"afternoon_out,omitempty"`
	TimeIn       *TimeLog `json:"time_in,omitempty"`
	TimeOut      *TimeLog `json:"time_out,omitempty"`

	// LateMinutes is nil when lateness does not apply to the day
	LateMinutes   *int   `json:"late_minutes"`
	DayEquivalent string `json:"day_equivalent"`

	LeaveName     string `json:"leave_name,omitempty"`
	LeaveCategory string `json:"leave_category,omitempty"`
	Compensatory  bool   `json:"compensatory_time_off,omitempty"`
	HolidayName   string `json:"holiday_name,omitempty"`
	HolidayType   string `json:"holiday_type,omitempty"`
}

type TimeLog struct {
	Time   string `json:"time"`
	Source string `json:"source,omitempty"`
}

// ========================================
// DUTY SUMMARY REPORT
// ========================================

type DutySummaryReport struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Employees []EmployeeDutySummary `json:"employees"`
}

type EmployeeDutySummary struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`

	Period DutySummary         `json:"period"`
	Weeks  []WeeklyDutySummary `json:"weeks"`
}

type WeeklyDutySummary struct {
	WeekStart string      `json:"week_start"`
	WeekEnd   string      `json:"week_end"`
	Summary   DutySummary `json:"summary"`
}

type DutySummary struct {
	RegularDuty        int    `json:"regular_duty"`
	OvertimeDuty       string `json:"overtime_duty"`
	LeaveWithPay       int    `json:"leave_with_pay"`
	LeaveWithoutPay    int    `json:"leave_without_pay"`
	HolidayOff         int    `json:"holiday_off"`
	RegularHoliday     int    `json:"regular_holiday"`
	SpecialHoliday     int    `json:"special_holiday"`
	SpecialHolidayDays string `json:"special_holiday_days"`
	NightDifferential  int    `json:"noc"`
	LateMinutes        int    `json:"late_minutes"`
	TotalDuty          string `json:"total_duty"`
}

// ========================================
// EXPORT
// ========================================

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)

var ExportFormatValues = []string{string(ExportXLSX), string(ExportPDF)}

type ExportRequest struct {
	attendance.AttendanceFilter
	Format string `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.AttendanceFilter.Validate(); err != nil {
		filterErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, filterErrs...)
	}

	if validator.IsEmpty(r.Format) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format is required",
		})
	} else if !validator.IsInSlice(r.Format, ExportFormatValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: ErrInvalidExportFormat.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ========================================
// MY ATTENDANCE
// ========================================

type MyAttendanceRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *MyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
