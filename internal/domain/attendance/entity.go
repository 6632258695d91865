package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord is one employee's schedule and attendance for one calendar day.
// Records are read-only snapshots of what the HRIS API returned.
type AttendanceRecord struct {
	EmployeeID   string
	EmployeeName string
	DepartmentID string
	ScheduleID   string
	Date         time.Time

	ScheduleType ScheduleType
	Status       Status

	// Shift is nil when the record carries no shift template.
	Shift   ShiftDefinition
	Leave   *LeaveDetail
	Holiday *Holiday

	// Standard shift logs
	MorningIn    *TimeLog
	MorningOut   *TimeLog
	AfternoonIn  *TimeLog
	AfternoonOut *TimeLog

	// Shifting shift logs
	TimeIn  *TimeLog
	TimeOut *TimeLog

	MorningLateMinutes   int
	AfternoonLateMinutes int
	LateMinutes          int
}

type ScheduleType string

const (
	ScheduleDuty       ScheduleType = "duty"
	ScheduleOff        ScheduleType = "off"
	ScheduleHolidayOff ScheduleType = "holiday_off"
	ScheduleLeave      ScheduleType = "leave"
)

type Status string

const (
	StatusPresent    Status = "Present"
	StatusLate       Status = "Late"
	StatusAbsent     Status = "Absent"
	StatusIncomplete Status = "Incomplete"
	StatusScheduled  Status = "Scheduled"
	StatusOnDuty     Status = "On Duty"
	StatusDuty       Status = "Duty"
	StatusOff        Status = "Off"
	StatusHolidayOff Status = "Holiday Off"
	StatusLeave      Status = "Leave"
	StatusNoShow     Status = "No Show"
)

// LeaveDetail describes the leave template attached to a leave day.
type LeaveDetail struct {
	Name     string
	Category string
	IsPaid   bool

	// Compensatory is non-nil when the leave is compensatory time off, i.e. a
	// day that is actually worked on the given shift.
	Compensatory *CompensatoryWork
}

type CompensatoryWork struct {
	Shift    ShiftDefinition
	WorkDate *time.Time
}

// Holiday is a designated holiday attached to the record's date.
type Holiday struct {
	Name string
	Type string
	// PayMultiplier is a fraction of a full day, e.g. 1.3 for a 130% rate.
	PayMultiplier decimal.Decimal
}

type LogSource string

const (
	LogSourceManual    LogSource = "manual"
	LogSourceBiometric LogSource = "biometric"
)

// TimeLog is a logged punch as displayed by the HRIS, e.g. "07:58".
type TimeLog struct {
	Time   string
	Source LogSource
}

// IsCompensatoryTimeOff reports whether the record is a leave day worked as
// compensatory time off.
func (r AttendanceRecord) IsCompensatoryTimeOff() bool {
	return r.ScheduleType == ScheduleLeave && r.Leave != nil && r.Leave.Compensatory != nil
}

// HasDutyObligation reports whether lateness is meaningful for the record.
func (r AttendanceRecord) HasDutyObligation() bool {
	return r.ScheduleType == ScheduleDuty || r.IsCompensatoryTimeOff()
}

// ActiveShift returns the compensatory work shift for compensatory time off,
// otherwise the record's own shift template.
func (r AttendanceRecord) ActiveShift() ShiftDefinition {
	if r.IsCompensatoryTimeOff() {
		return r.Leave.Compensatory.Shift
	}
	return r.Shift
}

// DateKey returns the record date as YYYY-MM-DD.
func (r AttendanceRecord) DateKey() string {
	return r.Date.Format(DateLayout)
}
