// Package metrics derives lateness, day-equivalent pay credit and summary counts
// from already-fetched attendance records. Every function here is pure and never
// mutates its input.
package metrics

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

const NotCredited = "--"

var (
	one            = decimal.NewFromInt(1)
	eight          = decimal.NewFromInt(8)
	minutesPerHour = decimal.NewFromInt(60)
)

// Credit is the day-equivalent pay credit of a single record.
type Credit struct {
	Value    decimal.Decimal
	Credited bool
}

func credit(v decimal.Decimal) Credit { return Credit{Value: v, Credited: true} }

func (c Credit) String() string {
	if !c.Credited {
		return NotCredited
	}
	return FormatDays(c.Value)
}

// FormatDays renders whole values as integers and everything else with exactly
// one decimal place.
func FormatDays(v decimal.Decimal) string {
	v = v.Round(1)
	if v.Equal(v.Truncate(0)) {
		return v.Truncate(0).String()
	}
	return v.StringFixed(1)
}

// LateMinutes returns the record's total lateness. Records without a duty
// obligation report 0; use HasDutyObligation to tell "not applicable" apart.
func LateMinutes(r attendance.AttendanceRecord) int {
	if !r.HasDutyObligation() {
		return 0
	}

	if shift := r.ActiveShift(); shift != nil && shift.Type() == attendance.ShiftStandard {
		return r.MorningLateMinutes + r.AfternoonLateMinutes
	}
	return r.LateMinutes
}

// HasDutyObligation reports whether lateness applies to the record.
func HasDutyObligation(r attendance.AttendanceRecord) bool {
	return r.HasDutyObligation()
}

// DayEquivalent returns the pay-day credit of a record. The first matching rule wins.
func DayEquivalent(r attendance.AttendanceRecord) Credit {
	switch {
	case r.Status == attendance.StatusAbsent:
		return Credit{}
	case r.ScheduleType == attendance.ScheduleHolidayOff:
		return credit(one)
	case r.ScheduleType == attendance.ScheduleDuty && r.Holiday != nil:
		return credit(r.Holiday.PayMultiplier)
	case r.IsCompensatoryTimeOff():
		return credit(one)
	case r.ScheduleType == attendance.ScheduleLeave && r.Leave != nil && r.Leave.IsPaid:
		return credit(one)
	case r.ScheduleType == attendance.ScheduleDuty:
		return credit(dutyDays(r.Shift))
	default:
		return Credit{}
	}
}

// dutyDays credits a flat day for Standard shifts and shift length over eight
// hours for Shifting shifts, rounded to one decimal place.
func dutyDays(shift attendance.ShiftDefinition) decimal.Decimal {
	s, ok := shift.(attendance.ShiftingShift)
	if !ok {
		return one
	}

	hours := ShiftHours(s)
	if hours.LessThanOrEqual(eight) {
		return one
	}
	return hours.Div(eight).Round(1)
}

// ShiftHours returns the scheduled span of a Shifting shift in hours.
func ShiftHours(s attendance.ShiftingShift) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(s.Span() / time.Minute))
	return minutes.Div(minutesPerHour)
}

// OvertimeDays returns (hours-8)/8 for a Shifting shift longer than eight hours,
// otherwise zero.
func OvertimeDays(shift attendance.ShiftDefinition) decimal.Decimal {
	s, ok := shift.(attendance.ShiftingShift)
	if !ok {
		return decimal.Zero
	}
	hours := ShiftHours(s)
	if hours.LessThanOrEqual(eight) {
		return decimal.Zero
	}
	return hours.Sub(eight).Div(eight)
}

type LeaveCategory string

const (
	LeaveSick        LeaveCategory = "sick"
	LeaveBereavement LeaveCategory = "bereavement"
	LeaveOther       LeaveCategory = "other"
)

// CategorizeLeave classifies free-text leave categories.
func CategorizeLeave(l *attendance.LeaveDetail) LeaveCategory {
	if l == nil {
		return ""
	}
	category := strings.ToLower(l.Category)
	switch {
	case strings.Contains(category, "sick"):
		return LeaveSick
	case strings.Contains(category, "bereavement"):
		return LeaveBereavement
	default:
		return LeaveOther
	}
}

// HolidayKind classifies a holiday by substring match on its type.
type HolidayKind string

const (
	HolidayRegular HolidayKind = "regular"
	HolidaySpecial HolidayKind = "special"
)

func ClassifyHoliday(h *attendance.Holiday) HolidayKind {
	if h == nil {
		return ""
	}
	t := strings.ToLower(h.Type)
	switch {
	case strings.Contains(t, "regular"):
		return HolidayRegular
	case strings.Contains(t, "special"):
		return HolidaySpecial
	default:
		return ""
	}
}
