package metrics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// SummaryCounts are the per-employee counters shown under the attendance table.
type SummaryCounts struct {
	Duty             int
	HolidayDuty      int
	HolidayOff       int
	Off              int
	Leave            int
	Absent           int
	TotalLateMinutes int
	TotalPaidDays    decimal.Decimal
}

// Summarize classifies each record once, giving what actually happened priority
// over what was scheduled.
func Summarize(records []attendance.AttendanceRecord) SummaryCounts {
	counts := SummaryCounts{TotalPaidDays: decimal.Zero}

	for _, r := range records {
		switch {
		case r.Status == attendance.StatusAbsent:
			counts.Absent++
		case r.ScheduleType == attendance.ScheduleDuty && r.Holiday != nil:
			counts.HolidayDuty++
		case isWorkedStatus(r.Status) || r.ScheduleType == attendance.ScheduleDuty:
			counts.Duty++
		case r.ScheduleType == attendance.ScheduleHolidayOff:
			counts.HolidayOff++
		case r.ScheduleType == attendance.ScheduleOff:
			counts.Off++
		case r.ScheduleType == attendance.ScheduleLeave:
			counts.Leave++
		}

		counts.TotalLateMinutes += LateMinutes(r)
		if c := DayEquivalent(r); c.Credited {
			counts.TotalPaidDays = counts.TotalPaidDays.Add(c.Value)
		}
	}

	return counts
}

func isWorkedStatus(s attendance.Status) bool {
	switch s {
	case attendance.StatusPresent, attendance.StatusLate, attendance.StatusIncomplete, attendance.StatusScheduled:
		return true
	}
	return false
}

// DutySummary is the duty-summary report view of a period. Its categories do not
// line up with SummaryCounts.
type DutySummary struct {
	RegularDuty        int
	OvertimeDuty       decimal.Decimal
	LeaveWithPay       int
	LeaveWithoutPay    int
	HolidayOff         int
	RegularHoliday     int
	SpecialHoliday     int
	SpecialHolidayDays decimal.Decimal
	NightDifferential  int
	LateMinutes        int
}

// TotalDuty is the day credit used for payroll.
func (s DutySummary) TotalDuty() decimal.Decimal {
	return decimal.NewFromInt(int64(s.RegularDuty + s.LeaveWithPay + s.HolidayOff + s.RegularHoliday)).
		Add(s.OvertimeDuty).
		Add(s.SpecialHolidayDays)
}

// Add merges two summaries, used to roll weeks up into a period.
func (s DutySummary) Add(o DutySummary) DutySummary {
	return DutySummary{
		RegularDuty:        s.RegularDuty + o.RegularDuty,
		OvertimeDuty:       s.OvertimeDuty.Add(o.OvertimeDuty),
		LeaveWithPay:       s.LeaveWithPay + o.LeaveWithPay,
		LeaveWithoutPay:    s.LeaveWithoutPay + o.LeaveWithoutPay,
		HolidayOff:         s.HolidayOff + o.HolidayOff,
		RegularHoliday:     s.RegularHoliday + o.RegularHoliday,
		SpecialHoliday:     s.SpecialHoliday + o.SpecialHoliday,
		SpecialHolidayDays: s.SpecialHolidayDays.Add(o.SpecialHolidayDays),
		NightDifferential:  s.NightDifferential + o.NightDifferential,
		LateMinutes:        s.LateMinutes + o.LateMinutes,
	}
}

// CalculateDutySummary aggregates the duty-summary counters. Absent records are
// skipped before any counting.
func CalculateDutySummary(records []attendance.AttendanceRecord) DutySummary {
	summary := DutySummary{OvertimeDuty: decimal.Zero, SpecialHolidayDays: decimal.Zero}

	for _, r := range records {
		if r.Status == attendance.StatusAbsent {
			continue
		}

		switch r.ScheduleType {
		case attendance.ScheduleDuty:
			summary.RegularDuty++
			summary.OvertimeDuty = summary.OvertimeDuty.Add(OvertimeDays(r.Shift))
			if r.Shift != nil && r.Shift.NightDifferential() {
				summary.NightDifferential++
			}

			switch ClassifyHoliday(r.Holiday) {
			case HolidayRegular:
				summary.RegularHoliday++
			case HolidaySpecial:
				summary.SpecialHoliday++
				summary.SpecialHolidayDays = summary.SpecialHolidayDays.Add(r.Holiday.PayMultiplier.Sub(one))
			}
		case attendance.ScheduleLeave:
			if r.IsCompensatoryTimeOff() || (r.Leave != nil && r.Leave.IsPaid) {
				summary.LeaveWithPay++
			} else {
				summary.LeaveWithoutPay++
			}
		case attendance.ScheduleHolidayOff:
			summary.HolidayOff++
		}

		summary.LateMinutes += LateMinutes(r)
	}

	return summary
}

// EmployeeRecords is one employee's records in first-seen order.
type EmployeeRecords struct {
	EmployeeID   string
	EmployeeName string
	Records      []attendance.AttendanceRecord
}

// GroupByEmployee groups records by employee id, preserving the order in which
// employees first appear. Records without an employee id are dropped with a warning.
func GroupByEmployee(ctx context.Context, records []attendance.AttendanceRecord) []EmployeeRecords {
	index := make(map[string]int)
	var groups []EmployeeRecords

	for _, r := range records {
		if r.EmployeeID == "" {
			slog.WarnContext(ctx, "Dropping attendance record without employee id",
				"date", r.DateKey(),
				"schedule_id", r.ScheduleID,
				"error", attendance.ErrEmployeeIDMissing,
			)
			continue
		}

		i, ok := index[r.EmployeeID]
		if !ok {
			i = len(groups)
			index[r.EmployeeID] = i
			groups = append(groups, EmployeeRecords{EmployeeID: r.EmployeeID, EmployeeName: r.EmployeeName})
		}
		if groups[i].EmployeeName == "" {
			groups[i].EmployeeName = r.EmployeeName
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	return groups
}

// Week is a Sunday-to-Saturday calendar week of records.
type Week struct {
	Start   time.Time
	End     time.Time
	Records []attendance.AttendanceRecord
}

// WeekStart returns local midnight of the Sunday on or before t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// GroupByWeek buckets records into calendar weeks ordered by start date. Records
// inside a week are ordered by date.
func GroupByWeek(records []attendance.AttendanceRecord, loc *time.Location) []Week {
	buckets := make(map[string]*Week)
	for _, r := range records {
		start := WeekStart(r.Date, loc)
		key := start.Format(attendance.DateLayout)
		w, ok := buckets[key]
		if !ok {
			w = &Week{Start: start, End: start.AddDate(0, 0, 6)}
			buckets[key] = w
		}
		w.Records = append(w.Records, r)
	}

	weeks := make([]Week, 0, len(buckets))
	for _, w := range buckets {
		sort.SliceStable(w.Records, func(i, j int) bool {
			return w.Records[i].Date.Before(w.Records[j].Date)
		})
		weeks = append(weeks, *w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Start.Before(weeks[j].Start)
	})
	return weeks
}
