package report

import (
	"sort"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/report"
	"github.com/cmlabs-hris/hris-duty-report/internal/service/metrics"
)

func toEmployeeAttendance(group metrics.EmployeeRecords) report.EmployeeAttendance {
	records := byDate(group.Records)

	rows := make([]report.DailyRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, toDailyRow(r))
	}

	counts := metrics.Summarize(records)
	return report.EmployeeAttendance{
		EmployeeID:   group.EmployeeID,
		EmployeeName: group.EmployeeName,
		Summary: report.AttendanceSummary{
			Duty:             counts.Duty,
			HolidayDuty:      counts.HolidayDuty,
			HolidayOff:       counts.HolidayOff,
			Off:              counts.Off,
			Leave:            counts.Leave,
			Absent:           counts.Absent,
			TotalLateMinutes: counts.TotalLateMinutes,
			TotalPaidDays:    metrics.FormatDays(counts.TotalPaidDays),
		},
		DailyRows: rows,
	}
}

func toDailyRow(r attendance.AttendanceRecord) report.DailyRow {
	row := report.DailyRow{
		Date:          r.DateKey(),
		DayOfWeek:     r.Date.Weekday().String(),
		ScheduleType:  string(r.ScheduleType),
		Status:        string(r.Status),
		MorningIn:     toTimeLog(r.MorningIn),
		MorningOut:    toTimeLog(r.MorningOut),
		AfternoonIn:   toTimeLog(r.AfternoonIn),
		AfternoonOut:  toTimeLog(r.AfternoonOut),
		TimeIn:        toTimeLog(r.TimeIn),
		TimeOut:       toTimeLog(r.TimeOut),
		DayEquivalent: metrics.DayEquivalent(r).String(),
	}

	if shift := r.ActiveShift(); shift != nil {
		row.ShiftType = string(shift.Type())
		row.Shift = shift.Label()
	}

	if metrics.HasDutyObligation(r) {
		late := metrics.LateMinutes(r)
		row.LateMinutes = &late
	}

	if r.Leave != nil {
		row.LeaveName = r.Leave.Name
		row.LeaveCategory = string(metrics.CategorizeLeave(r.Leave))
		row.Compensatory = r.IsCompensatoryTimeOff()
	}

	if r.Holiday != nil {
		row.HolidayName = r.Holiday.Name
		row.HolidayType = r.Holiday.Type
	}

	return row
}

func toTimeLog(l *attendance.TimeLog) *report.TimeLog {
	if l == nil {
		return nil
	}
	return &report.TimeLog{Time: l.Time, Source: string(l.Source)}
}

func toEmployeeDutySummary(group metrics.EmployeeRecords) report.EmployeeDutySummary {
	weeks := metrics.GroupByWeek(group.Records, attendance.Location)

	var period metrics.DutySummary
	weekly := make([]report.WeeklyDutySummary, 0, len(weeks))
	for _, w := range weeks {
		summary := metrics.CalculateDutySummary(w.Records)
		period = period.Add(summary)
		weekly = append(weekly, report.WeeklyDutySummary{
			WeekStart: w.Start.Format(attendance.DateLayout),
			WeekEnd:   w.End.Format(attendance.DateLayout),
			Summary:   toDutySummary(summary),
		})
	}

	return report.EmployeeDutySummary{
		EmployeeID:   group.EmployeeID,
		EmployeeName: group.EmployeeName,
		Period:       toDutySummary(period),
		Weeks:        weekly,
	}
}

func toDutySummary(s metrics.DutySummary) report.DutySummary {
	return report.DutySummary{
		RegularDuty:        s.RegularDuty,
		OvertimeDuty:       metrics.FormatDays(s.OvertimeDuty),
		LeaveWithPay:       s.LeaveWithPay,
		LeaveWithoutPay:    s.LeaveWithoutPay,
		HolidayOff:         s.HolidayOff,
		RegularHoliday:     s.RegularHoliday,
		SpecialHoliday:     s.SpecialHoliday,
		SpecialHolidayDays: metrics.FormatDays(s.SpecialHolidayDays),
		NightDifferential:  s.NightDifferential,
		LateMinutes:        s.LateMinutes,
		TotalDuty:          metrics.FormatDays(s.TotalDuty()),
	}
}

// byDate returns the records ordered by date without touching the input.
func byDate(records []attendance.AttendanceRecord) []attendance.AttendanceRecord {
	sorted := make([]attendance.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
