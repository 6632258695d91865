// Package export renders duty summary reports as printable files.
package export

import (
	_ "embed"
	"strconv"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/report"
)

// PrintStylesheet is served to the web client for printing report tables.
//
//go:embed static/print.css
var PrintStylesheet []byte

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

var summaryHeaders = []string{
	"Week",
	"Regular Duty",
	"Overtime",
	"Leave w/ Pay",
	"Leave w/o Pay",
	"Holiday Off",
	"Regular Holiday",
	"Special Holiday",
	"Special Holiday Days",
	"NOC",
	"Late (min)",
	"Total Duty",
}

// summaryRow flattens a duty summary in header order, after the label column.
func summaryRow(s report.DutySummary) []string {
	return []string{
		strconv.Itoa(s.RegularDuty),
		s.OvertimeDuty,
		strconv.Itoa(s.LeaveWithPay),
		strconv.Itoa(s.LeaveWithoutPay),
		strconv.Itoa(s.HolidayOff),
		strconv.Itoa(s.RegularHoliday),
		strconv.Itoa(s.SpecialHoliday),
		s.SpecialHolidayDays,
		strconv.Itoa(s.NightDifferential),
		strconv.Itoa(s.LateMinutes),
		s.TotalDuty,
	}
}

func weekLabel(w report.WeeklyDutySummary) string {
	return w.WeekStart + " to " + w.WeekEnd
}
