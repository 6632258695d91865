package hrisapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
)

// ListByPeriod fetches attendance records for the filter's period.
func (c *Client) ListByPeriod(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, error) {
	query := url.Values{}
	query.Set("start_date", filter.StartDate)
	query.Set("end_date", filter.EndDate)
	if filter.EmployeeID != "" {
		query.Set("employee_id", filter.EmployeeID)
	}
	if filter.DepartmentID != "" {
		query.Set("department_id", filter.DepartmentID)
	}
	if filter.ScheduleID != "" {
		query.Set("schedule_id", filter.ScheduleID)
	}

	var body json.RawMessage
	if err := c.get(ctx, "/attendance", query, &body); err != nil {
		return nil, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	records, err := attendance.DecodeRecords(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}

	// Only the period is enforced here; upstream may omit department and schedule ids
	period := attendance.AttendanceFilter{StartDate: filter.StartDate, EndDate: filter.EndDate}
	inPeriod := records[:0]
	for _, r := range records {
		if !period.Contains(r) {
			slog.WarnContext(ctx, "Dropping attendance record outside the requested period",
				"employee_id", r.EmployeeID,
				"date", r.DateKey(),
			)
			continue
		}
		inPeriod = append(inPeriod, r)
	}
	return inPeriod, nil
}

var _ attendance.AttendanceRepository = (*Client)(nil)
