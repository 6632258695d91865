package attendance

import (
	"context"
	"time"
)

// AttendanceRepository lists attendance records for a reporting period.
type AttendanceRepository interface {
	// ListByPeriod returns records matching the filter, ordered by employee then date
	ListByPeriod(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, error)
}

// HolidayRepository supplies designated holidays keyed by YYYY-MM-DD.
type HolidayRepository interface {
	ListHolidays(ctx context.Context, start, end time.Time) (map[string]Holiday, error)
}

// SnapshotRepository persists fetched records so reports can be served without
// hitting the HRIS API on every request.
type SnapshotRepository interface {
	AttendanceRepository

	// UpsertMany stores records keyed by employee and date, returning how many were written.
	// Records without an employee id are skipped.
	UpsertMany(ctx context.Context, records []AttendanceRecord, fetchedAt time.Time) (int, error)

	// DeleteBefore removes snapshots dated before cutoff
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
