package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := attendance.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAttendanceSnapshotRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewAttendanceSnapshotRepository(db)
	ctx := context.Background()

	records := []attendance.AttendanceRecord{
		{
			EmployeeID:   "emp-1",
			EmployeeName: "Santos, Maria",
			DepartmentID: "er",
			Date:         mustDate(t, "2024-03-04"),
			ScheduleType: attendance.ScheduleDuty,
			Status:       attendance.StatusPresent,
			Shift:        attendance.ShiftingShift{Start: 8 * 60, End: 20 * 60},
			Holiday:      &attendance.Holiday{Name: "EDSA", Type: "Special", PayMultiplier: decimal.RequireFromString("1.3")},
			LateMinutes:  4,
		},
		{EmployeeID: "emp-1", DepartmentID: "er", Date: mustDate(t, "2024-03-05"), ScheduleType: attendance.ScheduleOff},
		{EmployeeID: "emp-2", DepartmentID: "icu", Date: mustDate(t, "2024-03-04"), ScheduleType: attendance.ScheduleDuty},
		{EmployeeID: "", Date: mustDate(t, "2024-03-04")},
	}

	t.Run("upsert skips records without employee", func(t *testing.T) {
		stored, err := repo.UpsertMany(ctx, records, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 3, stored)
	})

	t.Run("upsert replaces existing day", func(t *testing.T) {
		updated := records[1]
		updated.ScheduleType = attendance.ScheduleLeave
		updated.Leave = &attendance.LeaveDetail{Name: "Vacation", IsPaid: true}

		stored, err := repo.UpsertMany(ctx, []attendance.AttendanceRecord{updated}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 1, stored)
	})

	t.Run("list by department", func(t *testing.T) {
		got, err := repo.ListByPeriod(ctx, attendance.AttendanceFilter{
			DepartmentID: "er",
			StartDate:    "2024-03-01",
			EndDate:      "2024-03-31",
		})
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "2024-03-04", got[0].DateKey())
		assert.Equal(t, records[0].Shift, got[0].Shift)
		assert.True(t, got[0].Holiday.PayMultiplier.Equal(decimal.RequireFromString("1.3")))
		assert.Equal(t, attendance.ScheduleLeave, got[1].ScheduleType)
	})

	t.Run("list respects period bounds", func(t *testing.T) {
		got, err := repo.ListByPeriod(ctx, attendance.AttendanceFilter{StartDate: "2024-03-05", EndDate: "2024-03-05"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "emp-1", got[0].EmployeeID)
	})

	t.Run("delete before cutoff", func(t *testing.T) {
		deleted, err := repo.DeleteBefore(ctx, mustDate(t, "2024-03-05"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		got, err := repo.ListByPeriod(ctx, attendance.AttendanceFilter{StartDate: "2024-03-01", EndDate: "2024-03-31"})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
