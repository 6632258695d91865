package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceSnapshotRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceSnapshotRepository(db *database.DB) attendance.SnapshotRepository {
	return &attendanceSnapshotRepositoryImpl{db: db}
}

// UpsertMany implements attendance.SnapshotRepository.
func (r *attendanceSnapshotRepositoryImpl) UpsertMany(ctx context.Context, records []attendance.AttendanceRecord, fetchedAt time.Time) (int, error) {
	query := `
		INSERT INTO attendance_snapshots (
			id, employee_id, employee_name, department_id, schedule_id, date, payload, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			department_id = EXCLUDED.department_id,
			schedule_id = EXCLUDED.schedule_id,
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at
	`

	batch := &pgx.Batch{}
	for _, record := range records {
		if record.EmployeeID == "" {
			continue
		}
		payload, err := json.Marshal(record)
		if err != nil {
			return 0, fmt.Errorf("failed to encode snapshot for %s on %s: %w", record.EmployeeID, record.DateKey(), err)
		}
		batch.Queue(query,
			uuid.New(),
			record.EmployeeID,
			record.EmployeeName,
			record.DepartmentID,
			record.ScheduleID,
			record.DateKey(),
			payload,
			fetchedAt,
		)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	stored := 0
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return fmt.Errorf("failed to upsert snapshot: %w", err)
			}
			stored += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

// ListByPeriod implements attendance.AttendanceRepository.
func (r *attendanceSnapshotRepositoryImpl) ListByPeriod(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payload
		FROM attendance_snapshots
		WHERE date >= $1::date AND date <= $2::date
			AND ($3 = '' OR employee_id = $3)
			AND ($4 = '' OR department_id = $4)
			AND ($5 = '' OR schedule_id = $5)
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query,
		filter.StartDate,
		filter.EndDate,
		filter.EmployeeID,
		filter.DepartmentID,
		filter.ScheduleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance snapshots: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan attendance snapshot: %w", err)
		}

		var record attendance.AttendanceRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("failed to decode attendance snapshot: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance snapshots: %w", err)
	}

	return records, nil
}

// DeleteBefore implements attendance.SnapshotRepository.
func (r *attendanceSnapshotRepositoryImpl) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_snapshots WHERE date < $1::date`, cutoff.Format(attendance.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune attendance snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}
