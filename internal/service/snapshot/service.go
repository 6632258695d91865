package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/snapshot"
	"github.com/google/uuid"
)

type SnapshotServiceImpl struct {
	source        attendance.AttendanceRepository
	store         attendance.SnapshotRepository
	lookbackDays  int
	retentionDays int
	running       atomic.Bool
	now           func() time.Time
}

// NewSnapshotService creates the snapshot service. store may be nil when the
// database is disabled; every operation then fails with ErrSnapshotStoreDisabled.
func NewSnapshotService(source attendance.AttendanceRepository, store attendance.SnapshotRepository, lookbackDays, retentionDays int) snapshot.SnapshotService {
	return &SnapshotServiceImpl{
		source:        source,
		store:         store,
		lookbackDays:  lookbackDays,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Sync copies the requested period from the HRIS API into the snapshot store
func (s *SnapshotServiceImpl) Sync(ctx context.Context, req snapshot.SyncRequest) (snapshot.SyncResult, error) {
	if err := req.Validate(); err != nil {
		return snapshot.SyncResult{}, err
	}
	if s.store == nil {
		return snapshot.SyncResult{}, snapshot.ErrSnapshotStoreDisabled
	}
	if !s.running.CompareAndSwap(false, true) {
		return snapshot.SyncResult{}, snapshot.ErrSyncInProgress
	}
	defer s.running.Store(false)

	result := snapshot.SyncResult{RunID: uuid.NewString(), PeriodStart: req.StartDate, PeriodEnd: req.EndDate}
	if err := s.syncWindow(ctx, &result, req.StartDate, req.EndDate); err != nil {
		return snapshot.SyncResult{}, err
	}
	return s.finish(ctx, result), nil
}

// SyncRecent syncs the trailing lookback window ending today, split into
// windows no longer than attendance.MaxPeriodDays.
func (s *SnapshotServiceImpl) SyncRecent(ctx context.Context) (snapshot.SyncResult, error) {
	if s.store == nil {
		return snapshot.SyncResult{}, snapshot.ErrSnapshotStoreDisabled
	}
	if !s.running.CompareAndSwap(false, true) {
		return snapshot.SyncResult{}, snapshot.ErrSyncInProgress
	}
	defer s.running.Store(false)

	end := s.today()
	start := end.AddDate(0, 0, -(s.lookbackDays - 1))

	result := snapshot.SyncResult{
		RunID:       uuid.NewString(),
		PeriodStart: start.Format(attendance.DateLayout),
		PeriodEnd:   end.Format(attendance.DateLayout),
	}

	for from := start; !from.After(end); from = from.AddDate(0, 0, attendance.MaxPeriodDays) {
		to := from.AddDate(0, 0, attendance.MaxPeriodDays-1)
		if to.After(end) {
			to = end
		}
		if err := s.syncWindow(ctx, &result, from.Format(attendance.DateLayout), to.Format(attendance.DateLayout)); err != nil {
			return snapshot.SyncResult{}, err
		}
	}
	return s.finish(ctx, result), nil
}

// Prune deletes snapshots older than the retention window
func (s *SnapshotServiceImpl) Prune(ctx context.Context) (snapshot.PruneResult, error) {
	if s.store == nil {
		return snapshot.PruneResult{}, snapshot.ErrSnapshotStoreDisabled
	}

	cutoff := s.today().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return snapshot.PruneResult{}, err
	}

	slog.InfoContext(ctx, "Pruned attendance snapshots", "cutoff", cutoff.Format(attendance.DateLayout), "deleted", deleted)
	return snapshot.PruneResult{Cutoff: cutoff.Format(attendance.DateLayout), Deleted: deleted}, nil
}

func (s *SnapshotServiceImpl) syncWindow(ctx context.Context, result *snapshot.SyncResult, start, end string) error {
	records, err := s.source.ListByPeriod(ctx, attendance.AttendanceFilter{StartDate: start, EndDate: end})
	if err != nil {
		return fmt.Errorf("failed to fetch attendance for %s to %s: %w", start, end, err)
	}

	for _, r := range records {
		if r.EmployeeID == "" {
			result.Skipped++
		}
	}

	stored, err := s.store.UpsertMany(ctx, records, s.now())
	if err != nil {
		return fmt.Errorf("failed to store attendance snapshots: %w", err)
	}

	result.Fetched += len(records)
	result.Stored += stored
	return nil
}

func (s *SnapshotServiceImpl) finish(ctx context.Context, result snapshot.SyncResult) snapshot.SyncResult {
	result.FinishedAt = s.now().In(attendance.Location).Format(time.RFC3339)
	if result.Skipped > 0 {
		slog.WarnContext(ctx, "Skipped attendance records without employee id",
			"run_id", result.RunID,
			"skipped", result.Skipped,
		)
	}
	slog.InfoContext(ctx, "Attendance snapshot sync completed",
		"run_id", result.RunID,
		"period_start", result.PeriodStart,
		"period_end", result.PeriodEnd,
		"fetched", result.Fetched,
		"stored", result.Stored,
	)
	return result
}

func (s *SnapshotServiceImpl) today() time.Time {
	now := s.now().In(attendance.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, attendance.Location)
}
