package cron

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/snapshot"
)

const (
	JobSyncSnapshots  = "sync_attendance_snapshots"
	JobPruneSnapshots = "prune_attendance_snapshots"
)

// SnapshotJobs keeps the local attendance snapshot store current
type SnapshotJobs struct {
	snapshotService snapshot.SnapshotService
	syncInterval    time.Duration
}

func NewSnapshotJobs(snapshotService snapshot.SnapshotService, syncInterval time.Duration) *SnapshotJobs {
	return &SnapshotJobs{
		snapshotService: snapshotService,
		syncInterval:    syncInterval,
	}
}

// RegisterJobs registers the snapshot sync and prune jobs
func (j *SnapshotJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobSyncSnapshots, j.syncInterval, j.SyncSnapshots)

	// Pruning is cheap, daily is enough
	scheduler.AddJob(JobPruneSnapshots, 24*time.Hour, j.PruneSnapshots)
}

// SyncSnapshots pulls the lookback window from the HRIS API. A manual sync
// already in progress is not an error.
func (j *SnapshotJobs) SyncSnapshots(ctx context.Context) error {
	_, err := j.snapshotService.SyncRecent(ctx)
	if errors.Is(err, snapshot.ErrSyncInProgress) {
		return nil
	}
	return err
}

// PruneSnapshots deletes snapshots past the retention window
func (j *SnapshotJobs) PruneSnapshots(ctx context.Context) error {
	_, err := j.snapshotService.Prune(ctx)
	return err
}
