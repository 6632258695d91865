package snapshot

import "context"

// SnapshotService copies attendance from the HRIS API into the local snapshot store.
type SnapshotService interface {
	// Sync fetches the requested period upstream and upserts it
	Sync(ctx context.Context, req SyncRequest) (SyncResult, error)

	// SyncRecent syncs the trailing lookback window ending today
	SyncRecent(ctx context.Context) (SyncResult, error)

	// Prune deletes snapshots older than the retention window
	Prune(ctx context.Context) (PruneResult, error)
}
