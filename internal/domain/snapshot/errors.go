package snapshot

import "errors"

var (
	ErrSnapshotStoreDisabled = errors.New("snapshot store is not configured")
	ErrSyncInProgress        = errors.New("a snapshot sync is already running")
)
