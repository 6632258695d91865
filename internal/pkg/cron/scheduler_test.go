package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotService struct {
	syncErr  error
	syncs    atomic.Int32
	prunes   atomic.Int32
	pruneErr error
}

func (f *fakeSnapshotService) Sync(ctx context.Context, req snapshot.SyncRequest) (snapshot.SyncResult, error) {
	return snapshot.SyncResult{}, nil
}

func (f *fakeSnapshotService) SyncRecent(ctx context.Context) (snapshot.SyncResult, error) {
	f.syncs.Add(1)
	return snapshot.SyncResult{}, f.syncErr
}

func (f *fakeSnapshotService) Prune(ctx context.Context) (snapshot.PruneResult, error) {
	f.prunes.Add(1)
	return snapshot.PruneResult{}, f.pruneErr
}

func TestScheduler_StartRunsImmediately(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, time.Millisecond)
	s.Stop()
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("succeeds", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), runs.Load())
}

func TestSnapshotJobs(t *testing.T) {
	svc := &fakeSnapshotService{}
	s := NewScheduler()
	NewSnapshotJobs(svc, time.Hour).RegisterJobs(s)

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), svc.syncs.Load())
	assert.Equal(t, int32(1), svc.prunes.Load())

	t.Run("sync already running is not a failure", func(t *testing.T) {
		svc.syncErr = snapshot.ErrSyncInProgress
		assert.NoError(t, NewSnapshotJobs(svc, time.Hour).SyncSnapshots(context.Background()))
	})

	t.Run("prune errors surface", func(t *testing.T) {
		svc.pruneErr = snapshot.ErrSnapshotStoreDisabled
		assert.ErrorIs(t, NewSnapshotJobs(svc, time.Hour).PruneSnapshots(context.Background()), snapshot.ErrSnapshotStoreDisabled)
	})
}
