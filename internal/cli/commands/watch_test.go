package commands

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hoshi/internal/testutil"
)

func TestWatchFiles_RecompilesOnWrite(t *testing.T) {
	cmdCtx, _ := newSessionContext(t)
	path := testutil.WriteFile(t, t.TempDir(), "q.hoshi", "FROM users")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	var last atomic.Value
	fn := func(_ context.Context, targets []string) error {
		last.Store(targets)
		runs.Add(1)
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- watchFiles(ctx, cmdCtx, []string{path}, fn) }()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("FROM orders"), 0o600))
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{path}, last.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFiles did not return after cancel")
	}
}

func TestWatchFiles_WaitsForInFlightRun(t *testing.T) {
	cmdCtx, _ := newSessionContext(t)
	path := testutil.WriteFile(t, t.TempDir(), "q.hoshi", "FROM users")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	fn := func(_ context.Context, _ []string) error {
		if runs.Add(1) == 2 {
			started <- struct{}{}
			<-release
		}
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- watchFiles(ctx, cmdCtx, []string{path}, fn) }()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("FROM orders"), 0o600))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("change did not trigger a run")
	}

	cancel()
	assert.Never(t, func() bool { return len(done) > 0 }, 200*time.Millisecond, 10*time.Millisecond,
		"watchFiles returned while a run was still writing")

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFiles did not return after the run finished")
	}

	// Timers that fire after return must not start another run.
	time.Sleep(2 * watchDebounce)
	assert.Equal(t, int32(2), runs.Load())
}
