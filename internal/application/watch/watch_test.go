package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/data/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanCheck(ctx context.Context) (*model.Project, *model.Report, error) {
	return model.DefaultProject("x"), &model.Report{}, nil
}

func TestControllerDebouncesEvents(t *testing.T) {
	events := make(chan FileEvent, 8)
	var calls int32
	results := make(chan Result, 8)

	check := func(ctx context.Context) (*model.Project, *model.Report, error) {
		atomic.AddInt32(&calls, 1)
		return cleanCheck(ctx)
	}
	c := NewController(events, check, func(r Result) { results <- r }, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	initial := <-results
	assert.Equal(t, "initial", initial.Trigger)
	assert.True(t, initial.OK())

	for i := 0; i < 3; i++ {
		events <- FileEvent{Path: "project.yaml", Operation: "WRITE"}
	}

	select {
	case r := <-results:
		assert.Equal(t, "project.yaml", r.Trigger)
	case <-time.After(2 * time.Second):
		t.Fatal("no result after change")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, "project.yaml", last.Trigger)
}

func TestControllerStopsWhenEventsClose(t *testing.T) {
	events := make(chan FileEvent)
	c := NewController(events, cleanCheck, nil)
	close(events)
	assert.NoError(t, c.Run(context.Background()))
}

func TestControllerSnapshotsCleanResultsOnly(t *testing.T) {
	store, err := snapshot.NewStore(t.TempDir())
	require.NoError(t, err)

	failing := func(ctx context.Context) (*model.Project, *model.Report, error) {
		return nil, nil, errors.New("broken yaml")
	}
	events := make(chan FileEvent)
	close(events)

	c := NewController(events, failing, nil, WithSnapshot(store, "p.yaml"))
	require.NoError(t, c.Run(context.Background()))
	_, err = store.Load()
	assert.ErrorIs(t, err, snapshot.ErrNoSnapshot)

	events = make(chan FileEvent)
	close(events)
	c = NewController(events, cleanCheck, nil, WithSnapshot(store, "p.yaml"))
	require.NoError(t, c.Run(context.Background()))
	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "p.yaml", snap.Source)
}

func TestFileWatcherReportsTargetChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "project.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("name: a\n"), 0644))

	fw, err := NewFileWatcher([]string{target})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("name: b\n"), 0644))

	select {
	case ev := <-fw.Events():
		assert.Equal(t, target, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for watched file")
	}
}
