package persistence

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"academy/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRecorder struct {
	mu     sync.Mutex
	states []bool
}

func (r *changeRecorder) record(available bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, available)
}

func (r *changeRecorder) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]bool(nil), r.states...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMonitor_StartsAvailableWhenStoreAnswers(t *testing.T) {
	store := memory.NewStore()
	recorder := &changeRecorder{}
	monitor := NewMonitor(store, time.Hour, discardLogger(), recorder.record)

	monitor.Start(context.Background())
	defer monitor.Stop()

	assert.True(t, monitor.IsAvailable())
	assert.Equal(t, []bool{true}, recorder.snapshot())
}

func TestMonitor_StartsUnavailableWhenStoreIsDown(t *testing.T) {
	store := memory.NewStore()
	store.SetDown(true)
	recorder := &changeRecorder{}
	monitor := NewMonitor(store, time.Hour, discardLogger(), recorder.record)

	monitor.Start(context.Background())
	defer monitor.Stop()

	assert.False(t, monitor.IsAvailable())
	assert.Equal(t, []bool{false}, recorder.snapshot())
}

func TestMonitor_TracksOutageAndRecovery(t *testing.T) {
	store := memory.NewStore()
	monitor := NewMonitor(store, 10*time.Millisecond, discardLogger(), nil)

	monitor.Start(context.Background())
	defer monitor.Stop()
	require.True(t, monitor.IsAvailable())

	store.SetDown(true)
	assert.Eventually(t, func() bool { return !monitor.IsAvailable() }, time.Second, 5*time.Millisecond)

	store.SetDown(false)
	assert.Eventually(t, monitor.IsAvailable, time.Second, 5*time.Millisecond)
}

func TestMonitor_SetAvailableOnlyReportsTransitions(t *testing.T) {
	recorder := &changeRecorder{}
	monitor := NewMonitor(memory.NewStore(), time.Hour, discardLogger(), recorder.record)

	monitor.SetAvailable(true)
	monitor.SetAvailable(true)
	monitor.SetAvailable(false)
	monitor.SetAvailable(false)

	assert.Equal(t, []bool{true, false}, recorder.snapshot())
}

func TestMonitor_StopWithoutStart(t *testing.T) {
	monitor := NewMonitor(memory.NewStore(), time.Hour, discardLogger(), nil)

	assert.NotPanics(t, monitor.Stop)
}
