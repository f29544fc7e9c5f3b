package persistence

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"academy/internal/domain/repository"
)

const defaultCheckInterval = 5 * time.Second

// Monitor owns the store availability flag. It pings the store on a fixed interval and
// lets the driver report connection changes between pings through SetAvailable.
type Monitor struct {
	checker  repository.HealthChecker
	interval time.Duration
	logger   *slog.Logger
	onChange func(available bool)

	available atomic.Bool
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewMonitor builds a monitor that starts out unavailable until the first successful ping.
func NewMonitor(checker repository.HealthChecker, interval time.Duration, logger *slog.Logger, onChange func(bool)) *Monitor {
	if interval <= 0 {
		interval = defaultCheckInterval
	}

	return &Monitor{
		checker:  checker,
		interval: interval,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// IsAvailable implements service.StoreAvailability.
func (m *Monitor) IsAvailable() bool {
	return m.available.Load()
}

// SetAvailable records a state reported outside the ping loop and logs transitions.
func (m *Monitor) SetAvailable(available bool) {
	if m.available.Swap(available) == available {
		return
	}

	if available {
		m.logger.Info("Store connection established")
	} else {
		m.logger.Warn("Store connection lost, API requests will be rejected until it returns")
	}

	if m.onChange != nil {
		m.onChange(available)
	}
}

// Check pings the store once and updates the flag.
func (m *Monitor) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	err := m.checker.Ping(pingCtx)
	if err != nil {
		m.logger.Debug("Store ping failed", slog.Any("error", err))
	}
	m.SetAvailable(err == nil)

	return err == nil
}

// Start runs the first check synchronously and keeps checking in the background until Stop.
// An unreachable store at start-up is not an error; the loop keeps retrying.
func (m *Monitor) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel

	available := m.Check(loopCtx)
	// The first check never reports a false-to-false transition, so publish the initial state here.
	if !available && m.onChange != nil {
		m.onChange(false)
	}

	go m.loop(loopCtx)
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Stop ends the background loop and waits for it to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		if m.cancel == nil {
			return
		}
		m.cancel()
		<-m.done
	})
}
