package clock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// IdleConfig contains options for IdleWatcher.
type IdleConfig struct {
	Enabled       bool
	PauseAfter    time.Duration
	CheckInterval time.Duration
	// Unsupported is matched with errors.Is to stop polling permanently.
	Unsupported error
}

// IdleWatcher pauses a running clock once the user has been away long enough.
type IdleWatcher struct {
	mu      sync.Mutex
	clock   *Clock
	checker IdleChecker
	config  IdleConfig
	onPause func(idle time.Duration)
	onError func(err error)
}

// NewIdleWatcher creates a watcher for clock.
func NewIdleWatcher(clock *Clock, checker IdleChecker, config IdleConfig) *IdleWatcher {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 5 * time.Second
	}
	return &IdleWatcher{
		clock:   clock,
		checker: checker,
		config:  config,
	}
}

// SetHandlers sets the callbacks fired after an idle pause or a failed check.
func (watcher *IdleWatcher) SetHandlers(onPause func(time.Duration), onError func(error)) {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	watcher.onPause = onPause
	watcher.onError = onError
}

// UpdateConfig replaces the enable flag and threshold.
func (watcher *IdleWatcher) UpdateConfig(enabled bool, pauseAfter time.Duration) {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	watcher.config.Enabled = enabled
	if pauseAfter > 0 {
		watcher.config.PauseAfter = pauseAfter
	}
}

// Run polls the idle checker until ctx is cancelled.
func (watcher *IdleWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(watcher.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			watcher.Check()
		}
	}
}

// Check runs a single idle poll and reports whether it paused the clock.
func (watcher *IdleWatcher) Check() bool {
	watcher.mu.Lock()
	config := watcher.config
	onPause := watcher.onPause
	onError := watcher.onError
	watcher.mu.Unlock()

	if !config.Enabled || watcher.checker == nil || !watcher.clock.State().Running {
		return false
	}

	idle, err := watcher.checker.IdleDuration()
	if err != nil {
		if config.Unsupported != nil && errors.Is(err, config.Unsupported) {
			watcher.mu.Lock()
			watcher.config.Enabled = false
			watcher.mu.Unlock()
		}
		if onError != nil {
			onError(err)
		}
		return false
	}
	if idle < config.PauseAfter {
		return false
	}
	if !watcher.clock.Pause() {
		return false
	}
	if onPause != nil {
		onPause(idle)
	}
	return true
}
