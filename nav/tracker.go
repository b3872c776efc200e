package nav

import (
	"sync"
	"time"

	"github.com/mattw23n/wayfinders/speech"
)

// Fix is a single reported device position with its accuracy radius.
type Fix struct {
	Lat            float64
	Lon            float64
	AccuracyMeters float64
}

// WatchOptions configure a location subscription.
type WatchOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultWatchOptions are the fixed settings for navigation tracking:
// high accuracy, 10 second per-fix timeout, no cached fixes.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{HighAccuracy: true, Timeout: 10 * time.Second}
}

// CancelFunc tears down an active location subscription.
type CancelFunc func()

// Source is the platform location-streaming capability. Watch begins
// continuous updates, delivering each fix or failure to the callbacks, and
// returns a cancel for the subscription.
type Source interface {
	Watch(opts WatchOptions, onFix func(Fix), onError func(WatchError)) (CancelFunc, error)
}

// Tracker bridges a Source to engine-consumable callbacks and owns the
// subscription lifecycle. It performs no retries: a fix error is reported
// upward and the engine decides whether the session ends.
type Tracker struct {
	source    Source
	announcer *speech.Announcer

	mu     sync.Mutex
	cancel CancelFunc
}

// NewTracker wraps a location source. The announcer may be nil; when present,
// stopping the tracker also cancels any in-flight speech.
func NewTracker(source Source, announcer *speech.Announcer) *Tracker {
	return &Tracker{source: source, announcer: announcer}
}

// Start begins continuous high-accuracy updates. When no location capability
// exists, onError is invoked synchronously with CAPABILITY_UNAVAILABLE and no
// subscription is made.
func (t *Tracker) Start(onFix func(Fix), onError func(WatchError)) {
	if onError == nil {
		onError = func(WatchError) {}
	}
	if t.source == nil {
		onError(WatchError{Code: CapabilityUnavailable, Message: CapabilityUnavailable.Message()})
		return
	}

	t.Stop()

	cancel, err := t.source.Watch(DefaultWatchOptions(), onFix, onError)
	if err != nil {
		onError(WatchError{Code: PositionUnavailable, Message: PositionUnavailable.Message()})
		return
	}

	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()
}

// Stop cancels the active subscription and any in-flight speech. Safe to
// call when not started.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.announcer.Cancel()
}
