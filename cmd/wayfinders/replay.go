package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mattw23n/wayfinders/nav"
)

// replaySource feeds recorded fixes through the tracker at a fixed interval.
// This is CLI-specific logic for simulating a walk without a GPS device.
type replaySource struct {
	fixes    []nav.Fix
	interval time.Duration
}

// loadFixLog reads a JSON array of fixes from disk.
func loadFixLog(path string) ([]nav.Fix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fix log: %w", err)
	}
	var fixes []nav.Fix
	if err := json.Unmarshal(data, &fixes); err != nil {
		return nil, fmt.Errorf("decode fix log %s: %w", path, err)
	}
	return fixes, nil
}

// Watch replays the recorded fixes on a goroutine. Cancelling stops the
// replay; exhausting the log just stops delivering.
func (s *replaySource) Watch(_ nav.WatchOptions, onFix func(nav.Fix), _ func(nav.WatchError)) (nav.CancelFunc, error) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for _, f := range s.fixes {
			select {
			case <-done:
				return
			case <-ticker.C:
				onFix(f)
			}
		}
	}()
	return func() { close(done) }, nil
}
