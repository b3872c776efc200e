package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Announcer serializes spoken output so at most one utterance plays at a
// time. Safe for use from multiple goroutines.
type Announcer struct {
	synth Synthesizer

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewAnnouncer wraps a synthesizer. A nil synthesizer yields an announcer
// whose prompts all complete silently.
func NewAnnouncer(s Synthesizer) *Announcer {
	return &Announcer{synth: s}
}

// Speak cancels any playing utterance, then speaks text with the fixed
// delivery parameters and blocks until it completes. A cancelled utterance
// returns nil; only genuine synthesis failures surface as errors.
func (a *Announcer) Speak(ctx context.Context, text string) error {
	if a == nil || a.synth == nil {
		return nil
	}

	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	sctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	err := a.synth.Speak(sctx, Utterance{
		Text:     text,
		Rate:     DefaultRate,
		Pitch:    DefaultPitch,
		Volume:   DefaultVolume,
		Language: DefaultLanguage,
	})

	// Release our own context; only clear the shared handle if a newer
	// utterance has not replaced it.
	cancel()
	a.mu.Lock()
	if a.gen == gen {
		a.cancel = nil
	}
	a.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("speech synthesis: %w", err)
	}
	return nil
}

// Cancel stops any in-progress utterance immediately. Safe to call when
// nothing is playing.
func (a *Announcer) Cancel() {
	if a == nil {
		return
	}
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()
}
