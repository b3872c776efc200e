package speech

import (
	"context"
	"os/exec"
)

// Fixed delivery parameters for every navigation prompt.
const (
	DefaultRate     = 1.0
	DefaultPitch    = 1.0
	DefaultVolume   = 1.0
	DefaultLanguage = "en-US"
)

// Utterance is one spoken prompt with its delivery parameters.
type Utterance struct {
	Text     string
	Rate     float64
	Pitch    float64
	Volume   float64
	Language string
}

// Synthesizer turns an utterance into audio. Speak blocks until playback
// completes or ctx is cancelled; implementations return ctx.Err() when
// interrupted so the announcer can tell cancellation from synthesis failure.
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance) error
}

// Null is the degraded synthesizer used when no speech capability exists.
// Every utterance completes immediately and successfully.
type Null struct{}

func (Null) Speak(context.Context, Utterance) error { return nil }

// Command speaks by running an external synthesizer program (espeak, say,
// spd-say) with the utterance text as the final argument.
type Command struct {
	Path string
	Args []string
}

func (c *Command) Speak(ctx context.Context, u Utterance) error {
	if c == nil || c.Path == "" {
		return nil
	}
	args := append(append([]string(nil), c.Args...), u.Text)
	err := exec.CommandContext(ctx, c.Path, args...).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
