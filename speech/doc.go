// Package speech serializes spoken navigation prompts.
//
// An Announcer guarantees at most one utterance is in flight: speaking a new
// prompt cancels whatever is still playing. Cancellation is user intent, not
// failure, so a cancelled utterance resolves as success. When no synthesizer
// is available the announcer degrades to a silent no-op.
package speech
