package nav

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/mattw23n/wayfinders/geo"
	"github.com/mattw23n/wayfinders/route"
	"github.com/mattw23n/wayfinders/speech"
)

// Advancement thresholds in meters. Fixed constants, not per-session
// configuration.
const (
	TriggerDistanceMeters = 30.0
	ArrivalDistanceMeters = 10.0
)

// Engine holds the route and the live navigation session, advancing the step
// pointer as position fixes arrive and sequencing spoken instructions.
// All methods are safe for concurrent use; callbacks and commands are
// serialized through one mutex so a fix can never observe a half-mutated
// session.
type Engine struct {
	tracker   *Tracker
	announcer *speech.Announcer

	mu      sync.Mutex
	route   *route.Route
	session *session
	lastErr string
}

// session is the mutable state of one active navigation attempt. Owned
// exclusively by the engine; nil means IDLE.
type session struct {
	id        string
	stepIndex int
	announced bool
	position  *geo.Coordinate
	accuracy  *float64
	distance  *float64 // rounded meters to the active waypoint
}

// Snapshot is the read-only session view exposed to the presentation layer.
type Snapshot struct {
	SessionID              string          `json:"sessionId,omitempty"`
	Navigating             bool            `json:"isNavigating"`
	CurrentStepIndex       int             `json:"currentStepIndex"`
	CurrentStep            *route.Step     `json:"currentStep,omitempty"`
	NextStep               *route.Step     `json:"nextStep,omitempty"`
	TotalSteps             int             `json:"totalSteps"`
	DistanceToNextWaypoint *float64        `json:"distanceToNextWaypoint,omitempty"`
	Position               *geo.Coordinate `json:"userPosition,omitempty"`
	AccuracyMeters         *float64        `json:"accuracy,omitempty"`
	Error                  string          `json:"error,omitempty"`
}

// NewEngine builds an engine around a tracker and an announcer. The
// announcer may be nil, in which case navigation runs silently.
func NewEngine(tracker *Tracker, announcer *speech.Announcer) *Engine {
	return &Engine{tracker: tracker, announcer: announcer}
}

// Start begins navigating r. A route without steps leaves the engine idle
// with the session error set and returns ErrNoSteps. Starting while a
// session is active discards the prior session.
func (e *Engine) Start(r *route.Route) error {
	e.mu.Lock()
	e.lastErr = ""
	if r.StepCount() == 0 {
		e.lastErr = msgNoSteps
		e.mu.Unlock()
		return ErrNoSteps
	}
	if e.session != nil {
		sessionsEnded.WithLabelValues(outcomeReplaced).Inc()
	}
	s := &session{id: uuid.NewString(), announced: true}
	e.route = r
	e.session = s
	e.mu.Unlock()

	sessionsStarted.Inc()
	log.Printf("navigation session %s started: %d steps, %.0f m", s.id, r.StepCount(), r.DistanceMeters)

	e.say("Starting navigation. " + r.Steps[0].Instruction)
	e.tracker.Start(e.handleFix, e.handleWatchError)

	// A Stop racing with startup leaves no session; drop the fresh
	// subscription instead of streaming into the void.
	e.mu.Lock()
	alive := e.session == s
	e.mu.Unlock()
	if !alive {
		e.tracker.Stop()
	}
	return nil
}

// Stop cancels tracking and in-flight speech, then resets to idle
// unconditionally.
func (e *Engine) Stop() {
	e.tracker.Stop()

	e.mu.Lock()
	if e.session != nil {
		sessionsEnded.WithLabelValues(outcomeStopped).Inc()
		log.Printf("navigation session %s stopped", e.session.id)
	}
	e.session = nil
	e.lastErr = ""
	e.mu.Unlock()
}

// SkipToNextStep advances the step pointer by one and announces the new
// step's instruction regardless of distance. No-op on the last step or when
// idle.
func (e *Engine) SkipToNextStep() {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.stepIndex >= e.route.StepCount()-1 {
		return
	}
	s.stepIndex++
	s.announced = true
	stepsAdvanced.Inc()
	e.refreshDistanceLocked(s)
	e.say(e.route.Steps[s.stepIndex].Instruction)
}

// RepeatCurrentInstruction re-announces the current step without altering
// any state.
func (e *Engine) RepeatCurrentInstruction() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return
	}
	e.say(e.route.Steps[e.session.stepIndex].Instruction)
}

// Snapshot returns the current session view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{Error: e.lastErr}
	s := e.session
	if s == nil {
		return snap
	}
	snap.SessionID = s.id
	snap.Navigating = true
	snap.CurrentStepIndex = s.stepIndex
	snap.TotalSteps = e.route.StepCount()
	snap.CurrentStep = e.route.StepAt(s.stepIndex)
	snap.NextStep = e.route.StepAt(s.stepIndex + 1)
	if s.position != nil {
		p := *s.position
		snap.Position = &p
	}
	if s.accuracy != nil {
		a := *s.accuracy
		snap.AccuracyMeters = &a
	}
	if s.distance != nil {
		d := *s.distance
		snap.DistanceToNextWaypoint = &d
	}
	return snap
}

// handleFix is the position callback. Each fix triggers at most one
// step-advancement decision; the whole decision runs under the session lock
// so there is no suspension point inside it.
func (e *Engine) handleFix(f Fix) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		// Fix already in flight when the session was torn down.
		return
	}
	fixesProcessed.Inc()

	pos := geo.Coordinate{Lon: f.Lon, Lat: f.Lat}
	acc := f.AccuracyMeters

	wp, ok := e.route.WaypointForStep(s.stepIndex)
	if !ok {
		// Unresolvable waypoint: never alter step progress, only track the
		// raw position.
		s.position = &pos
		s.accuracy = &acc
		return
	}

	d := geo.HaversineMeters(pos, wp)
	switch {
	case d < ArrivalDistanceMeters:
		if s.stepIndex >= e.route.StepCount()-1 {
			e.say("You have arrived at your destination")
			log.Printf("navigation session %s arrived", s.id)
			sessionsEnded.WithLabelValues(outcomeArrived).Inc()
			e.tracker.Stop()
			e.session = nil
			return
		}
		s.stepIndex++
		s.announced = true
		stepsAdvanced.Inc()
		e.say(e.route.Steps[s.stepIndex].Instruction)
	case d < TriggerDistanceMeters && !s.announced:
		s.announced = true
		e.say(e.route.Steps[s.stepIndex].Instruction)
	}

	s.position = &pos
	s.accuracy = &acc
	e.refreshDistanceLocked(s)
}

// handleWatchError ends the session fail-stop and surfaces the mapped
// message. Recovery is user-initiated via Start.
func (e *Engine) handleWatchError(we WatchError) {
	e.tracker.Stop()

	e.mu.Lock()
	e.lastErr = we.Code.Message()
	if e.session != nil {
		log.Printf("navigation session %s ended: %s (%s)", e.session.id, we.Code, e.lastErr)
		sessionsEnded.WithLabelValues(outcomeError).Inc()
	}
	e.session = nil
	e.mu.Unlock()
}

// refreshDistanceLocked recomputes the rounded distance from the last known
// position to the active waypoint. Call with e.mu held.
func (e *Engine) refreshDistanceLocked(s *session) {
	if s.position == nil {
		return
	}
	wp, ok := e.route.WaypointForStep(s.stepIndex)
	if !ok {
		return
	}
	d := math.Round(geo.HaversineMeters(*s.position, wp))
	s.distance = &d
}

// say delivers one spoken prompt. Speech failures are non-fatal to
// navigation: they are logged and otherwise ignored.
func (e *Engine) say(text string) {
	if err := e.announcer.Speak(context.Background(), text); err != nil {
		log.Printf("speech: %v", err)
		return
	}
	announcementsSpoken.Inc()
}
