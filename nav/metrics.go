package nav

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fixesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfinders_fixes_processed_total",
		Help: "Position fixes processed by the navigation engine.",
	})
	stepsAdvanced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfinders_steps_advanced_total",
		Help: "Route step advancements, including manual skips.",
	})
	announcementsSpoken = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfinders_announcements_spoken_total",
		Help: "Spoken instructions delivered without synthesis failure.",
	})
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfinders_sessions_started_total",
		Help: "Navigation sessions started.",
	})
	sessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfinders_sessions_ended_total",
		Help: "Navigation sessions ended, by outcome.",
	}, []string{"outcome"})
)

const (
	outcomeArrived  = "arrived"
	outcomeStopped  = "stopped"
	outcomeError    = "error"
	outcomeReplaced = "replaced"
)
