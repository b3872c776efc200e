package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	lib "github.com/mattw23n/wayfinders"
	"github.com/mattw23n/wayfinders/config"
	"github.com/mattw23n/wayfinders/explain"
	"github.com/mattw23n/wayfinders/geo"
	"github.com/mattw23n/wayfinders/nav"
	"github.com/mattw23n/wayfinders/route"
	"github.com/mattw23n/wayfinders/routing"
	"github.com/mattw23n/wayfinders/speech"
	"github.com/mattw23n/wayfinders/venue"
)

func main() {
	mode := flag.String("mode", "serve", "serve|simulate")
	routeFile := flag.String("route", "", "route GeoJSON file for simulate mode")
	fixFile := flag.String("fixes", "", "recorded fix log (JSON array) for simulate mode")
	intervalMS := flag.Int("intervalMS", 1000, "fix replay interval in milliseconds")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		panic(err)
	}

	switch *mode {
	case "serve":
		serve()
	case "simulate":
		simulate(*routeFile, *fixFile, time.Duration(*intervalMS)*time.Millisecond)
	default:
		panic("unknown mode")
	}
}

func serve() {
	cfg := config.Config

	store := venue.NewStore()
	if cfg.Venues.VenuesPath != "" {
		if err := store.LoadVenues(cfg.Venues.VenuesPath); err != nil {
			panic(err)
		}
	}
	if cfg.Venues.ClassesPath != "" {
		if err := store.LoadClasses(cfg.Venues.ClassesPath); err != nil {
			panic(err)
		}
	}
	if cfg.Venues.Watch && cfg.Venues.VenuesPath != "" {
		if err := store.Watch(cfg.Venues.VenuesPath); err != nil {
			panic(err)
		}
	}

	directions := routing.NewClient(cfg.Routing.BaseURL, cfg.Routing.APIKey,
		cfg.Routing.Profile, time.Duration(cfg.Routing.TimeoutMS)*time.Millisecond)
	explainer := explain.New(cfg.Explain.BaseURL, cfg.Explain.APIKey, cfg.Explain.Model,
		time.Duration(cfg.Explain.TimeoutMS)*time.Millisecond)

	lib.StartServer(store, directions, explainer)
	lib.HandleGracefulShutdown()
}

func simulate(routeFile, fixFile string, interval time.Duration) {
	if routeFile == "" || fixFile == "" {
		panic("simulate mode requires -route and -fixes")
	}

	data, err := os.ReadFile(routeFile)
	if err != nil {
		panic(err)
	}
	r, err := route.ParseFirst(data)
	if err != nil {
		panic(err)
	}
	fixes, err := loadFixLog(fixFile)
	if err != nil {
		panic(err)
	}

	announcer := speech.NewAnnouncer(newSynth(config.Config.Speech))
	src := &replaySource{fixes: fixes, interval: interval}
	tracker := nav.NewTracker(src, announcer)
	engine := nav.NewEngine(tracker, announcer)

	if err := engine.Start(r); err != nil {
		panic(err)
	}

	for {
		time.Sleep(interval)
		snap := engine.Snapshot()
		printSnapshot(snap)
		if !snap.Navigating {
			return
		}
	}
}

func printSnapshot(snap nav.Snapshot) {
	if !snap.Navigating {
		if snap.Error != "" {
			fmt.Printf("navigation ended: %s\n", snap.Error)
		} else {
			fmt.Println("navigation ended")
		}
		return
	}
	distance := "unknown"
	if snap.DistanceToNextWaypoint != nil {
		distance = geo.PresentableDistance(*snap.DistanceToNextWaypoint)
	}
	step := ""
	if snap.CurrentStep != nil {
		step = snap.CurrentStep.Instruction
	}
	fmt.Printf("step %d/%d  %-40s  %s\n", snap.CurrentStepIndex+1, snap.TotalSteps, step, distance)
}

// newSynth selects the announcement backend: an external TTS command when
// configured, otherwise console output.
func newSynth(cfg config.SpeechConfig) speech.Synthesizer {
	if cfg.Command != "" {
		return &speech.Command{Path: cfg.Command, Args: cfg.Args}
	}
	return consoleSynth{}
}

// consoleSynth prints utterances instead of speaking them.
type consoleSynth struct{}

func (consoleSynth) Speak(_ context.Context, u speech.Utterance) error {
	fmt.Printf(">> %s\n", u.Text)
	return nil
}
