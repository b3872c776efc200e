package venue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mattw23n/wayfinders/geo"
)

// Location is a GeoJSON point. Coordinates are longitude, latitude.
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Venue is one campus room or hall with a geographic anchor.
type Venue struct {
	ID       string   `json:"_id"`
	RoomName string   `json:"roomName"`
	Floor    int      `json:"floor"`
	Location Location `json:"location"`
}

// Coordinate returns the venue's anchor as a coordinate. The zero coordinate
// is returned for malformed locations.
func (v Venue) Coordinate() geo.Coordinate {
	if len(v.Location.Coordinates) < 2 {
		return geo.Coordinate{}
	}
	return geo.Coordinate{Lon: v.Location.Coordinates[0], Lat: v.Location.Coordinates[1]}
}

// Class is one scheduled lesson at a venue. Times are "HHMM" strings, Day is
// an English weekday name.
type Class struct {
	VenueID   string `json:"venueId"`
	Day       string `json:"day"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Size      int    `json:"size"`
}

// Store holds the venue and class datasets in memory.
type Store struct {
	mu      sync.RWMutex
	venues  []Venue
	classes map[string][]Class // venueID -> classes, all days

	watcher *fsnotify.Watcher
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{classes: map[string][]Class{}}
}

// LoadVenues replaces the venue dataset from a JSON array file.
func (s *Store) LoadVenues(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read venues: %w", err)
	}
	var venues []Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return fmt.Errorf("decode venues %s: %w", path, err)
	}

	s.mu.Lock()
	s.venues = venues
	s.mu.Unlock()
	return nil
}

// LoadClasses replaces the class dataset from a JSON array file.
func (s *Store) LoadClasses(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read classes: %w", err)
	}
	var classes []Class
	if err := json.Unmarshal(data, &classes); err != nil {
		return fmt.Errorf("decode classes %s: %w", path, err)
	}

	byVenue := map[string][]Class{}
	for _, c := range classes {
		if c.VenueID == "" {
			continue
		}
		byVenue[c.VenueID] = append(byVenue[c.VenueID], c)
	}

	s.mu.Lock()
	s.classes = byVenue
	s.mu.Unlock()
	return nil
}

// VenueCount returns the number of loaded venues.
func (s *Store) VenueCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.venues)
}

// ClassCount returns the number of loaded classes.
func (s *Store) ClassCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, cs := range s.classes {
		n += len(cs)
	}
	return n
}

// ClassesFor returns the classes scheduled at a venue on the given weekday
// name.
func (s *Store) ClassesFor(venueID, day string) []Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Class
	for _, c := range s.classes[venueID] {
		if c.Day == day {
			out = append(out, c)
		}
	}
	return out
}

// Watch reloads the venue dataset whenever the file changes on disk. Call
// Close to stop watching.
func (s *Store) Watch(venuesPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("venue watch: %w", err)
	}
	s.watcher = w

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.LoadVenues(venuesPath); err != nil {
					log.Printf("venue reload: %v", err)
					continue
				}
				log.Printf("venue dataset reloaded: %d venues", s.VenueCount())
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("venue watch: %v", err)
			}
		}
	}()

	return w.Add(venuesPath)
}

// Close stops the dataset watcher if one is running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
