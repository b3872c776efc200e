package wayfinders

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"
)

func handleRoutes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write(buildErrorPayload("routes", "POST required"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("routes", "could not read request body"))
		return
	}
	start, end, err := parseAndValidateRoutesRequest(body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("routes", err.Error()))
		return
	}

	// Crowd scoring defaults to the current time; an ISO current_datetime
	// query evaluates a future or past departure instead.
	now := time.Now()
	if raw := r.URL.Query().Get("current_datetime"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write(buildErrorPayload("routes", "current_datetime must be RFC3339"))
			return
		}
		now = at
	}

	routes, err := directions.Routes(r.Context(), start, end)
	if err != nil {
		log.Printf("routes: directions fetch failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write(buildErrorPayload("routes", err.Error()))
		return
	}

	scored := store.ScoreRoutes(routes, now)
	explainer.Annotate(r.Context(), scored)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"routes":    scored,
		"timestamp": now.Format(time.RFC3339),
	})
}

func handleVenuesStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	now := time.Now()
	venues := store.VenueStatus(now)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"venues":    venues,
		"count":     len(venues),
		"timestamp": now.Format(time.RFC3339),
	})
}
