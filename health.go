package wayfinders

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status     string `json:"status"`
	VenueCount int    `json:"venue_count"`
	ClassCount int    `json:"class_count"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{Status: "ok"}
	if store != nil {
		resp.VenueCount = store.VenueCount()
		resp.ClassCount = store.ClassCount()
	}
	_ = json.NewEncoder(w).Encode(resp)
}
