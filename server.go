package wayfinders

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mattw23n/wayfinders/config"
	"github.com/mattw23n/wayfinders/explain"
	"github.com/mattw23n/wayfinders/routing"
	"github.com/mattw23n/wayfinders/venue"
)

var (
	server     *http.Server
	store      *venue.Store
	directions *routing.Client
	explainer  *explain.Explainer
)

// StartServer wires the route and venue services into the HTTP mux and starts
// listening on the configured port.
func StartServer(s *venue.Store, d *routing.Client, e *explain.Explainer) {
	store = s
	directions = d
	explainer = e

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth)
	mux.HandleFunc("/api/routes", handleRoutes)
	mux.HandleFunc("/api/venues/status", handleVenuesStatus)
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM and then drains the
// server.
func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
	if store != nil {
		_ = store.Close()
	}
}
