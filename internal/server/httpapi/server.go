// Package httpapi exposes the housekeeping trigger over HTTP:
// POST /api/housekeeping guarded by a bearer token, plus health and
// metrics endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Alok0227/rallly/internal/logging"
	"github.com/Alok0227/rallly/internal/server/housekeeping"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sweeper runs one housekeeping sweep.
type Sweeper interface {
	Run(ctx context.Context) (*housekeeping.Result, error)
}

type Server struct {
	address string
	secret  []byte
	sweeper Sweeper
	logger  logging.Logger
}

func NewServer(address string, secretKey string, sweeper Sweeper, l logging.Logger) *Server {
	return &Server{
		address: address,
		secret:  []byte(secretKey),
		sweeper: sweeper,
		logger:  l.With("module", "httpapi"),
	}
}

// Router builds the route table. Split out from Run so tests can drive it
// with httptest.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/api/housekeeping", s.requireHousekeepingToken(http.HandlerFunc(s.handleSweep))).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
