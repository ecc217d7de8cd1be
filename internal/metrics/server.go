package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/staypulse/pricingservice/internal/log"
)

// Server exposes the pricing service's Prometheus metrics on a dedicated
// listener, kept off the public API port.
type Server struct {
	server *http.Server
}

// NewServer builds the metrics listener with /metrics and a liveness probe.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves metrics traffic until the listener fails or is shut down.
func (s *Server) Start(ctx context.Context) error {
	log.Info(ctx, "Metrics listener starting", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics listener: %w", err)
	}
	return nil
}

// Shutdown drains the metrics listener.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info(ctx, "Metrics listener stopping")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics listener shutdown: %w", err)
	}
	return nil
}
