package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server serves the /metrics endpoint of a registry over http.
type Server struct {
	server *http.Server
	log    zerolog.Logger
}

// NewServer creates a server listening on the given port that only responds to /metrics.
func NewServer(log zerolog.Logger, port uint, gatherer prometheus.Gatherer) *Server {
	addr := ":" + strconv.Itoa(int(port))

	mux := http.NewServeMux()
	endpoint := "/metrics"
	mux.Handle(endpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		log:    log.With().Str("component", "metrics_server").Str("address", addr).Logger(),
	}
}

// Start serves until Shutdown is called. It returns immediately.
func (m *Server) Start() {
	m.log.Info().Msg("metrics server started")
	go func() {
		err := m.server.ListenAndServe()
		// http.ErrServerClosed is returned when Close or Shutdown is called
		if errors.Is(err, http.ErrServerClosed) {
			m.log.Debug().Err(err).Msg("metrics server shutdown")
			return
		}
		m.log.Err(err).Msg("error running metrics server")
	}()
}

// Shutdown stops the server, waiting at most five seconds for in-flight requests.
func (m *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.server.Shutdown(ctx)
}
