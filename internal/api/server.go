// Package api exposes the fee model over HTTP: JSON endpoints for one-shot
// computations and a WebSocket session for live recompute-per-change. Every
// request decodes its own immutable parameter snapshot, so concurrent
// computations never share state. Model logic stays in feemodel, sweep, and
// analysis; this package only decodes, validates, delegates, and rounds.
package api

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"redemption-fee-lab/internal/domain"
	"redemption-fee-lab/internal/fingerprint"
	"redemption-fee-lab/internal/observability"
	"redemption-fee-lab/internal/sweep"
)

// Options configures a Server. Zero-value fields fall back to the domain
// defaults, so tests can start a Server from an empty Options.
type Options struct {
	// Bounds validate incoming parameter sets.
	Bounds domain.Bounds
	// Defaults fill parameter fields absent from request bodies.
	Defaults domain.ParameterSet
	// SweepRange is the deposit range used when a request names none.
	SweepRange domain.DepositRange
	// AllowedOrigins feeds the CORS middleware and the live session's
	// origin check. Empty means allow any origin.
	AllowedOrigins []string
	// Version is reported by /status.
	Version string
	// Logger receives request and session lines. Nil discards them.
	Logger *log.Logger
}

// Server holds the HTTP surface of the fee model.
type Server struct {
	bounds         domain.Bounds
	defaults       domain.ParameterSet
	sweepRange     domain.DepositRange
	allowedOrigins []string
	version        string
	logger         *log.Logger
	generator      *sweep.Generator

	// Run counters for /status
	mu           sync.Mutex
	startedAt    time.Time
	scenarioRuns int
	sweepRuns    int
	liveOpen     int
}

// NewServer creates a Server from options.
func NewServer(opts Options) *Server {
	if opts.Bounds == (domain.Bounds{}) {
		opts.Bounds = domain.DefaultBounds
	}
	if opts.Defaults == (domain.ParameterSet{}) {
		opts.Defaults = domain.DefaultParameterSet
	}
	if opts.SweepRange == (domain.DepositRange{}) {
		opts.SweepRange = domain.DefaultDepositRange
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Server{
		bounds:         opts.Bounds,
		defaults:       opts.Defaults,
		sweepRange:     opts.SweepRange,
		allowedOrigins: opts.AllowedOrigins,
		version:        opts.Version,
		logger:         logger,
		generator:      sweep.NewGenerator(sweep.Options{Logger: logger}),
		startedAt:      time.Now(),
	}
}

// Router builds the chi router for the full HTTP surface.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", observability.Handler())

	r.Route("/api/v1", func(rr chi.Router) {
		// The live endpoint stays outside the metrics middleware: the
		// WebSocket upgrade needs the raw ResponseWriter (http.Hijacker)
		// and records its own session metrics.
		rr.Get("/live", s.handleLive)

		rr.Group(func(rg chi.Router) {
			rg.Use(s.metricsMiddleware)
			rg.Post("/scenario", s.handleScenario)
			rg.Post("/sweep", s.handleSweep)
			rg.Post("/breakeven", s.handleBreakeven)
			rg.Get("/bounds", s.handleBounds)
		})
	})

	return r
}

// metricsMiddleware records request counts and latency per matched route.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// The route pattern is only resolved after the handler ran.
		route := chi.RouteContext(r.Context()).RoutePattern()
		observability.RecordHTTPRequest(route, strconv.Itoa(rec.status), time.Since(start).Seconds())
	})
}

// statusRecorder captures the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// handleHealthz is the liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatusResponse{
		Status:                "running",
		Version:               s.version,
		StartedAt:             s.startedAt,
		Uptime:                time.Since(s.startedAt).String(),
		ScenarioRuns:          s.scenarioRuns,
		SweepRuns:             s.sweepRuns,
		LiveSessionsOpen:      s.liveOpen,
		DefaultParameterSetID: fingerprint.ComputeParameterSetID(s.defaults),
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) countScenarioRun() {
	s.mu.Lock()
	s.scenarioRuns++
	s.mu.Unlock()
}

func (s *Server) countSweepRun() {
	s.mu.Lock()
	s.sweepRuns++
	s.mu.Unlock()
}

func (s *Server) liveOpened() {
	s.mu.Lock()
	s.liveOpen++
	s.mu.Unlock()
	observability.LiveSessionOpened()
}

func (s *Server) liveClosed() {
	s.mu.Lock()
	s.liveOpen--
	s.mu.Unlock()
	observability.LiveSessionClosed()
}
