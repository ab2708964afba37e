// Package server exposes word generation and membership checks over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
	"github.com/ha1tch/fsm-wordgen/pkg/automatonfile"
	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

const (
	// MaxWords caps the n parameter of a single request.
	MaxWords = 10000
	// maxBody bounds request bodies.
	maxBody = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// Server serves the wordgen HTTP API.
type Server struct {
	opts     generator.Options
	log      *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// New creates a Server. opts are the defaults for every generation request;
// a seed given in a request overrides opts.Seed.
func New(opts generator.Options, log *slog.Logger) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		opts:     opts,
		log:      log,
		registry: reg,
		metrics:  newMetrics(reg),
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/words", s.handleWords)
		r.Post("/check", s.handleCheck)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info("Starting wordgen server", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.log.Info("Start shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		s.log.Info("Server stopped gracefully")
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}

// handleWords handles POST /v1/words?n=N&seed=S with an automaton as body.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	n, seed, trace, err := wordsParams(r)
	if err != nil {
		s.fail(w, "unknown", http.StatusBadRequest, err)
		return
	}
	a, err := readAutomaton(w, r)
	if err != nil {
		s.fail(w, "unknown", http.StatusBadRequest, err)
		return
	}
	kind := string(a.Kind())

	opts := s.opts
	if seed != 0 {
		opts.Seed = seed
	}
	opts.Trace = trace
	opts.Logger = s.log

	start := time.Now()
	report, err := generator.New(generator.WithOptions(opts)).Generate(r.Context(), a, n)
	s.metrics.durations.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(w, kind, statusFor(err), err)
		return
	}

	s.metrics.requests.WithLabelValues(kind, outcomeOK).Inc()
	s.metrics.words.WithLabelValues(kind).Add(float64(report.Generated))
	writeJSON(w, http.StatusOK, report)
}

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	Automaton json.RawMessage `json:"automaton"`
	Words     []string        `json:"words"`
}

// CheckResult is the verdict for one word.
type CheckResult struct {
	Word     string `json:"word"`
	Accepted bool   `json:"accepted"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CheckResponse is the body returned by POST /v1/check.
type CheckResponse struct {
	Kind    automaton.Kind `json:"kind"`
	Results []CheckResult  `json:"results"`
}

// handleCheck handles POST /v1/check.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var body CheckRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&body); err != nil {
		s.fail(w, "unknown", http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	a, err := automatonfile.ParseJSON(body.Automaton)
	if err != nil {
		s.fail(w, "unknown", http.StatusBadRequest, err)
		return
	}
	kind := string(a.Kind())
	if err := a.Validate(); err != nil {
		s.fail(w, kind, http.StatusBadRequest, err)
		return
	}

	resp := CheckResponse{Kind: a.Kind(), Results: make([]CheckResult, 0, len(body.Words))}
	for _, word := range body.Words {
		res, err := automaton.Run(a, word, automaton.DefaultSearchLimit)
		cr := CheckResult{Word: word}
		if err != nil {
			cr.Error = err.Error()
		} else {
			cr.Accepted = res.Accepted
			cr.Output = res.Output
		}
		resp.Results = append(resp.Results, cr)
	}

	s.metrics.requests.WithLabelValues(kind, outcomeOK).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func wordsParams(r *http.Request) (n int, seed uint64, trace bool, err error) {
	q := r.URL.Query()
	n = 1
	if v := q.Get("n"); v != "" {
		n, err = strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxWords {
			return 0, 0, false, fmt.Errorf("n must be an integer in [1, %d]", MaxWords)
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, 0, false, fmt.Errorf("invalid seed %q", v)
		}
	}
	if v := q.Get("trace"); v != "" {
		trace, err = strconv.ParseBool(v)
		if err != nil {
			return 0, 0, false, fmt.Errorf("invalid trace %q", v)
		}
	}
	return n, seed, trace, nil
}

func readAutomaton(w http.ResponseWriter, r *http.Request) (automaton.Automaton, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return automatonfile.ParseJSON(data)
}

// statusFor maps generation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case generator.IsPrecondition(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, automaton.ErrInvalid), errors.Is(err, generator.ErrInvalidCount):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func outcomeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return outcomeBadRequest
	case http.StatusUnprocessableEntity:
		return outcomePrecondition
	default:
		return outcomeError
	}
}

func (s *Server) fail(w http.ResponseWriter, kind string, status int, err error) {
	s.metrics.requests.WithLabelValues(kind, outcomeFor(status)).Inc()
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", "kind", kind, "error", err)
	} else {
		s.log.Warn("Request rejected", "kind", kind, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
