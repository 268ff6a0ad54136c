// Package server exposes the planner over HTTP for remote presentation layers.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/fukurin00/grid_routing_provider/config"
	"github.com/fukurin00/grid_routing_provider/msg"
	"github.com/fukurin00/grid_routing_provider/routing"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	cfg     config.Config
	planner routing.Planner
	logger  *log.Logger
	metrics *metrics
	handler http.Handler
}

// New wires the routes. Each server registers its metrics in its own registry.
func New(cfg config.Config, planner routing.Planner, logger *log.Logger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:     cfg,
		planner: planner,
		logger:  logger,
		metrics: newMetrics(reg),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/path", s.handlePath)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.handler = s.instrument(mux)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.metrics.requestDuration.WithLabelValues(strconv.Itoa(m.Code)).Observe(m.Duration.Seconds())
		s.logger.Debugf("%s %s %d %s", r.Method, r.URL.Path, m.Code, m.Duration)
	})
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.ListenAddr, Handler: s}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("grid routing server listening on %s", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

// handlePath plans over the grid file posted in the body. start and goal
// query values override the directives in the body.
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxGridBytes)
	grid, start, goal, err := routing.Parse(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "grid too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.Warnf("bad grid: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		if start, err = routing.ParseCoord(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if v := q.Get("goal"); v != "" {
		if goal, err = routing.ParseCoord(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	res, err := s.planner.Plan(r.Context(), grid, start, goal)
	s.metrics.observe(res, err)
	if err != nil {
		s.logger.Errorf("plan %s -> %s: %v", start, goal, err)
		code := http.StatusInternalServerError
		if errors.Is(err, routing.ErrExpansionLimit) {
			code = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), code)
		return
	}
	s.logger.Infof("plan %s -> %s found=%t cost=%d", start, goal, res.Found, res.Cost)

	payload, err := msg.MakePathMsg(start, goal, res.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
