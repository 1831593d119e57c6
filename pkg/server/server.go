package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"commutectl/pkg/commute"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/logger"
)

// Clock returns the instant a request is served at
type Clock func() time.Time

// NewRouter exposes the planner over JSON
func NewRouter(planner *commute.Planner, clock Clock, log *logrus.Logger) *mux.Router {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	h := handlers{planner: planner, clock: clock, log: log}

	r := mux.NewRouter()
	r.Use(logger.New(logger.Options{Prefix: "commutectl", OutputFlags: 0, Out: requestLog{log}}).Handler)

	r.HandleFunc("/board", h.board).Methods(http.MethodGet)
	r.HandleFunc("/leg", h.leg).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	return r
}

// requestLog forwards each access log line to logrus at Info level
type requestLog struct {
	log *logrus.Logger
}

func (r requestLog) Write(p []byte) (int, error) {
	r.log.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

type handlers struct {
	planner *commute.Planner
	clock   Clock
	log     *logrus.Logger
}

func (h handlers) board(w http.ResponseWriter, r *http.Request) {
	now := h.clock().In(h.planner.Settings().Loc())

	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := commute.ParseClock(at, now)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		now = parsed
	}

	writeJSON(w, http.StatusOK, h.planner.Build(r.Context(), now))
}

func (h handlers) leg(w http.ResponseWriter, r *http.Request) {
	settings := h.planner.Settings()
	hour := h.clock().In(settings.Loc()).Hour()

	if v := r.URL.Query().Get("hour"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 23 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("hour must be between 0 and 23, got %q", v))
			return
		}
		hour = parsed
	}

	writeJSON(w, http.StatusOK, struct {
		Hour int                `json:"hour"`
		Leg  commute.CommuteLeg `json:"leg"`
	}{hour, commute.ResolveLeg(settings, hour)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, handler http.Handler, port int, log *logrus.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Infof("Serving departures on http://localhost:%d/board", port)

	select {
	case err := <-errCh:
		return fmt.Errorf("server start error: %w", err)
	case <-ctx.Done():
		log.Info("initiating graceful shutdown of server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during graceful shutdown: %w", err)
		}
		return nil
	}
}
