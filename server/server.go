// Package server exposes frames and figures over HTTP for an external
// renderer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rustyeddy/candlescope/analysis"
	"github.com/rustyeddy/candlescope/chart"
	"github.com/rustyeddy/candlescope/market"
	"github.com/rustyeddy/candlescope/metrics"
)

type Server struct {
	svc     *analysis.Service
	metrics *metrics.Metrics
	httpSrv *http.Server
}

// New builds the server. m may be nil, in which case /metrics is not served.
func New(addr string, svc *analysis.Service, m *metrics.Metrics) *Server {
	s := &Server{svc: svc, metrics: m}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /api/v1/symbols", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{
			"symbols":    market.Symbols,
			"timeframes": market.Timeframes,
		})
	})
	mux.HandleFunc("GET /api/v1/frames", s.handleFrames)
	mux.HandleFunc("GET /api/v1/chart", s.handleChart)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

type framesResponse struct {
	RunID     string `json:"run_id"`
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
	Frames    any    `json:"frames"`
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, framesResponse{
		RunID:     res.RunID,
		Symbol:    res.Series.Symbol,
		Timeframe: res.Series.Timeframe,
		Frames:    res.Frames,
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, chart.NewFigure(res.Series.Symbol, res.Series.Timeframe, res.Frames))
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) (analysis.Result, bool) {
	req, err := parseRequest(r)
	if err != nil {
		writeError(w, err)
		return analysis.Result{}, false
	}
	res, err := s.svc.Run(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return analysis.Result{}, false
	}
	return res, true
}

func parseRequest(r *http.Request) (market.Request, error) {
	q := r.URL.Query()
	req := market.Request{
		Symbol:    q.Get("symbol"),
		Timeframe: q.Get("timeframe"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: limit %q is not an integer", market.ErrInvalidRequest, v)
		}
		req.Limit = n
	}
	return req, nil
}

// StatusFor maps a request error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, market.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, market.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, market.ErrConnection):
		return http.StatusServiceUnavailable
	case errors.Is(err, market.ErrDataUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.httpSrv.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}
