// Package analysis runs one dashboard request: validate, fetch, compute.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/candlescope/internal/id"
	"github.com/rustyeddy/candlescope/internal/logger"
	"github.com/rustyeddy/candlescope/journal"
	"github.com/rustyeddy/candlescope/market"
	"github.com/rustyeddy/candlescope/metrics"
	"github.com/rustyeddy/candlescope/pipeline"
)

// Result is everything a renderer needs for one request.
type Result struct {
	RunID  string
	Series market.Series
	Frames []pipeline.Frame
}

// Service wires a market source to the indicator pipeline. Metrics and
// Journal are optional.
type Service struct {
	Source  market.Source
	Metrics *metrics.Metrics
	Journal journal.Journal

	now func() time.Time
}

func NewService(src market.Source, m *metrics.Metrics, j journal.Journal) *Service {
	return &Service{Source: src, Metrics: m, Journal: j}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Run validates req before any network access, then performs exactly one
// fetch and one compute. Errors wrap the market sentinels.
func (s *Service) Run(ctx context.Context, req market.Request) (Result, error) {
	if s.Source == nil {
		return Result{}, fmt.Errorf("analysis: Source is required")
	}

	started := s.clock()
	req = req.WithDefaults()
	res := Result{RunID: id.At(started)}
	ctx = logger.WithRunID(ctx, res.RunID)

	err := s.run(ctx, req, &res)
	s.record(ctx, req, res, started, err)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Service) run(ctx context.Context, req market.Request, res *Result) error {
	if err := req.Validate(); err != nil {
		if s.Metrics != nil {
			s.Metrics.CountFetch(metrics.OutcomeInvalid)
		}
		return err
	}

	fetchStart := s.clock()
	series, err := s.Source.Fetch(ctx, req)
	s.observeFetch(fetchOutcome(err), s.clock().Sub(fetchStart))
	if err != nil {
		return fmt.Errorf("fetch %s %s: %w", req.Symbol, req.Timeframe, err)
	}
	res.Series = series
	slog.Debug("fetched candles",
		append(logger.Attrs(ctx), "symbol", req.Symbol, "timeframe", req.Timeframe, "bars", series.Len())...)

	computeStart := s.clock()
	frames, err := pipeline.Compute(series)
	if s.Metrics != nil {
		s.Metrics.ObserveCompute(len(frames), s.clock().Sub(computeStart), err)
	}
	if err != nil {
		return err
	}
	res.Frames = frames
	return nil
}

func (s *Service) observeFetch(outcome string, d time.Duration) {
	if s.Metrics != nil {
		s.Metrics.ObserveFetch(outcome, d)
	}
}

func (s *Service) record(ctx context.Context, req market.Request, res Result, started time.Time, err error) {
	rec := journal.RunRecord{
		RunID:     res.RunID,
		Symbol:    req.Symbol,
		Timeframe: req.Timeframe,
		Limit:     req.Limit,
		Bars:      res.Series.Len(),
		Status:    Status(err),
		StartedAt: started,
		Duration:  s.clock().Sub(started),
	}
	attrs := append(logger.Attrs(ctx),
		"symbol", req.Symbol,
		"timeframe", req.Timeframe,
		"bars", rec.Bars,
		"duration_ms", rec.Duration.Milliseconds(),
	)

	if err != nil {
		rec.Error = err.Error()
		slog.Warn("request failed", append(attrs, "err", err)...)
	} else {
		slog.Info("request complete", attrs...)
	}

	if s.Journal == nil {
		return
	}
	// Journal failures never fail the request.
	if jerr := s.Journal.RecordRun(context.WithoutCancel(ctx), rec); jerr != nil {
		slog.Warn("journal write failed", append(logger.Attrs(ctx), "err", jerr)...)
	}
}

// Status maps a request error to the journal status column.
func Status(err error) string {
	switch {
	case err == nil:
		return journal.StatusOK
	case errors.Is(err, market.ErrInvalidRequest):
		return journal.StatusInvalid
	default:
		return journal.StatusFailed
	}
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, market.ErrConnection):
		return metrics.OutcomeConnection
	case errors.Is(err, market.ErrDataUnavailable):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
