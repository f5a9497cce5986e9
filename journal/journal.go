// Package journal records one row per dashboard request. It stores what
// was asked and how it ended, never the market data itself.
package journal

import (
	"context"
	"time"
)

// Status values for RunRecord.Status.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusFailed  = "failed"
)

// RunRecord is one fetch+compute request.
type RunRecord struct {
	RunID     string
	Symbol    string
	Timeframe string
	Limit     int
	Bars      int
	Status    string
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

type Journal interface {
	RecordRun(ctx context.Context, r RunRecord) error
	Close() error
}

// Nop discards records. It is used when journaling is disabled.
type Nop struct{}

func (Nop) RecordRun(context.Context, RunRecord) error { return nil }
func (Nop) Close() error                               { return nil }
