package market

import (
	"fmt"
	"sort"
)

// Series is an ordered run of bars for one symbol and timeframe.
// Bars are strictly increasing by Time with no duplicates.
type Series struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
	Bars      []Bar  `json:"bars"`
}

// Len returns the number of bars.
func (s Series) Len() int { return len(s.Bars) }

// Closes projects the series onto its close prices.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// NormalizeStats counts what Normalize had to fix up.
type NormalizeStats struct {
	Duplicates int
	Trimmed    int
}

// Normalize sorts bars ascending, drops duplicate timestamps (the later
// bar in input order wins), validates every bar and keeps the most recent
// limit bars. The input slice is not modified.
func Normalize(bars []Bar, limit int) ([]Bar, NormalizeStats, error) {
	var stats NormalizeStats

	out := make([]Bar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	dedup := out[:0]
	for _, b := range out {
		if err := b.Validate(); err != nil {
			return nil, stats, err
		}
		b.Time = b.Time.UTC()
		if n := len(dedup); n > 0 && dedup[n-1].Time.Equal(b.Time) {
			dedup[n-1] = b
			stats.Duplicates++
			continue
		}
		dedup = append(dedup, b)
	}

	if limit > 0 && len(dedup) > limit {
		stats.Trimmed = len(dedup) - limit
		dedup = dedup[len(dedup)-limit:]
	}
	if err := (Series{Bars: dedup}).Validate(); err != nil {
		return nil, stats, err
	}
	return dedup, stats, nil
}

// Validate checks the series ordering invariant and every bar.
func (s Series) Validate() error {
	for i, b := range s.Bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && !s.Bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("bar %d: timestamp %s not after %s", i, b.Time, s.Bars[i-1].Time)
		}
	}
	return nil
}
