// Package indicators provides streaming technical analysis indicators over
// a sequence of prices.
package indicators

// Indicator computes a single streaming value from prices.
// It only ever sees prices it has been given, so a value produced after
// the i-th Update depends on the first i prices and nothing later.
type Indicator interface {
	// Name returns a stable identifier like "SMA(50)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed price and updates internal state.
	Update(v float64)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool
}

type ValueF64 interface {
	// Value returns the current indicator value. If !Ready(), it returns 0;
	// callers should always check Ready().
	Value() float64
}
