package indicators

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MA calculates the Simple Moving Average of the last period prices.
// Returns an error if there aren't enough prices for the period.
func MA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("not enough prices: need %d, got %d", period, len(prices))
	}
	return floats.Sum(prices[len(prices)-period:]) / float64(period), nil
}

// EMA calculates the Exponential Moving Average over all prices, seeded
// with the simple mean of the first period prices.
// Returns an error if there aren't enough prices for the period.
func EMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("not enough prices: need %d, got %d", period, len(prices))
	}

	alpha := 2.0 / float64(period+1)
	ema := floats.Sum(prices[:period]) / float64(period)
	for _, p := range prices[period:] {
		ema = alpha*p + (1-alpha)*ema
	}
	return ema, nil
}

// SimpleMA is a streaming Simple Moving Average.
type SimpleMA struct {
	period int
	window []float64
}

// NewSMA creates a Simple Moving Average over period prices.
func NewSMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		window: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.window = m.window[:0]
}

func (m *SimpleMA) Update(v float64) {
	if len(m.window) == m.period {
		copy(m.window, m.window[1:])
		m.window = m.window[:m.period-1]
	}
	m.window = append(m.window, v)
}

func (m *SimpleMA) Ready() bool {
	return m.period > 0 && len(m.window) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return floats.Sum(m.window) / float64(m.period)
}

// ExponentialMA is a streaming Exponential Moving Average.
//
// The first value is the simple mean of the first period inputs; after
// that EMA_t = alpha*v_t + (1-alpha)*EMA_{t-1} with alpha = 2/(period+1).
type ExponentialMA struct {
	period    int
	alpha     float64
	ema       float64
	count     int
	warmupSum float64
}

// NewEMA creates an Exponential Moving Average with the given span.
func NewEMA(period int) *ExponentialMA {
	return &ExponentialMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *ExponentialMA) Warmup() int {
	return e.period
}

func (e *ExponentialMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *ExponentialMA) Update(v float64) {
	if e.count < e.period {
		e.warmupSum += v
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum / float64(e.period)
		}
		return
	}
	e.ema = e.alpha*v + (1-e.alpha)*e.ema
}

func (e *ExponentialMA) Ready() bool {
	return e.period > 0 && e.count >= e.period
}

func (e *ExponentialMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}
