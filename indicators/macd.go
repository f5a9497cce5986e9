package indicators

import "fmt"

// MACD is the Moving Average Convergence Divergence: a fast EMA minus a
// slow EMA, with a signal EMA over that difference and a histogram of
// their gap. All three EMAs use the same simple-mean seed.
type MACD struct {
	fast   *ExponentialMA
	slow   *ExponentialMA
	signal *ExponentialMA

	line float64
}

func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fast:   NewEMA(fast),
		slow:   NewEMA(slow),
		signal: NewEMA(signal),
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", m.fast.period, m.slow.period, m.signal.period)
}

// Warmup is the number of prices before the signal line is available.
func (m *MACD) Warmup() int {
	return max(m.fast.period, m.slow.period) + m.signal.period - 1
}

func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
	m.line = 0
}

func (m *MACD) Update(v float64) {
	m.fast.Update(v)
	m.slow.Update(v)
	if !m.Ready() {
		return
	}
	m.line = m.fast.Value() - m.slow.Value()
	m.signal.Update(m.line)
}

// Ready reports whether the MACD line is available.
func (m *MACD) Ready() bool {
	return m.fast.Ready() && m.slow.Ready()
}

// SignalReady reports whether the signal line and histogram are available.
func (m *MACD) SignalReady() bool {
	return m.Ready() && m.signal.Ready()
}

func (m *MACD) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.line
}

func (m *MACD) Signal() float64 {
	return m.signal.Value()
}

// Hist returns Value() - Signal(), or 0 when !SignalReady().
func (m *MACD) Hist() float64 {
	if !m.SignalReady() {
		return 0
	}
	return m.line - m.signal.Value()
}
