package indicators

import "fmt"

// RSI is Wilder's Relative Strength Index.
//
// Gains and losses are bar-to-bar close deltas. The first averages are the
// simple mean of the first period deltas, then each new delta is folded in
// with Wilder smoothing: avg = (avg*(period-1) + cur) / period.
// The first value is available after period+1 prices.
type RSI struct {
	period int

	prev     float64
	havePrev bool

	count   int // deltas seen
	avgGain float64
	avgLoss float64
}

func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

func (r *RSI) Warmup() int {
	return r.period + 1
}

func (r *RSI) Reset() {
	*r = RSI{period: r.period}
}

func (r *RSI) Update(v float64) {
	if !r.havePrev {
		r.prev = v
		r.havePrev = true
		return
	}

	delta := v - r.prev
	r.prev = v

	var gain, loss float64
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	r.count++
	if r.count <= r.period {
		r.avgGain += gain
		r.avgLoss += loss
		if r.count == r.period {
			p := float64(r.period)
			r.avgGain /= p
			r.avgLoss /= p
		}
		return
	}

	p := float64(r.period)
	r.avgGain = (r.avgGain*(p-1) + gain) / p
	r.avgLoss = (r.avgLoss*(p-1) + loss) / p
}

func (r *RSI) Ready() bool {
	return r.period > 0 && r.count >= r.period
}

// Defined reports whether Value is a number. A perfectly flat window has
// neither gains nor losses and no defined RSI.
func (r *RSI) Defined() bool {
	return r.Ready() && (r.avgGain > 0 || r.avgLoss > 0)
}

// Value returns the RSI in [0, 100], or 0 when !Defined().
func (r *RSI) Value() float64 {
	if !r.Defined() {
		return 0
	}
	if r.avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+r.avgGain/r.avgLoss)
}
