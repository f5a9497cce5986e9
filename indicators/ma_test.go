package indicators

import (
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrices() []float64 {
	return []float64{102, 105, 106, 108, 110, 111, 113, 114, 116, 118}
}

// walk returns a deterministic zig-zag price path with no flat steps.
func walk(n int) []float64 {
	out := make([]float64, n)
	p := 100.0
	seed := uint32(7)
	for i := range out {
		seed = seed*1664525 + 1013904223
		step := float64(seed%1000)/100 - 4.95
		if step == 0 {
			step = 0.01
		}
		p += step
		if p < 1 {
			p = 1 + float64(i%7)
		}
		out[i] = p
	}
	return out
}

func TestMA(t *testing.T) {
	ma, err := MA(testPrices(), 5)
	require.NoError(t, err)
	// Last 5: 111,113,114,116,118 => 572/5 = 114.4
	assert.InDelta(t, 114.4, ma, 1e-9)

	_, err = MA(testPrices(), 0)
	assert.ErrorContains(t, err, "period must be positive")

	_, err = MA(testPrices()[:3], 5)
	assert.ErrorContains(t, err, "not enough prices")
}

func TestEMA(t *testing.T) {
	ema, err := EMA([]float64{1, 2, 3, 4}, 3)
	require.NoError(t, err)
	// seed mean(1,2,3)=2, alpha=0.5 => 0.5*4 + 0.5*2 = 3
	assert.InDelta(t, 3.0, ema, 1e-12)

	_, err = EMA([]float64{1}, 3)
	assert.ErrorContains(t, err, "not enough prices")
}

func TestSimpleMAStreaming(t *testing.T) {
	prices := testPrices()

	t.Run("basic functionality", func(t *testing.T) {
		ma := NewSMA(3)
		assert.Equal(t, "SMA(3)", ma.Name())
		assert.Equal(t, 3, ma.Warmup())
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())

		ma.Update(prices[0])
		ma.Update(prices[1])
		assert.False(t, ma.Ready())

		ma.Update(prices[2])
		assert.True(t, ma.Ready())
		assert.InDelta(t, (102.0+105.0+106.0)/3.0, ma.Value(), 1e-9)

		ma.Update(prices[3])
		assert.InDelta(t, (105.0+106.0+108.0)/3.0, ma.Value(), 1e-9)
	})

	t.Run("reset functionality", func(t *testing.T) {
		ma := NewSMA(2)
		ma.Update(prices[0])
		ma.Update(prices[1])
		assert.True(t, ma.Ready())

		ma.Reset()
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())
	})

	t.Run("matches talib", func(t *testing.T) {
		in := walk(200)
		want := talib.Sma(in, 20)

		ma := NewSMA(20)
		for i, p := range in {
			ma.Update(p)
			if i < 19 {
				assert.False(t, ma.Ready(), "index %d", i)
				continue
			}
			assert.InDelta(t, want[i], ma.Value(), 1e-9, "index %d", i)
		}
	})
}

func TestExponentialMAStreaming(t *testing.T) {
	prices := testPrices()

	t.Run("basic functionality", func(t *testing.T) {
		ema := NewEMA(3)
		assert.Equal(t, "EMA(3)", ema.Name())
		assert.Equal(t, 3, ema.Warmup())
		assert.False(t, ema.Ready())

		ema.Update(prices[0])
		ema.Update(prices[1])
		assert.False(t, ema.Ready())

		ema.Update(prices[2])
		assert.True(t, ema.Ready())
		seed := (102.0 + 105.0 + 106.0) / 3.0
		assert.InDelta(t, seed, ema.Value(), 1e-9)

		// alpha = 2/(3+1) = 0.5
		ema.Update(prices[3])
		assert.InDelta(t, 0.5*108.0+0.5*seed, ema.Value(), 1e-9)
	})

	t.Run("reset functionality", func(t *testing.T) {
		ema := NewEMA(2)
		ema.Update(prices[0])
		ema.Update(prices[1])
		assert.True(t, ema.Ready())

		ema.Reset()
		assert.False(t, ema.Ready())
		assert.Equal(t, 0.0, ema.Value())
	})

	t.Run("matches batch calculation", func(t *testing.T) {
		ema := NewEMA(5)
		for _, p := range prices {
			ema.Update(p)
		}
		batch, err := EMA(prices, 5)
		require.NoError(t, err)
		assert.InDelta(t, batch, ema.Value(), 1e-9)
	})
}

func TestIndicatorInterface(t *testing.T) {
	var _ Indicator = &SimpleMA{}
	var _ Indicator = &ExponentialMA{}
	var _ Indicator = &RSI{}
	var _ Indicator = &MACD{}
	var _ ValueF64 = &SimpleMA{}
	var _ ValueF64 = &RSI{}
	var _ ValueF64 = &MACD{}

	inds := []Indicator{NewSMA(3), NewEMA(3), NewRSI(3), NewMACD(2, 3, 2)}
	for _, ind := range inds {
		assert.False(t, ind.Ready(), "%s should not be ready initially", ind.Name())

		for _, p := range testPrices() {
			ind.Update(p)
		}
		assert.True(t, ind.Ready(), "%s should be ready after warmup", ind.Name())

		ind.Reset()
		assert.False(t, ind.Ready(), "%s should not be ready after reset", ind.Name())
	}
}
