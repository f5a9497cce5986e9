package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func bar(i int, close float64) Bar {
	return Bar{
		Time:   t0.Add(time.Duration(i) * time.Hour),
		Open:   close,
		High:   close + 1,
		Low:    close - 1,
		Close:  close,
		Volume: 10,
	}
}

func TestBarValidate(t *testing.T) {
	tests := []struct {
		name    string
		bar     Bar
		wantErr string
	}{
		{name: "valid", bar: bar(0, 100)},
		{name: "missing time", bar: Bar{Open: 1, High: 1, Low: 1, Close: 1}, wantErr: "no timestamp"},
		{name: "nan close", bar: Bar{Time: t0, Open: 1, High: 2, Low: 0, Close: math.NaN()}, wantErr: "not finite"},
		{name: "negative volume", bar: Bar{Time: t0, Open: 1, High: 2, Low: 0, Close: 1, Volume: -1}, wantErr: "volume is negative"},
		{name: "low above high", bar: Bar{Time: t0, Open: 1, High: 1, Low: 2, Close: 1}, wantErr: "low 2 above high 1"},
		{name: "open above high", bar: Bar{Time: t0, Open: 3, High: 2, Low: 1, Close: 1}, wantErr: "open 3 outside"},
		{name: "close below low", bar: Bar{Time: t0, Open: 1.5, High: 2, Low: 1, Close: 0.5}, wantErr: "close 0.5 outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bar.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("sorts and dedups with last wins", func(t *testing.T) {
		in := []Bar{bar(2, 12), bar(0, 10), bar(1, 11), bar(1, 15)}

		out, stats, err := Normalize(in, 10)
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, 1, stats.Duplicates)
		assert.Equal(t, 0, stats.Trimmed)
		assert.Equal(t, []float64{10, 15, 12}, Series{Bars: out}.Closes())
		assert.NoError(t, Series{Bars: out}.Validate())

		// input untouched
		assert.Equal(t, 12.0, in[0].Close)
	})

	t.Run("keeps most recent limit bars", func(t *testing.T) {
		var in []Bar
		for i := 0; i < 5; i++ {
			in = append(in, bar(i, float64(100+i)))
		}

		out, stats, err := Normalize(in, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Trimmed)
		assert.Equal(t, []float64{102, 103, 104}, Series{Bars: out}.Closes())
	})

	t.Run("converts to utc", func(t *testing.T) {
		b := bar(0, 10)
		b.Time = b.Time.In(time.FixedZone("ICT", 7*60*60))

		out, _, err := Normalize([]Bar{b}, 1)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, out[0].Time.Location())
		assert.True(t, out[0].Time.Equal(t0))
	})

	t.Run("rejects invalid bar", func(t *testing.T) {
		b := bar(0, 10)
		b.High = 5
		_, _, err := Normalize([]Bar{b}, 1)
		assert.Error(t, err)
	})
}

func TestSeriesValidate(t *testing.T) {
	s := Series{Bars: []Bar{bar(0, 1), bar(1, 2)}}
	assert.NoError(t, s.Validate())

	s.Bars = append(s.Bars, bar(1, 3))
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not after")
}
