package benchmark

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureCallsOpEachIteration(t *testing.T) {
	calls := 0
	samples, err := Measure(25, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 25, calls)
	assert.Len(t, samples, 25)
	for _, d := range samples {
		assert.GreaterOrEqual(t, d, time.Duration(0))
	}
}

func TestMeasureStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	samples, err := Measure(10, func() error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
	assert.Len(t, samples, 3)
}

func TestMeasureRejectsInvalidIterations(t *testing.T) {
	_, err := Measure(0, func() error { return nil })
	assert.ErrorIs(t, err, ErrInvalidIterations)
}

func TestSamplesMeanIsSumOverN(t *testing.T) {
	for _, samples := range []Samples{
		{time.Second},
		{time.Second, 2 * time.Second, 4 * time.Second},
		{3 * time.Microsecond, 1 * time.Millisecond, 17 * time.Nanosecond, 500 * time.Microsecond},
	} {
		var sum float64
		for _, d := range samples {
			sum += d.Seconds()
		}
		assert.Equal(t, sum/float64(len(samples)), samples.Mean())
	}
}

func TestSamplesStatistics(t *testing.T) {
	samples := Samples{time.Second, 3 * time.Second, 2 * time.Second, 10 * time.Second}

	assert.Equal(t, 16*time.Second, samples.Total())
	assert.Equal(t, 4.0, samples.Mean())
	assert.Equal(t, 2.5, samples.Median())
	assert.Greater(t, samples.Percentile(99), 2.5)
}

func TestEmptySamples(t *testing.T) {
	var samples Samples
	assert.Zero(t, samples.Mean())
	assert.Zero(t, samples.Median())
	assert.Zero(t, samples.Percentile(99))
	assert.Zero(t, samples.Total())
}
