package benchmark

import (
	"errors"
	"time"

	"github.com/montanaflynn/stats"
)

var ErrInvalidIterations = errors.New("iterations must be at least 1")

// Samples holds one wall-clock duration per timed call
type Samples []time.Duration

// Measure calls op iterations times in sequence and records how long each
// call took. The first error from op stops the loop.
func Measure(iterations int, op func() error) (Samples, error) {
	if iterations < 1 {
		return nil, ErrInvalidIterations
	}

	samples := make(Samples, 0, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		err := op()
		samples = append(samples, time.Since(start))
		if err != nil {
			return samples, err
		}
	}
	return samples, nil
}

// Total returns the sum of all samples
func (s Samples) Total() time.Duration {
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total
}

// Mean returns sum(samples)/N in seconds. No samples are dropped.
func (s Samples) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	m, _ := stats.Mean(s.seconds())
	return m
}

// Median returns the median sample in seconds
func (s Samples) Median() float64 {
	m, err := stats.Median(s.seconds())
	if err != nil {
		return 0
	}
	return m
}

// Percentile returns the p-th percentile sample in seconds
func (s Samples) Percentile(p float64) float64 {
	v, err := stats.Percentile(s.seconds(), p)
	if err != nil {
		return 0
	}
	return v
}

func (s Samples) seconds() stats.Float64Data {
	data := make(stats.Float64Data, len(s))
	for i, d := range s {
		data[i] = d.Seconds()
	}
	return data
}

// Result holds the timings of one store/hash pair
type Result struct {
	Store   string
	Hash    string
	Query   Samples
	Hashing Samples
}
