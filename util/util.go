// Package util contains misc internal utilities.
package util

import "time"

// Linspace returns n evenly spaced values over [start, stop], inclusive
// of both endpoints.  n=1 returns []float64{start}.  n < 1 returns an
// empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = start + float64(i)*step
	}
	// guard against accumulated float error at the right endpoint
	out[n-1] = stop
	return out
}

// Clamp limits x to the range [low, high]
func Clamp(x, low, high float64) float64 {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}

// SecsToDuration converts a number of seconds to a time.Duration
func SecsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
