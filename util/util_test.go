package util_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/spinlab/odmr/util"
)

func ExampleLinspace() {
	fmt.Println(util.Linspace(3, 4, 5))
	// Output: [3 3.25 3.5 3.75 4]
}

func ExampleLinspace_singlePoint() {
	fmt.Println(util.Linspace(3e9, 4e9, 1))
	// Output: [3e+09]
}

func TestLinspaceEndpoints(t *testing.T) {
	for _, n := range []int{2, 3, 5, 100, 101} {
		seq := util.Linspace(3e9, 4e9, n)
		if len(seq) != n {
			t.Errorf("expected length %d, got %d", n, len(seq))
		}
		if seq[0] != 3e9 {
			t.Errorf("expected first element 3e9, got %g", seq[0])
		}
		if seq[len(seq)-1] != 4e9 {
			t.Errorf("expected last element 4e9, got %g", seq[len(seq)-1])
		}
	}
}

func TestLinspaceMonotonic(t *testing.T) {
	seq := util.Linspace(100e3, 10e9, 997)
	for i := 1; i < len(seq); i++ {
		if seq[i] < seq[i-1] {
			t.Errorf("sequence not monotonically non-decreasing at index %d: %g < %g", i, seq[i], seq[i-1])
		}
	}
}

func TestLinspaceSpacing(t *testing.T) {
	seq := util.Linspace(0, 1, 11)
	for i, v := range seq {
		expected := float64(i) / 10
		if math.Abs(v-expected) > 1e-12 {
			t.Errorf("expected %g at position %d, got %g", expected, i, v)
		}
	}
}

func TestClampHigh(t *testing.T) {
	var (
		low   = 0.
		high  = 10.
		input = 20.
	)
	clamped := util.Clamp(input, low, high)
	if clamped != high {
		t.Errorf("expected out of range value %f to be clipped to %f < x < %f, got %f", input, low, high, clamped)
	}
}

func TestClampLow(t *testing.T) {
	var (
		low   = 0.
		high  = 10.
		input = -1.
	)
	clamped := util.Clamp(input, low, high)
	if clamped != low {
		t.Errorf("expected out of range value %f to be clipped to %f < x < %f, got %f", input, low, high, clamped)
	}
}

func TestSecsToDuration(t *testing.T) {
	var dur time.Duration = 123456789
	secs := dur.Seconds()
	out := util.SecsToDuration(secs)
	if out != dur {
		t.Errorf("expected SecsToDuration to round trip, output %v != expected %v", out, dur)
	}
}
