// Package sweep implements frequency-sweep measurement routines that
// drive a signal generator and stream accumulated results to a dataset.
package sweep

import (
	"errors"
	"fmt"
	"time"

	"github.com/spinlab/odmr/data"
	"github.com/spinlab/odmr/util"
)

// fixed measurement constants, matching the demo experiment
const (
	// Amplitude is the generator output used for every sweep, dBm
	Amplitude = 6.5

	// Integration is the photon counting window per frequency point
	Integration = 10 * time.Millisecond

	// SeriesName is the key the accumulated arrays are published under
	SeriesName = "mydata"
)

// sweepable frequency limits, Hz
const (
	FreqMin = 100e3
	FreqMax = 10e9
)

// ErrStopped is returned by Run when the sweep is cancelled before all
// iterations complete
var ErrStopped = errors.New("sweep stopped before completion")

// Instrument is the slice of a signal generator + photon counter that
// a sweep drives
type Instrument interface {
	SetAmplitude(float64) error
	EnableOutput() error
	SetFrequency(float64) error
	Counts(time.Duration) (float64, error)
}

// Publisher receives the accumulated results after every iteration
type Publisher interface {
	Push(data.Record) error
}

// Params holds the user-facing configuration of one sweep
type Params struct {
	// Dataset is the name results are published under
	Dataset string `yaml:"Dataset"`

	// Start and Stop bound the swept band, Hz
	Start float64 `yaml:"Start"`
	Stop  float64 `yaml:"Stop"`

	// NumPoints is the length of the frequency sequence, inclusive of
	// both endpoints
	NumPoints int `yaml:"NumPoints"`

	// Iterations is the number of times the sweep is repeated
	Iterations int `yaml:"Iterations"`
}

// DefaultParams returns the demo defaults: 3-4 GHz, 100 points, 5
// iterations, dataset "odmr"
func DefaultParams() Params {
	return Params{
		Dataset:    "odmr",
		Start:      3e9,
		Stop:       4e9,
		NumPoints:  100,
		Iterations: 5,
	}
}

// Validate checks the parameter set against the sweepable limits
func (p Params) Validate() error {
	if p.Dataset == "" {
		return errors.New("dataset name must not be empty")
	}
	if p.Start < FreqMin || p.Start > FreqMax {
		return fmt.Errorf("start frequency must be in range [100kHz, 10GHz], got %g Hz", p.Start)
	}
	if p.Stop < FreqMin || p.Stop > FreqMax {
		return fmt.Errorf("stop frequency must be in range [100kHz, 10GHz], got %g Hz", p.Stop)
	}
	if p.NumPoints < 1 {
		return fmt.Errorf("number of points must be >= 1, got %d", p.NumPoints)
	}
	if p.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", p.Iterations)
	}
	return nil
}

// record assembles the full accumulated history plus metadata
func (p Params) record(accum []data.Series) data.Record {
	return data.Record{
		Params: map[string]interface{}{
			"start":      p.Start,
			"stop":       p.Stop,
			"num_points": p.NumPoints,
			"iterations": p.Iterations,
		},
		Title:    "Optically Detected Magnetic Resonance",
		XLabel:   "Frequency (GHz)",
		YLabel:   "Counts",
		Datasets: map[string][]data.Series{SeriesName: accum},
	}
}

// Run executes the sweep on inst, publishing the accumulated results
// to pub after every iteration.  The amplitude is set and the output
// enabled once, up front.  Any instrument or publisher error aborts
// the sweep and propagates.  Closing stop cancels between points; the
// in-flight iteration is lost but previously published iterations
// remain with subscribers.
func Run(inst Instrument, pub Publisher, p Params, stop <-chan struct{}) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := inst.SetAmplitude(Amplitude); err != nil {
		return err
	}
	if err := inst.EnableOutput(); err != nil {
		return err
	}

	var accum []data.Series
	for i := 0; i < p.Iterations; i++ {
		freqs := util.Linspace(p.Start, p.Stop, p.NumPoints)
		counts := make([]float64, p.NumPoints)
		for j, freq := range freqs {
			select {
			case <-stop:
				return ErrStopped
			default:
			}
			if err := inst.SetFrequency(freq); err != nil {
				return err
			}
			c, err := inst.Counts(Integration)
			if err != nil {
				return err
			}
			counts[j] = c
		}

		ghz := make([]float64, len(freqs))
		for j, f := range freqs {
			ghz[j] = f / 1e9
		}
		series, err := data.NewSeries(ghz, counts)
		if err != nil {
			return err
		}
		accum = append(accum, series)

		if err := pub.Push(p.record(accum)); err != nil {
			return err
		}
	}
	return nil
}
