// Package siggen provides a simulated microwave signal generator with
// an integrated photon counter, used to demonstrate and test sweep
// measurements without hardware on the bench.
package siggen

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"
)

// operating limits of the simulated generator
const (
	FreqMin = 100e3 // Hz
	FreqMax = 10e9  // Hz
	AmpMin  = -30.0 // dBm
	AmpMax  = 10.0  // dBm
)

// parameters of the simulated photoluminescence response.  The dip is
// placed at the zero-field NV center resonance so sweeps over 2-4 GHz
// look like real data.
const (
	resonanceHz = 2.87e9
	linewidthHz = 25e6  // FWHM
	contrast    = 0.30  // fractional dip depth
	countRate   = 500e3 // baseline counts per second
)

// SigGen is a simulated signal generator.  Access is assumed to be
// single-threaded; the HTTP layer above it serializes requests with
// the locker middleware.
type SigGen struct {
	outputEn  bool
	amplitude float64
	frequency float64
	rng       *rand.Rand
}

// New returns a SigGen with output disabled, amplitude 0 dBm, and
// frequency at the bottom of the range
func New() *SigGen {
	return &SigGen{
		frequency: FreqMin,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetFrequency returns the current output frequency in Hz
func (sg *SigGen) GetFrequency() (float64, error) {
	return sg.frequency, nil
}

// SetFrequency changes the output frequency (Hz).  Out of range values
// are rejected and the prior frequency is kept.
func (sg *SigGen) SetFrequency(v float64) error {
	if v < FreqMin || v > FreqMax {
		return fmt.Errorf("frequency must be in range [100kHz, 10GHz], got %g Hz", v)
	}
	sg.frequency = v
	log.Printf("set frequency to %g Hz", sg.frequency)
	return nil
}

// GetAmplitude returns the current output amplitude in dBm
func (sg *SigGen) GetAmplitude() (float64, error) {
	return sg.amplitude, nil
}

// SetAmplitude changes the output amplitude (dBm).  Out of range values
// are rejected and the prior amplitude is kept.
func (sg *SigGen) SetAmplitude(v float64) error {
	if v < AmpMin || v > AmpMax {
		return fmt.Errorf("amplitude must be in range [-30dBm, 10dBm], got %g dBm", v)
	}
	sg.amplitude = v
	log.Printf("set amplitude to %g dBm", sg.amplitude)
	return nil
}

// EnableOutput turns on the output connector
func (sg *SigGen) EnableOutput() error {
	sg.outputEn = true
	log.Println("output enabled")
	return nil
}

// DisableOutput turns off the output connector
func (sg *SigGen) DisableOutput() error {
	sg.outputEn = false
	log.Println("output disabled")
	return nil
}

// GetOutput returns true if the output connector is active
func (sg *SigGen) GetOutput() (bool, error) {
	return sg.outputEn, nil
}

// Calibrate runs the (simulated) internal calibration routine
func (sg *SigGen) Calibrate() error {
	log.Println("sig-gen calibration succeeded")
	return nil
}

// Counts integrates simulated photon counts over the given window.
// The count rate carries a Lorentzian dip at the resonance when the
// microwave output is enabled, plus shot noise.  The call blocks for
// the integration window, like the hardware it stands in for.
func (sg *SigGen) Counts(integration time.Duration) (float64, error) {
	if integration <= 0 {
		return 0, fmt.Errorf("integration time must be positive, got %v", integration)
	}
	time.Sleep(integration)
	rate := float64(countRate)
	if sg.outputEn {
		// detuning in half-linewidths
		d := (sg.frequency - resonanceHz) / (linewidthHz / 2)
		rate *= 1 - contrast/(1+d*d)
	}
	mean := rate * integration.Seconds()
	// gaussian approximation to shot noise
	n := mean + sg.rng.NormFloat64()*math.Sqrt(mean)
	if n < 0 {
		n = 0
	}
	return math.Round(n), nil
}
