// Package tmc provides an HTTP interface to test and measurement devices
package tmc

import (
	"encoding/json"
	"go/types"
	"net/http"
	"time"

	"github.com/spinlab/odmr/generichttp"
	"github.com/spinlab/odmr/server"
	"github.com/spinlab/odmr/util"
)

// SignalGenerator describes an interface to a microwave or RF signal generator
type SignalGenerator interface {
	// SetFrequency configures the frequency of the output waveform, Hz
	SetFrequency(float64) error

	// GetFrequency gets the frequency of the output waveform, Hz
	GetFrequency() (float64, error)

	// SetAmplitude configures the amplitude of the output waveform, dBm
	SetAmplitude(float64) error

	// GetAmplitude retrieves the amplitude of the output waveform, dBm
	GetAmplitude() (float64, error)

	// EnableOutput begins outputting the signal on the output connector
	EnableOutput() error

	// DisableOutput ceases output on the output connector
	DisableOutput() error

	// GetOutput queries if the generator output is active
	GetOutput() (bool, error)

	// Calibrate runs the generator's internal calibration routine
	Calibrate() error
}

// PhotonCounter describes an interface to a photon counting device
type PhotonCounter interface {
	// Counts accumulates photon counts over the integration window
	Counts(time.Duration) (float64, error)
}

// HTTPSignalGenerator injects an HTTP interface to a signal generator
// into a route table
func HTTPSignalGenerator(sg SignalGenerator, table generichttp.RouteTable) {
	rt := table
	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/frequency"}] = GetFrequency(sg)
	rt[generichttp.MethodPath{Method: http.MethodPost, Path: "/frequency"}] = SetFrequency(sg)

	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/amplitude"}] = GetAmplitude(sg)
	rt[generichttp.MethodPath{Method: http.MethodPost, Path: "/amplitude"}] = SetAmplitude(sg)

	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/output"}] = GetOutput(sg)
	rt[generichttp.MethodPath{Method: http.MethodPost, Path: "/output"}] = SetOutput(sg)

	rt[generichttp.MethodPath{Method: http.MethodPost, Path: "/calibrate"}] = Calibrate(sg)
}

// HTTPPhotonCounter injects an HTTP interface to a photon counter
// into a route table
func HTTPPhotonCounter(pc PhotonCounter, table generichttp.RouteTable) {
	table[generichttp.MethodPath{Method: http.MethodPost, Path: "/cnts"}] = Counts(pc)
}

// HTTPSignalGeneratorT holds a signal generator and its route table,
// satisfying generichttp.HTTPer
type HTTPSignalGeneratorT struct {
	SG SignalGenerator

	RouteTable generichttp.RouteTable
}

// NewHTTPSignalGenerator wraps a signal generator in an HTTP interface.
// If the generator also counts photons, the counting route is added too.
func NewHTTPSignalGenerator(sg SignalGenerator) HTTPSignalGeneratorT {
	rt := generichttp.RouteTable{}
	HTTPSignalGenerator(sg, rt)
	if pc, ok := sg.(PhotonCounter); ok {
		HTTPPhotonCounter(pc, rt)
	}
	return HTTPSignalGeneratorT{SG: sg, RouteTable: rt}
}

// RT satisfies generichttp.HTTPer
func (h HTTPSignalGeneratorT) RT() generichttp.RouteTable {
	return h.RouteTable
}

// SetFrequency exposes an HTTP interface to the SetFrequency method
func SetFrequency(sg SignalGenerator) http.HandlerFunc {
	return generichttp.SetFloat(sg.SetFrequency)
}

// GetFrequency exposes an HTTP interface to the GetFrequency method
func GetFrequency(sg SignalGenerator) http.HandlerFunc {
	return generichttp.GetFloat(sg.GetFrequency)
}

// SetAmplitude exposes an HTTP interface to the SetAmplitude method
func SetAmplitude(sg SignalGenerator) http.HandlerFunc {
	return generichttp.SetFloat(sg.SetAmplitude)
}

// GetAmplitude exposes an HTTP interface to the GetAmplitude method
func GetAmplitude(sg SignalGenerator) http.HandlerFunc {
	return generichttp.GetFloat(sg.GetAmplitude)
}

// SetOutput exposes an HTTP interface to the Output control methods
func SetOutput(sg SignalGenerator) http.HandlerFunc {
	return generichttp.SetBool(sg.EnableOutput, sg.DisableOutput)
}

// GetOutput exposes an HTTP interface to the GetOutput method
func GetOutput(sg SignalGenerator) http.HandlerFunc {
	return generichttp.GetBool(sg.GetOutput)
}

// Calibrate exposes an HTTP interface to the Calibrate method
func Calibrate(sg SignalGenerator) http.HandlerFunc {
	return generichttp.Call(sg.Calibrate)
}

// Counts exposes an HTTP interface to the Counts method.  The request
// body carries the integration time in seconds as {'f64': value}, the
// response carries the counts as {'f64': value}
func Counts(pc PhotonCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := server.FloatT{}
		err := json.NewDecoder(r.Body).Decode(&f)
		defer r.Body.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cnts, err := pc.Counts(util.SecsToDuration(f.F64))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hp := server.HumanPayload{T: types.Float64, Float: cnts}
		hp.EncodeAndRespond(w, r)
	}
}
