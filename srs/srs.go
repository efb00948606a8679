// Package srs provides an interface to Stanford Research Systems
// signal generators (SG380 series)
package srs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spinlab/odmr/comm"

	"github.com/tarm/serial"
)

// makeSerConf makes a new serial.Config with correct parity, baud, etc, set.
func makeSerConf(addr string) *serial.Config {
	return &serial.Config{
		Name:        addr,
		Baud:        115200,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: 10 * time.Minute}
}

// SG380 is an interface to the SG382 through SG396 signal generators
type SG380 struct {
	*comm.RemoteDevice
}

// NewSG380 creates a new SG380 instance with the communication set up
func NewSG380(addr string, isSerial bool) *SG380 {
	term := &comm.Terminators{Rx: '\n', Tx: '\n'}
	cfg := makeSerConf(addr)
	rd := comm.NewRemoteDevice(addr, isSerial, term, cfg)
	return &SG380{&rd}
}

func (sg *SG380) writeOnlyBus(cmds ...string) error {
	err := sg.RemoteDevice.Open()
	if err != nil {
		return err
	}
	defer sg.CloseEventually()
	s := strings.Join(cmds, " ")
	return sg.RemoteDevice.Send([]byte(s))
}

func (sg *SG380) readString(cmds ...string) (string, error) {
	err := sg.writeOnlyBus(cmds...)
	if err != nil {
		return "", err
	}
	resp, err := sg.RemoteDevice.Recv()
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

func (sg *SG380) readFloat(cmds ...string) (float64, error) {
	s, err := sg.readString(cmds...)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

// SetFrequency configures the output frequency of the generator in Hz
func (sg *SG380) SetFrequency(hz float64) error {
	// FREQ <Hz>
	s := strconv.FormatFloat(hz, 'G', -1, 64)
	return sg.writeOnlyBus("FREQ", s)
}

// GetFrequency returns the frequency of the generator in Hz
func (sg *SG380) GetFrequency() (float64, error) {
	// FREQ?
	return sg.readFloat("FREQ?")
}

// SetAmplitude configures the type-N RF output amplitude in dBm
func (sg *SG380) SetAmplitude(dBm float64) error {
	// AMPR <dBm>
	s := strconv.FormatFloat(dBm, 'G', -1, 64)
	return sg.writeOnlyBus("AMPR", s)
}

// GetAmplitude returns the type-N RF output amplitude in dBm
func (sg *SG380) GetAmplitude() (float64, error) {
	// AMPR?
	return sg.readFloat("AMPR?")
}

// EnableOutput enables the type-N RF output of the generator
func (sg *SG380) EnableOutput() error {
	// ENBR 1
	return sg.writeOnlyBus("ENBR", "1")
}

// DisableOutput disables the type-N RF output of the generator
func (sg *SG380) DisableOutput() error {
	// ENBR 0
	return sg.writeOnlyBus("ENBR", "0")
}

// GetOutput returns true if the generator is currently outputting a signal
func (sg *SG380) GetOutput() (bool, error) {
	// ENBR?
	s, err := sg.readString("ENBR?")
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(s)
}

// Calibrate runs the internal self test and errors if it does not pass
func (sg *SG380) Calibrate() error {
	// *TST? returns 0 on success
	s, err := sg.readString("*TST?")
	if err != nil {
		return err
	}
	if strings.TrimSpace(s) != "0" {
		return fmt.Errorf("self test failed with status %s", s)
	}
	return nil
}

// PopError gets a single error from the queue on the generator
func (sg *SG380) PopError() error {
	// LERR?
	s, err := sg.readString("LERR?")
	if err != nil {
		return err
	}
	if strings.TrimSpace(s) == "0" {
		return nil
	}
	return fmt.Errorf("instrument error code %s", s)
}
