// Package gateway provides a client proxy to instruments served over
// the generichttp routes, so measurement routines can drive hardware
// on another machine as if it were local.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spinlab/odmr/server"

	"github.com/cenkalti/backoff"
)

// Client is a connection to one instrument on an instrument server.
// It satisfies the sweep.Instrument interface.
type Client struct {
	addr     string
	endpoint string
	hc       *http.Client
}

// Dial verifies an instrument server is reachable at addr (host:port)
// and returns a client bound to the instrument mounted at endpoint,
// e.g. Dial("localhost:8000", "/odmr/siggen").  Connection attempts
// use an exponential backoff so a server still coming up is not
// thrashed.
func Dial(addr, endpoint string) (*Client, error) {
	endpoint = "/" + strings.Trim(endpoint, "/")
	c := &Client{
		addr:     addr,
		endpoint: endpoint,
		hc:       &http.Client{Timeout: 10 * time.Second},
	}
	op := func() error {
		_, err := c.GetFrequency()
		return err
	}
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     25 * time.Millisecond,
		RandomizationFactor: 0.,
		Multiplier:          2.,
		MaxInterval:         1 * time.Second,
		MaxElapsedTime:      3 * time.Second,
		Clock:               backoff.SystemClock})
	if err != nil {
		return nil, fmt.Errorf("could not reach instrument at %s%s: %w", addr, endpoint, err)
	}
	return c, nil
}

// Close releases the client's idle connections
func (c *Client) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *Client) url(route string) string {
	return "http://" + c.addr + c.endpoint + route
}

// post sends body as JSON and decodes the response into out if out is
// non-nil
func (c *Client) post(route string, body, out interface{}) error {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return err
	}
	resp, err := c.hc.Post(c.url(route), "application/json", buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d: %s", route, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) get(route string, out interface{}) error {
	resp, err := c.hc.Get(c.url(route))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d: %s", route, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SetFrequency commands the generator to the given frequency, Hz
func (c *Client) SetFrequency(hz float64) error {
	return c.post("/frequency", server.FloatT{F64: hz}, nil)
}

// GetFrequency returns the generator's current frequency, Hz
func (c *Client) GetFrequency() (float64, error) {
	f := server.FloatT{}
	err := c.get("/frequency", &f)
	return f.F64, err
}

// SetAmplitude commands the generator to the given amplitude, dBm
func (c *Client) SetAmplitude(dBm float64) error {
	return c.post("/amplitude", server.FloatT{F64: dBm}, nil)
}

// GetAmplitude returns the generator's current amplitude, dBm
func (c *Client) GetAmplitude() (float64, error) {
	f := server.FloatT{}
	err := c.get("/amplitude", &f)
	return f.F64, err
}

// EnableOutput begins signal output on the generator
func (c *Client) EnableOutput() error {
	return c.post("/output", server.BoolT{Bool: true}, nil)
}

// DisableOutput ceases signal output on the generator
func (c *Client) DisableOutput() error {
	return c.post("/output", server.BoolT{Bool: false}, nil)
}

// GetOutput queries whether the generator output is active
func (c *Client) GetOutput() (bool, error) {
	b := server.BoolT{}
	err := c.get("/output", &b)
	return b.Bool, err
}

// Calibrate runs the instrument's calibration routine
func (c *Client) Calibrate() error {
	return c.post("/calibrate", nil, nil)
}

// Counts accumulates photon counts over the integration window
func (c *Client) Counts(integration time.Duration) (float64, error) {
	out := server.FloatT{}
	in := server.FloatT{F64: integration.Seconds()}
	err := c.post("/cnts", in, &out)
	return out.F64, err
}

// Lock marks the instrument as in use so other clients are bounced
// with 423 until Unlock
func (c *Client) Lock() error {
	return c.post("/lock", server.BoolT{Bool: true}, nil)
}

// Unlock releases a held lock
func (c *Client) Unlock() error {
	return c.post("/lock", server.BoolT{Bool: false}, nil)
}
