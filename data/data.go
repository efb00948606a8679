/*Package data moves measurement records between producers and consumers
over named datasets.

A producer opens a Source on a dataset and pushes Records; consumers
open Sinks on the same dataset and poll them.  Within one process the
Hub connects the two directly; across processes the websocket Relay
carries the same records as JSON.  Delivery is latest-wins: a slow
consumer sees the newest record, never a backlog, and a publisher is
never blocked by its subscribers.
*/
package data

import "fmt"

// Series is a 2xN array pairing x values (row 0) with y values (row 1).
// It marshals to JSON as [[x...],[y...]].
type Series [2][]float64

// NewSeries pairs x and y into a Series, erroring on a length mismatch
func NewSeries(x, y []float64) (Series, error) {
	if len(x) != len(y) {
		return Series{}, fmt.Errorf("x and y must be the same length, got %d and %d", len(x), len(y))
	}
	return Series{x, y}, nil
}

// Len returns the number of points in the series
func (s Series) Len() int {
	return len(s[0])
}

// Record is one published snapshot of a measurement: its parameters,
// display metadata, and every series accumulated so far
type Record struct {
	Params   map[string]interface{} `json:"params"`
	Title    string                 `json:"title"`
	XLabel   string                 `json:"xlabel"`
	YLabel   string                 `json:"ylabel"`
	Datasets map[string][]Series    `json:"datasets"`
}
