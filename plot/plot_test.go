package plot_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spinlab/odmr/data"
	"github.com/spinlab/odmr/plot"
)

func TestAverageTwoIterations(t *testing.T) {
	series := []data.Series{
		{[]float64{1, 2}, []float64{10, 20}},
		{[]float64{1, 2}, []float64{30, 40}},
	}
	avg, err := plot.Average(series)
	if err != nil {
		t.Fatalf("average errored: %v", err)
	}
	expectedX := []float64{1, 2}
	expectedY := []float64{20, 30}
	for i := range expectedX {
		if avg[0][i] != expectedX[i] {
			t.Errorf("x row: expected %g at %d, got %g", expectedX[i], i, avg[0][i])
		}
		if avg[1][i] != expectedY[i] {
			t.Errorf("y row: expected %g at %d, got %g", expectedY[i], i, avg[1][i])
		}
	}
}

func TestAverageSingleIterationIsIdentity(t *testing.T) {
	series := []data.Series{{[]float64{1, 2, 3}, []float64{4, 5, 6}}}
	avg, err := plot.Average(series)
	if err != nil {
		t.Fatalf("average errored: %v", err)
	}
	for i, v := range []float64{4, 5, 6} {
		if avg[1][i] != v {
			t.Errorf("expected %g at %d, got %g", v, i, avg[1][i])
		}
	}
}

func TestAverageEmptyErrors(t *testing.T) {
	if _, err := plot.Average(nil); !errors.Is(err, plot.ErrNoSeries) {
		t.Errorf("expected ErrNoSeries, got %v", err)
	}
}

func TestAverageLengthMismatchErrors(t *testing.T) {
	series := []data.Series{
		{[]float64{1, 2}, []float64{10, 20}},
		{[]float64{1}, []float64{30}},
	}
	if _, err := plot.Average(series); err == nil {
		t.Error("expected error for mismatched series lengths")
	}
}

func TestSelections(t *testing.T) {
	series := []data.Series{
		{[]float64{1}, []float64{10}},
		{[]float64{1}, []float64{20}},
		{[]float64{1}, []float64{30}},
	}
	first, err := plot.First(series)
	if err != nil || first[1][0] != 10 {
		t.Errorf("expected first iteration 10, got %v (%v)", first[1], err)
	}
	latest, err := plot.Latest(series)
	if err != nil || latest[1][0] != 30 {
		t.Errorf("expected latest iteration 30, got %v (%v)", latest[1], err)
	}
	if got := plot.LatestN(series, 2); len(got) != 2 || got[0][1][0] != 20 {
		t.Errorf("expected the 2 newest iterations, got %v", got)
	}
	if got := plot.LatestN(series, 10); len(got) != 3 {
		t.Errorf("expected all 3 iterations when n exceeds history, got %d", len(got))
	}
}

func TestRenderLineProducesHTML(t *testing.T) {
	rec := data.Record{
		Title:  "Optically Detected Magnetic Resonance",
		XLabel: "Frequency (GHz)",
		YLabel: "Counts",
	}
	s := data.Series{[]float64{3.0, 3.5, 4.0}, []float64{5000, 3500, 5000}}
	buf := &bytes.Buffer{}
	if err := plot.RenderLine(buf, rec, "avg", s); err != nil {
		t.Fatalf("render errored: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Optically Detected Magnetic Resonance") {
		t.Error("expected chart title in rendered output")
	}
	if !strings.Contains(out, "3.5000") {
		t.Error("expected formatted frequency in rendered output")
	}
}
