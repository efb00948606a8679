package data_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"

	"github.com/spinlab/odmr/data"
)

// relayServer stands up a hub + relay on a random port and returns the
// host:port to dial
func relayServer(t *testing.T) string {
	t.Helper()
	hub := data.NewHub()
	relay := data.NewRelay(hub)
	r := chi.NewRouter()
	r.Route("/data", func(r chi.Router) {
		relay.Bind(r)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestSourceToSinkRoundTrip(t *testing.T) {
	addr := relayServer(t)

	sink, err := data.NewSink(addr, "odmr")
	if err != nil {
		t.Fatalf("could not open sink: %v", err)
	}
	defer sink.Close()

	src, err := data.NewSource(addr, "odmr")
	if err != nil {
		t.Fatalf("could not open source: %v", err)
	}
	defer src.Close()

	freqs := []float64{3.0, 3.25, 3.5, 3.75, 4.0}
	counts := []float64{10, 10, 10, 10, 10}
	series, err := data.NewSeries(freqs, counts)
	if err != nil {
		t.Fatalf("could not build series: %v", err)
	}
	rec := data.Record{
		Params:   map[string]interface{}{"start": 3e9, "stop": 4e9},
		Title:    "Optically Detected Magnetic Resonance",
		XLabel:   "Frequency (GHz)",
		YLabel:   "Counts",
		Datasets: map[string][]data.Series{"mydata": {series}},
	}
	if err := src.Push(rec); err != nil {
		t.Fatalf("push errored: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !sink.Pop() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for record to arrive at sink")
		}
		time.Sleep(5 * time.Millisecond)
	}

	got := sink.Datasets["mydata"]
	if len(got) != 1 {
		t.Fatalf("expected 1 series, got %d", len(got))
	}
	if got[0].Len() != 5 {
		t.Errorf("expected 5 points, got %d", got[0].Len())
	}
	for i, f := range freqs {
		if got[0][0][i] != f {
			t.Errorf("frequency row mismatch at %d: expected %g, got %g", i, f, got[0][0][i])
		}
		if got[0][1][i] != 10 {
			t.Errorf("count row mismatch at %d: expected 10, got %g", i, got[0][1][i])
		}
	}
	if sink.Title != "Optically Detected Magnetic Resonance" {
		t.Errorf("title did not survive the round trip, got %q", sink.Title)
	}

	// nothing new published, pop must report false without blocking
	if sink.Pop() {
		t.Error("expected no new data on second pop")
	}
}

func TestSinkSeesNewestRecord(t *testing.T) {
	addr := relayServer(t)

	sink, err := data.NewSink(addr, "odmr")
	if err != nil {
		t.Fatalf("could not open sink: %v", err)
	}
	defer sink.Close()

	src, err := data.NewSource(addr, "odmr")
	if err != nil {
		t.Fatalf("could not open source: %v", err)
	}
	defer src.Close()

	for i := 1; i <= 3; i++ {
		rec := data.Record{Datasets: map[string][]data.Series{"mydata": make([]data.Series, i)}}
		if err := src.Push(rec); err != nil {
			t.Fatalf("push %d errored: %v", i, err)
		}
	}

	// wait for the final record; intermediate ones may or may not be seen
	deadline := time.Now().Add(2 * time.Second)
	for {
		if sink.Pop() && len(sink.Datasets["mydata"]) == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for newest record, have %d series", len(sink.Datasets["mydata"]))
		}
		time.Sleep(5 * time.Millisecond)
	}
}
