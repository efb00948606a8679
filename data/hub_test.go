package data_test

import (
	"testing"

	"github.com/spinlab/odmr/data"
)

func record(n int) data.Record {
	return data.Record{
		Title:    "test",
		Datasets: map[string][]data.Series{"mydata": make([]data.Series, n)},
	}
}

func TestPopWithoutPublishReturnsFalse(t *testing.T) {
	hub := data.NewHub()
	sub := hub.Subscribe("odmr")
	defer sub.Close()
	if _, ok := sub.Pop(); ok {
		t.Error("expected no data before any publish")
	}
}

func TestPublishReachesSubscriber(t *testing.T) {
	hub := data.NewHub()
	sub := hub.Subscribe("odmr")
	defer sub.Close()
	hub.Publish("odmr", record(1))
	rec, ok := sub.Pop()
	if !ok {
		t.Fatal("expected data after publish")
	}
	if len(rec.Datasets["mydata"]) != 1 {
		t.Errorf("expected 1 series, got %d", len(rec.Datasets["mydata"]))
	}
	if _, ok := sub.Pop(); ok {
		t.Error("expected second pop to report no new data")
	}
}

func TestLatestWins(t *testing.T) {
	hub := data.NewHub()
	sub := hub.Subscribe("odmr")
	defer sub.Close()
	for i := 1; i <= 5; i++ {
		hub.Publish("odmr", record(i))
	}
	rec, ok := sub.Pop()
	if !ok {
		t.Fatal("expected data after publishes")
	}
	if got := len(rec.Datasets["mydata"]); got != 5 {
		t.Errorf("expected newest record with 5 series, got %d", got)
	}
}

func TestDatasetsAreIndependent(t *testing.T) {
	hub := data.NewHub()
	a := hub.Subscribe("a")
	defer a.Close()
	b := hub.Subscribe("b")
	defer b.Close()
	hub.Publish("a", record(1))
	if _, ok := b.Pop(); ok {
		t.Error("publish to dataset a leaked into dataset b")
	}
	if _, ok := a.Pop(); !ok {
		t.Error("expected data on dataset a")
	}
}

func TestPublishToNoSubscribersDoesNotBlock(t *testing.T) {
	hub := data.NewHub()
	// no subscribers at all, then one closed subscriber
	hub.Publish("odmr", record(1))
	sub := hub.Subscribe("odmr")
	sub.Close()
	hub.Publish("odmr", record(2))
}
