package sweep_test

import (
	"errors"
	"testing"
	"time"

	"github.com/spinlab/odmr/sweep"
)

func TestRunnerRunsTask(t *testing.T) {
	var r sweep.Runner
	ran := make(chan struct{})
	r.Run(func(stop <-chan struct{}) error {
		close(ran)
		return nil
	})
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	if err := r.Wait(); err != nil {
		t.Errorf("expected nil error from completed task, got %v", err)
	}
	if r.Running() {
		t.Error("expected Running() false after completion")
	}
}

func TestRunnerKillStopsTask(t *testing.T) {
	var r sweep.Runner
	r.Run(func(stop <-chan struct{}) error {
		<-stop
		return sweep.ErrStopped
	})
	if !r.Running() {
		t.Fatal("expected Running() true while task blocked")
	}
	r.Kill()
	if r.Running() {
		t.Error("expected Running() false after Kill")
	}
	if err := r.Wait(); !errors.Is(err, sweep.ErrStopped) {
		t.Errorf("expected ErrStopped from killed task, got %v", err)
	}
}

func TestRunnerKillIdempotent(t *testing.T) {
	var r sweep.Runner
	r.Kill()
	r.Run(func(stop <-chan struct{}) error {
		<-stop
		return nil
	})
	r.Kill()
	r.Kill()
}

func TestRunnerRunReplacesRunningTask(t *testing.T) {
	var r sweep.Runner
	firstStopped := make(chan struct{})
	r.Run(func(stop <-chan struct{}) error {
		<-stop
		close(firstStopped)
		return nil
	})
	r.Run(func(stop <-chan struct{}) error {
		return nil
	})
	select {
	case <-firstStopped:
	case <-time.After(time.Second):
		t.Fatal("starting a new task did not stop the previous one")
	}
}
