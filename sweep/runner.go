package sweep

import "sync"

// Task is a cancellable unit of work.  It should return promptly after
// stop is closed.
type Task func(stop <-chan struct{}) error

// Runner launches tasks on background goroutines so the caller stays
// responsive, holding at most one task at a time.  The zero value is
// ready to use.
type Runner struct {
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
	err  error
}

// Run starts task in the background.  If a task is already running it
// is killed, and its completion awaited, first.
func (r *Runner) Run(task Task) {
	r.Kill()
	r.mu.Lock()
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop = stop
	r.done = done
	r.mu.Unlock()
	go func() {
		err := task(stop)
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		close(done)
	}()
}

// Kill cancels the running task, if any, and waits for it to exit.
// It is safe to call when nothing is running.
func (r *Runner) Kill() {
	r.mu.Lock()
	stop := r.stop
	done := r.done
	r.stop = nil
	r.mu.Unlock()
	if done == nil {
		return
	}
	if stop != nil {
		close(stop)
	}
	<-done
}

// Running reports whether a task is currently executing
func (r *Runner) Running() bool {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Wait blocks until the current task exits and returns its error
func (r *Runner) Wait() error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
