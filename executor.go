package cron

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultPeriod is the default delay between executor sweeps.
	DefaultPeriod = time.Second
)

// State describes the executor lifecycle.
type State int

const (
	// StateIdle means no jobs are registered; the loop is parked and consumes
	// no CPU.
	StateIdle State = iota

	// StateActive means at least one job is registered and the loop is
	// sweeping.
	StateActive

	// StateStopped is terminal: the loop has exited or will exit on its next
	// wakeup.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// New is the constructor for Executor.
func New(opts ...Option) (*Executor, error) {
	e := &Executor{
		name:   "crontab",
		log:    zerolog.Nop(),
		errors: make(chan error, 100),
		done:   make(chan struct{}),
	}
	e.wake = sync.NewCond(&e.mu)

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.period == 0 {
		e.period = DefaultPeriod
	}
	if e.tab == nil {
		e.tab = NewMemoryTab()
	}
	return e, nil
}

// Executor owns the job registry and runs the scheduler loop on a dedicated
// background goroutine. Registration and deregistration may happen from any
// goroutine while the loop runs.
type Executor struct {
	name   string
	log    zerolog.Logger
	tab    Tab
	period time.Duration
	errors chan error

	mu      sync.Mutex
	wake    *sync.Cond
	hasJobs bool
	stopped bool
	started bool
	done    chan struct{}
}

// Register inserts or replaces a job under its name and wakes the loop if it
// was parked.
func (e *Executor) Register(j *Job) error {
	if err := e.tab.Put(j); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.hasJobs = true
	e.wake.Broadcast()

	e.log.Debug().Str("job", j.Name()).Str("expression", j.ExpressionString()).Msg("job registered")
	return nil
}

// Deregister removes the named job. When the registry becomes empty the loop
// returns to idle and parks until the next registration.
func (e *Executor) Deregister(name string) error {
	if err := e.tab.Remove(name); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tab.Len() == 0 {
		e.hasJobs = false
	}

	e.log.Debug().Str("job", name).Msg("job deregistered")
	return nil
}

// Start launches the scheduler loop on a background goroutine. It is
// idempotent; starting a stopped executor is a no-op.
func (e *Executor) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.run()
}

// Stop requests loop termination and unparks it so the stop is observed
// promptly. Idempotent. Stop does not cancel an in-flight sweep; the loop
// exits before the next one.
func (e *Executor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	e.stopped = true
	e.hasJobs = false
	e.wake.Broadcast()

	// Never started: nothing will close done, so close it here for waiters.
	if !e.started {
		close(e.done)
	}
}

// State reports the executor lifecycle state.
func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.stopped:
		return StateStopped
	case e.hasJobs:
		return StateActive
	default:
		return StateIdle
	}
}

// Done returns a channel closed when the scheduler loop has exited, whether by
// Stop or by a loop-fatal failure. Supervisors needing liveness watch this.
func (e *Executor) Done() <-chan struct{} {
	return e.done
}

// Errors returns the executor error channel. Job errors with no on-failure
// continuation are published here; sends never block and drop when full.
func (e *Executor) Errors() <-chan error {
	return e.errors
}

// Jobs returns a snapshot of all registered jobs.
func (e *Executor) Jobs() ([]*Job, error) {
	return e.tab.All()
}

// run is the scheduler loop. It parks while no jobs are registered, and on
// each wakeup sweeps every registered job against a single captured "now" so
// all jobs in one sweep observe the same timestamp.
func (e *Executor) run() {
	defer close(e.done)
	defer func() {
		if r := recover(); r != nil {
			// A panic here escaped the sweep machinery, not a job body (job
			// bodies are recovered inside Invoke). The loop terminates and is
			// not restarted; external supervision must watch Done.
			e.mu.Lock()
			e.stopped = true
			e.mu.Unlock()
			e.log.Error().Interface("panic", r).Str("executor", e.name).Msg("scheduler loop terminated by unhandled failure")
		}
	}()

	e.log.Debug().Str("executor", e.name).Msg("scheduler loop started")

	for {
		e.mu.Lock()
		for !e.hasJobs && !e.stopped {
			e.wake.Wait()
		}
		stopped := e.stopped
		e.mu.Unlock()

		if stopped {
			e.log.Debug().Str("executor", e.name).Msg("scheduler loop stopped")
			return
		}

		if err := e.sweep(time.Now()); err != nil {
			e.mu.Lock()
			e.stopped = true
			e.mu.Unlock()
			e.log.Error().Err(err).Str("executor", e.name).Msg("scheduler loop terminated by sweep failure")
			return
		}
		time.Sleep(e.period)
	}
}

// sweep evaluates every registered job against now and invokes the matches.
// Invocations are synchronous: a long-running job delays the next sweep but
// cannot corrupt state. A non-nil error is loop-fatal.
func (e *Executor) sweep(now time.Time) error {
	jobs, err := e.tab.All()
	if err != nil {
		return err
	}

	for _, j := range jobs {
		expr := j.Expression()
		if expr == nil {
			// Reboot-style jobs have no clock schedule.
			continue
		}
		if expr.Matches(now) {
			e.log.Debug().Str("job", j.Name()).Time("now", now).Msg("job matched")
			j.Invoke()
		}
	}
	return nil
}

// publish puts a job error on the error channel without ever blocking the
// loop.
func (e *Executor) publish(err error) {
	select {
	case e.errors <- err:
	default:
	}
}
