package cron

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Option is an Executor constructor option.
type Option func(*Executor) error

// WithTab sets the registry storage backend for the executor.
func WithTab(tab Tab) Option {
	return func(e *Executor) error {
		if tab == nil {
			return errors.New("cron: tab must not be nil")
		}
		e.tab = tab
		return nil
	}
}

// WithPeriod sets the delay between sweeps.
//
// Period defaults to DefaultPeriod.
func WithPeriod(period time.Duration) Option {
	return func(e *Executor) error {
		if period <= 0 {
			return errors.Errorf("cron: period must be positive, got %s", period)
		}
		e.period = period
		return nil
	}
}

// WithLogger sets the executor logger.
//
// Logging defaults to zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(e *Executor) error {
		e.log = log
		return nil
	}
}

// WithErrorChan sets the channel carrying job errors that had no on-failure
// continuation.
func WithErrorChan(errs chan error) Option {
	return func(e *Executor) error {
		if errs == nil {
			return errors.New("cron: error channel must not be nil")
		}
		e.errors = errs
		return nil
	}
}

// WithExecutorName names the executor for log attribution.
func WithExecutorName(name string) Option {
	return func(e *Executor) error {
		e.name = name
		return nil
	}
}
