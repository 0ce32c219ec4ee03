package cron

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
)

// JobFunc is the callable a Job wraps. It receives the arguments bound at
// construction and returns a result routed to the on-success continuation, or
// an error routed to on-failure.
type JobFunc func(args map[string]interface{}) (interface{}, error)

// Job binds a callable, its arguments and its continuations to a cron
// expression. NewJob registers the job with its executor on construction, so
// building a job and scheduling it are one operation.
type Job struct {
	name       string
	fn         JobFunc
	args       map[string]interface{}
	expression *Expression
	exprSet    bool
	onSuccess  func(interface{})
	onFailure  func(error)
	retry      backoff.BackOff
	executor   *Executor
}

// JobOption is a Job constructor option.
type JobOption func(*Job) error

// WithName overrides the derived job name used as the registry key.
func WithName(name string) JobOption {
	return func(j *Job) error {
		j.name = name
		return nil
	}
}

// WithArgs binds arguments passed to the callable on every invocation.
func WithArgs(args map[string]interface{}) JobOption {
	return func(j *Job) error {
		j.args = args
		return nil
	}
}

// WithExpr parses a cron expression string (or "@keyword") and attaches it to
// the job.
func WithExpr(expr string) JobOption {
	return func(j *Job) error {
		e, err := Parse(expr)
		if err != nil {
			return err
		}
		j.expression = e
		j.exprSet = true
		return nil
	}
}

// WithExpression attaches a prebuilt expression. Passing Reboot schedules the
// job for out-of-band invocation only; the clock never matches it.
func WithExpression(e *Expression) JobOption {
	return func(j *Job) error {
		j.expression = e
		j.exprSet = true
		return nil
	}
}

// WithFields builds the job's expression from named fields.
func WithFields(f Fields) JobOption {
	return func(j *Job) error {
		e, err := NewExpression(f)
		if err != nil {
			return err
		}
		j.expression = e
		j.exprSet = true
		return nil
	}
}

// WithOnSuccess sets the continuation receiving the callable's result after a
// successful invocation.
func WithOnSuccess(fn func(result interface{})) JobOption {
	return func(j *Job) error {
		j.onSuccess = fn
		return nil
	}
}

// WithOnFailure sets the continuation receiving the error of a failed
// invocation. Without it, errors go to the executor's error channel.
func WithOnFailure(fn func(err error)) JobOption {
	return func(j *Job) error {
		j.onFailure = fn
		return nil
	}
}

// WithExecutor targets an explicit executor instead of the package default.
func WithExecutor(e *Executor) JobOption {
	return func(j *Job) error {
		if e == nil {
			return errors.New("cron: executor must not be nil")
		}
		j.executor = e
		return nil
	}
}

// WithRetry retries failing invocations under the given policy before the
// failure is routed to on-failure. Wrap an error in backoff.Permanent inside
// the callable to short-circuit.
func WithRetry(policy backoff.BackOff) JobOption {
	return func(j *Job) error {
		j.retry = policy
		return nil
	}
}

// NewJob builds a job and registers it with its executor. The default
// expression matches every second; the default name is the package-qualified
// function name, so re-wrapping the same function replaces the earlier job.
func NewJob(fn JobFunc, opts ...JobOption) (*Job, error) {
	if fn == nil {
		return nil, errors.New("cron: job callable must not be nil")
	}

	j := &Job{
		fn:       fn,
		name:     functionName(fn),
		executor: defaultExecutor,
	}

	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, err
		}
	}

	if !j.exprSet {
		j.expression = wildcardExpression
	}
	if j.onSuccess == nil {
		j.onSuccess = func(interface{}) {}
	}
	if j.onFailure == nil {
		executor := j.executor
		name := j.name
		j.onFailure = func(err error) {
			executor.publish(errors.Wrapf(err, "cron: job %s failed", name))
		}
	}

	if err := j.executor.Register(j); err != nil {
		return nil, err
	}
	return j, nil
}

// Name returns the registry key of the job.
func (j *Job) Name() string {
	return j.name
}

// Expression returns the job's expression for introspection. It is nil for
// reboot-style jobs.
func (j *Job) Expression() *Expression {
	return j.expression
}

// ExpressionString renders the job's schedule.
func (j *Job) ExpressionString() string {
	if j.expression == nil {
		return "@reboot"
	}
	return j.expression.String()
}

// Invoke runs the callable with its bound arguments. A normal return is routed
// to on-success; an error, or a recovered panic converted to one, is routed to
// on-failure. Failures never propagate to the caller beyond the returned
// error, so one job can never break a sweep.
func (j *Job) Invoke() error {
	var result interface{}
	var err error

	if j.retry != nil {
		err = backoff.Retry(func() error {
			var callErr error
			result, callErr = j.call()
			return callErr
		}, j.retry)
	} else {
		result, err = j.call()
	}

	if err != nil {
		j.onFailure(err)
		return err
	}
	j.onSuccess(result)
	return nil
}

// call runs the callable, converting a panic into an error.
func (j *Job) call() (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("cron: job %s panicked: %v", j.name, r)
		}
	}()
	return j.fn(j.args)
}

// wildcardExpression matches every second of every day.
var wildcardExpression = MustParse("* * * * * * *")

// functionName derives the registry key for fn: the package-path-qualified
// function name.
func functionName(fn JobFunc) string {
	pc := reflect.ValueOf(fn).Pointer()
	if f := runtime.FuncForPC(pc); f != nil {
		return f.Name()
	}
	return fmt.Sprintf("job@%#x", pc)
}
