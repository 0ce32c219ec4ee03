package cron

// The process-wide default executor. Created at package init, started and
// stopped explicitly by the host application.
var defaultExecutor, _ = New(WithExecutorName("default"))

// Default returns the process-wide default executor.
func Default() *Executor {
	return defaultExecutor
}

// Configure the default executor. Call before Start.
func Configure(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(defaultExecutor); err != nil {
			return err
		}
	}
	return nil
}

// Register a job with the default executor.
func Register(j *Job) error {
	return defaultExecutor.Register(j)
}

// Deregister a job from the default executor.
func Deregister(name string) error {
	return defaultExecutor.Deregister(name)
}

// Start the default executor.
func Start() {
	defaultExecutor.Start()
}

// Stop the default executor.
func Stop() {
	defaultExecutor.Stop()
}

// Errors returns the default executor error channel.
func Errors() <-chan error {
	return defaultExecutor.Errors()
}
