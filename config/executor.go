package config

import "time"

// ExecutorConfig sizes the background worker pool that runs submitted jobs.
type ExecutorConfig struct {
	// Workers is the number of worker goroutines executing jobs.
	Workers int `env:"EXECUTOR_WORKERS" envDefault:"4"`

	// QueueSize bounds the number of accepted jobs waiting for a worker.
	// Submissions beyond this are rejected rather than buffered.
	QueueSize int `env:"EXECUTOR_QUEUE_SIZE" envDefault:"100"`

	// JobTimeout aborts a single job after this duration and records it as failed.
	// Zero disables the timeout.
	JobTimeout time.Duration `env:"EXECUTOR_JOB_TIMEOUT" envDefault:"0s"`

	// WorkDelay simulates post-transcription processing time.
	WorkDelay time.Duration `env:"WORK_DELAY" envDefault:"2s"`

	// ShutdownTimeout bounds how long queued and in-flight jobs may drain on shutdown.
	ShutdownTimeout time.Duration `env:"EXECUTOR_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to executor configuration values.
func (e *ExecutorConfig) Sanitize() {
	if e.Workers < 1 {
		e.Workers = 1
	}
	if e.Workers > 256 {
		e.Workers = 256
	}
	if e.QueueSize < 1 {
		e.QueueSize = 1
	}
	if e.QueueSize > 100000 {
		e.QueueSize = 100000
	}
	if e.JobTimeout < 0 {
		e.JobTimeout = 0
	}
	if e.WorkDelay < 0 {
		e.WorkDelay = 0
	}
	if e.ShutdownTimeout < time.Second {
		e.ShutdownTimeout = time.Second
	}
}
