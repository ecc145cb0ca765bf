// Package cron provides periodic job scheduling for tolka modules.
// The schedule.cron module exposes a Scheduler through the service
// registry; other modules register jobs against it before it starts.
package cron

import "context"

// Job is a unit of periodic work.
type Job interface {
	// Name uniquely identifies the job for logging and deduplication.
	Name() string

	// Schedule returns a standard 5-field cron expression.
	Schedule() string

	// Run executes the job. The context is cancelled when the scheduler
	// stops.
	Run(ctx context.Context) error
}

// FuncJob adapts a plain function to the Job interface.
type FuncJob struct {
	JobName     string
	JobSchedule string
	Fn          func(ctx context.Context) error
}

// Name implements Job.
func (j FuncJob) Name() string { return j.JobName }

// Schedule implements Job.
func (j FuncJob) Schedule() string { return j.JobSchedule }

// Run implements Job.
func (j FuncJob) Run(ctx context.Context) error { return j.Fn(ctx) }
