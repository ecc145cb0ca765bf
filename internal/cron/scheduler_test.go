package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noopJob(name, schedule string) Job {
	return FuncJob{
		JobName:     name,
		JobSchedule: schedule,
		Fn:          func(context.Context) error { return nil },
	}
}

func TestRegisterJobDuplicateName(t *testing.T) {
	s := NewScheduler(discardLogger())
	if err := s.RegisterJob(noopJob("watchdog", "*/5 * * * *")); err != nil {
		t.Fatalf("RegisterJob() error: %v", err)
	}
	if err := s.RegisterJob(noopJob("watchdog", "*/10 * * * *")); err == nil {
		t.Fatal("RegisterJob() should reject duplicate job names")
	}
}

func TestStartInvalidSchedule(t *testing.T) {
	s := NewScheduler(discardLogger())
	if err := s.RegisterJob(noopJob("bad", "not a schedule")); err != nil {
		t.Fatalf("RegisterJob() error: %v", err)
	}
	if err := s.Start(); err == nil {
		_ = s.Stop(context.TODO())
		t.Fatal("Start() should reject invalid schedule expressions")
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(discardLogger())
	if err := s.RegisterJob(noopJob("watchdog", "*/5 * * * *")); err != nil {
		t.Fatalf("RegisterJob() error: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := s.Stop(context.TODO()); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
}

func TestJobNames(t *testing.T) {
	s := NewScheduler(discardLogger())
	_ = s.RegisterJob(noopJob("a", "* * * * *"))
	_ = s.RegisterJob(noopJob("b", "* * * * *"))

	names := s.JobNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("JobNames() = %v, want [a b]", names)
	}
}
