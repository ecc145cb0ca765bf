package cron

import (
	"context"

	"github.com/tolkabot/tolka/internal/core"
)

func init() {
	core.RegisterModule(&Module{})
}

// Compile-time interface guards.
var (
	_ core.Provisioner = (*Module)(nil)
	_ core.Starter     = (*Module)(nil)
	_ core.Stopper     = (*Module)(nil)
)

// Module wraps a Scheduler as the schedule.cron module. It registers the
// scheduler in the service registry during Provision so that other modules
// (which all provision before anything starts) can add jobs; the scheduler
// itself starts in module ID order, after channel modules have registered
// their jobs.
type Module struct {
	scheduler *Scheduler
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "schedule.cron",
		New: func() core.Module { return &Module{} },
	}
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.scheduler = NewScheduler(ctx.Logger)
	ctx.RegisterService("cron.scheduler", m.scheduler)
	return nil
}

// Start implements core.Starter.
func (m *Module) Start() error {
	return m.scheduler.Start()
}

// Stop implements core.Stopper.
func (m *Module) Stop(ctx context.Context) error {
	return m.scheduler.Stop(ctx)
}
