package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dyike/indexstats/internal/table"
)

// scheduler reloads the dashboard on a cron schedule.
type scheduler struct {
	cron *cron.Cron
	id   cron.EntryID
}

// SetReloadHook registers fn to run after every successful scheduled reload.
// It must be called before StartAutoReload.
func (d *Dashboard) SetReloadHook(fn func(table.Snapshot)) {
	d.onReload = fn
}

// StartAutoReload loads the ticker data on every tick of schedule, a standard
// cron expression or a descriptor such as "@every 5m". A tick that fires
// while the previous load is still running is skipped.
func (d *Dashboard) StartAutoReload(schedule string, timeout time.Duration) error {
	if d.scheduler != nil {
		return fmt.Errorf("auto reload already running")
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(d.logger)),
		cron.SkipIfStillRunning(cron.PrintfLogger(d.logger)),
	))
	id, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		d.logger.WithField("schedule", schedule).Debug("Scheduled reload")
		if err := d.Load(ctx); err != nil {
			return
		}
		if d.onReload != nil {
			d.onReload(d.view.Snapshot())
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}

	c.Start()
	d.scheduler = &scheduler{cron: c, id: id}
	d.logger.WithField("schedule", schedule).Info("Auto reload started")
	return nil
}

// NextReload reports when the next scheduled reload fires.
func (d *Dashboard) NextReload() (time.Time, bool) {
	if d.scheduler == nil {
		return time.Time{}, false
	}
	return d.scheduler.cron.Entry(d.scheduler.id).Next, true
}

// StopAutoReload stops the schedule and waits for a running reload to finish.
func (d *Dashboard) StopAutoReload() {
	if d.scheduler == nil {
		return
	}
	<-d.scheduler.cron.Stop().Done()
	d.scheduler = nil
	d.logger.Info("Auto reload stopped")
}
