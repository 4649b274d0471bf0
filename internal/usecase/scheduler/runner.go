package scheduler

import (
	"context"
	"log/slog"

	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Runner triggers the sweeps on their cron schedules in the configured timezone.
type Runner struct {
	cron    *cron.Cron
	service *Service
	cfg     config.SchedulerConfig
	logger  *slog.Logger
}

func NewRunner(service *Service, cfg config.Config, logger *slog.Logger) (*Runner, error) {
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(cfg.Scheduler.Location()),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	r := &Runner{cron: c, service: service, cfg: cfg.Scheduler, logger: logger}

	for _, e := range r.schedule() {
		if _, err := c.AddFunc(e.spec, r.job(e.sweep)); err != nil {
			return nil, errs.Wrapf(err, "invalid schedule %q for sweep %s", e.spec, e.sweep)
		}
	}
	return r, nil
}

type entry struct {
	spec  string
	sweep string
}

func (r *Runner) schedule() []entry {
	return []entry{
		{spec: "@every " + r.cfg.FollowupInterval.String(), sweep: SweepFollowup},
		{spec: r.cfg.AnniversaryCron, sweep: SweepAnniversary},
		{spec: r.cfg.BirthdayRemindCron, sweep: SweepBirthdayReminder},
		{spec: r.cfg.BirthdayCron, sweep: SweepBirthdayVouchers},
		{spec: r.cfg.VoucherCron, sweep: SweepVoucherReminders},
	}
}

func (r *Runner) job(name string) func() {
	return func() {
		if _, err := r.service.Run(context.Background(), name); err != nil {
			r.logger.Error("scheduled sweep failed", "sweep", name, "error", err)
		}
	}
}

func (r *Runner) Start(context.Context) error {
	r.cron.Start()
	r.logger.Info("scheduler started", "entries", len(r.cron.Entries()), "timezone", r.cfg.TimeZone)
	return nil
}

// Stop waits for running sweeps or until ctx is done.
func (r *Runner) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		r.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
