// Package reminder runs the scheduled deadline sweep.
package reminder

import (
	"context"
	"math"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/config"
	"github.com/vidyasetu/scholar-cli/internal/model"
	"github.com/vidyasetu/scholar-cli/internal/store"
)

// Notifier delivers one deadline reminder.
type Notifier interface {
	Notify(ctx context.Context, s model.Scholarship, daysLeft int) error
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, s model.Scholarship, daysLeft int) error {
	zap.L().Info("reminder: deadline approaching",
		zap.String("id", s.ID),
		zap.String("name", s.Name),
		zap.Int("daysLeft", daysLeft),
		zap.Time("deadline", s.Deadline),
	)
	return nil
}

// Sweeper finds scholarships closing within the reminder window.
type Sweeper struct {
	store    store.Store
	notifier Notifier
	window   time.Duration
	now      func() time.Time
}

// NewSweeper creates a Sweeper. A nil notifier logs reminders.
func NewSweeper(st store.Store, notifier Notifier, cfg config.ReminderConfig) *Sweeper {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Sweeper{
		store:    st,
		notifier: notifier,
		window:   time.Duration(cfg.WindowDays) * 24 * time.Hour,
		now:      time.Now,
	}
}

// Sweep notifies once per scholarship whose deadline falls inside the window.
// Notification failures are logged and do not stop the sweep.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	scholarships, err := s.store.ListScholarships(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "reminder: list scholarships")
	}

	now := s.now()
	sent := 0
	for _, sch := range scholarships {
		if sch.Deadline.IsZero() || sch.Deadline.Before(now) || sch.Deadline.After(now.Add(s.window)) {
			continue
		}
		daysLeft := int(math.Ceil(sch.Deadline.Sub(now).Hours() / 24))
		if err := s.notifier.Notify(ctx, sch, daysLeft); err != nil {
			zap.L().Warn("reminder: notify failed",
				zap.String("id", sch.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}
	return sent, nil
}

// Scheduler runs the sweep on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sweeper *Sweeper
}

// NewScheduler wraps a Sweeper in a cron runner.
func NewScheduler(sweeper *Sweeper) *Scheduler {
	return &Scheduler{cron: cron.New(), sweeper: sweeper}
}

// Start registers the sweep at the given cron spec and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		sent, err := s.sweeper.Sweep(ctx)
		if err != nil {
			zap.L().Error("reminder: sweep failed", zap.Error(err))
			return
		}
		zap.L().Info("reminder: sweep complete", zap.Int("sent", sent))
	})
	if err != nil {
		return eris.Wrapf(err, "reminder: bad schedule %q", spec)
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
