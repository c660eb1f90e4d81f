package digestmail

import (
	"fmt"
	"log/slog"
	"strings"

	"modelwatch/lib/timezone"
	"modelwatch/services/catalog"

	"github.com/robfig/cron/v3"
)

// Notifier delivers a rendered digest to its recipients.
type Notifier interface {
	Send(recipients []string, subject, body string) error
}

// Runner registers every stored notification schedule as a cron entry
// that sends the weekly digest to that schedule's recipients.
type Runner struct {
	store    catalog.Store
	format   Formatter
	notifier Notifier
	cron     *cron.Cron
}

func NewRunner(store catalog.Store, notifier Notifier) *Runner {
	return &Runner{
		store:    store,
		format:   NewFormatter(store),
		notifier: notifier,
		cron: cron.New(
			cron.WithLogger(cronLogger{}),
			cron.WithLocation(timezone.Location),
		),
	}
}

// CronSpec renders a schedule trigger in cron syntax.
func CronSpec(t catalog.Trigger) string {
	dow := "*"
	if len(t.DaysOfWeek) > 0 {
		dow = strings.Join(t.DaysOfWeek, ",")
	}
	return fmt.Sprintf("%d %d * * %s", t.Minute, t.Hour, dow)
}

// Register loads the schedule table and adds one cron entry per
// schedule. Call before Start.
func (r *Runner) Register() error {
	schedules, err := r.store.Schedules.All()
	if err != nil {
		return err
	}
	for _, schedule := range schedules {
		schedule := schedule
		spec := CronSpec(schedule.Trigger)
		_, err := r.cron.AddFunc(spec, func() {
			r.deliver(schedule)
		})
		if err != nil {
			return fmt.Errorf("schedule %q: %w", spec, err)
		}
		slog.Info("registered schedule", "spec", spec, "recipients", len(schedule.Emails))
	}
	return nil
}

func (r *Runner) deliver(schedule catalog.Schedule) {
	models, err := r.store.Models.All()
	if err != nil {
		slog.Error("digest delivery failed", "err", err)
		return
	}
	wanted := make([]string, len(models))
	for i, m := range models {
		wanted[i] = m.Name
	}

	body, err := r.format.Weekly(wanted)
	if err != nil {
		slog.Error("digest delivery failed", "err", err)
		return
	}
	err = r.notifier.Send(schedule.Emails, "Your weekly digest", body)
	if err != nil {
		slog.Error("digest delivery failed", "err", err)
		return
	}
	slog.Info("digest delivered", "recipients", len(schedule.Emails))
}

func (r *Runner) Start() {
	r.cron.Start()
}

// Stop halts scheduling and waits for a running delivery to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	args := append([]any{"err", err}, keysAndValues...)
	slog.Error("cron: "+msg, args...)
}
