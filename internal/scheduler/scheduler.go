package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// How long a firing transition may spend on store and delivery calls.
const fireTimeout = 30 * time.Second

// Config collects the collaborators a Scheduler needs.
type Config struct {
	Reminders ReminderStore
	Users     UserStore
	Roadmaps  RoadmapStore
	Mailer    Mailer
	Pusher    Pusher

	// Location is the single IANA timezone the whole system schedules in.
	Location *time.Location
}

// Scheduler owns the lifecycle of reminder notification jobs: it registers
// triggers, fires them, and cleans up one-shot reminders after their first
// firing. All recurring work (daily reminders and the sweep jobs) runs on
// one cron instance pinned to the system timezone; one-shot reminders use
// absolute deadlines instead of cron field patterns.
type Scheduler struct {
	reminders ReminderStore
	notifier  *Notifier
	registry  *Registry
	sweeper   *Sweeper
	cron      *cron.Cron
	loc       *time.Location

	now func() time.Time
}

// New creates a Scheduler. Start must be called before the sweep jobs and
// daily reminders begin to fire.
func New(cfg Config) *Scheduler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	notifier := NewNotifier(cfg.Users, cfg.Mailer, cfg.Pusher)
	s := &Scheduler{
		reminders: cfg.Reminders,
		notifier:  notifier,
		registry:  NewRegistry(),
		cron:      cron.New(cron.WithLocation(loc)),
		loc:       loc,
		now:       time.Now,
	}
	s.sweeper = &Sweeper{
		users:     cfg.Users,
		roadmaps:  cfg.Roadmaps,
		reminders: cfg.Reminders,
		notifier:  notifier,
		loc:       loc,
		now:       time.Now,
	}
	return s
}

// Start registers the sweep jobs and starts the cron engine.
func (s *Scheduler) Start() {
	s.startSweeps()
	s.cron.Start()
	logrus.Info("Reminder scheduler started")
}

// Stop halts the cron engine. Pending one-shot timers keep their deadlines;
// callers that want a full shutdown should let the process exit.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// timerHandle wraps a one-shot deadline trigger.
type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Stop() { h.timer.Stop() }

// cronHandle wraps a recurring cron entry.
type cronHandle struct {
	cron *cron.Cron
	id   cron.EntryID
}

func (h cronHandle) Stop() { h.cron.Remove(h.id) }

// Schedule registers the trigger for a persisted reminder. Scheduling the
// same reminder id again replaces the previous trigger, so re-scheduling is
// idempotent. A one-shot reminder whose time has already passed fires
// immediately instead of being registered for a calendar date that will
// never come around.
func (s *Scheduler) Schedule(rem *models.Reminder) {
	if rem == nil || rem.ID.IsZero() || rem.Time.IsZero() {
		logrus.Warn("Scheduler: skipping reminder with missing id or time")
		return
	}
	id := rem.ID.Hex()
	r := *rem // the callback keeps its own copy

	if rem.Repeat == models.RepeatDaily {
		spec := DailyCronSpec(rem.Time.In(s.loc))
		entryID, err := s.cron.AddFunc(spec, func() { s.fire(&r) })
		if err != nil {
			logrus.WithError(err).Errorf("Scheduler: failed to register daily trigger for reminder %s", id)
			return
		}
		s.registry.Register(id, cronHandle{cron: s.cron, id: entryID})
		logrus.Infof("Scheduled daily reminder %s (%s)", id, spec)
		return
	}

	delay := rem.Time.Sub(s.now())
	if delay <= 0 {
		s.registry.Cancel(id)
		logrus.Infof("Reminder %s is past due, firing immediately", id)
		s.fire(&r)
		return
	}
	timer := time.AfterFunc(delay, func() { s.fire(&r) })
	s.registry.Register(id, timerHandle{timer: timer})
	logrus.Infof("Scheduled one-time reminder %s for %s", id, rem.Time.Format(time.RFC3339))
}

// Cancel removes the live trigger for a reminder id, if any.
func (s *Scheduler) Cancel(id primitive.ObjectID) bool {
	return s.registry.Cancel(id.Hex())
}

// Scheduled reports whether a live trigger exists for a reminder id.
func (s *Scheduler) Scheduled(id primitive.ObjectID) bool {
	return s.registry.Has(id.Hex())
}

// Rehydrate loads every persisted reminder and re-registers its trigger.
// Called once on boot, after the store connection is up; durable records
// are the only scheduling state that survives a restart.
func (s *Scheduler) Rehydrate(ctx context.Context) error {
	reminders, err := s.reminders.GetAllReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reminders for rehydration: %v", err)
	}
	for i := range reminders {
		s.Schedule(&reminders[i])
	}
	logrus.Infof("Rehydrated %d reminders from store", len(reminders))
	return nil
}

// fire runs the firing transition for a reminder: deliver, then either
// self-cancel and delete (once) or stay registered (daily).
func (s *Scheduler) fire(rem *models.Reminder) {
	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	logrus.Infof("Firing reminder %s", rem.ID.Hex())
	s.notifier.Notify(ctx, rem.UserID, rem.Title, rem.Message)

	if rem.Repeat == models.RepeatDaily {
		return
	}
	s.registry.Cancel(rem.ID.Hex())
	if err := s.reminders.DeleteReminder(ctx, rem.ID); err != nil {
		// The hourly purge may have removed the record first.
		logrus.WithError(err).Debugf("Reminder %s was already removed", rem.ID.Hex())
	}
}
