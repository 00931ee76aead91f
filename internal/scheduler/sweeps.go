package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

// Sweep schedules, all evaluated in the system timezone.
const (
	dailyMotivationSpec = "0 9 * * *"
	roadmapNudgeSpec    = "0 9 * * *"
	expiredPurgeSpec    = "0 * * * *"
	streakCheckSpec     = "0 0 * * *"
)

// Upper bound on concurrent notification sends within one sweep run, so a
// slow channel cannot stall the rest of a large sweep.
const maxNotifyWorkers = 8

// Sweeper runs the fixed-cadence collection scans: daily motivation
// broadcast, daily roadmap nudges, hourly expired-reminder purge and the
// daily streak consistency check.
type Sweeper struct {
	users     UserStore
	roadmaps  RoadmapStore
	reminders ReminderStore
	notifier  *Notifier
	loc       *time.Location

	now func() time.Time
}

func (s *Scheduler) startSweeps() {
	s.cron.AddFunc(dailyMotivationSpec, func() {
		if err := s.sweeper.RunDailyMotivation(context.Background()); err != nil {
			logrus.WithError(err).Error("Daily motivation sweep failed")
		}
	})

	s.cron.AddFunc(roadmapNudgeSpec, func() {
		if err := s.sweeper.RunRoadmapNudge(context.Background()); err != nil {
			logrus.WithError(err).Error("Roadmap nudge sweep failed")
		}
	})

	s.cron.AddFunc(expiredPurgeSpec, func() {
		if err := s.sweeper.RunExpiredReminderPurge(context.Background()); err != nil {
			logrus.WithError(err).Error("Expired reminder purge failed")
		}
	})

	s.cron.AddFunc(streakCheckSpec, func() {
		if err := s.sweeper.RunStreakCheck(context.Background()); err != nil {
			logrus.WithError(err).Error("Streak check sweep failed")
		}
	})
}

// RunDailyMotivation broadcasts one motivational line to every user. The
// line is picked once per run, so everybody gets the same message.
func (w *Sweeper) RunDailyMotivation(ctx context.Context) error {
	users, err := w.users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	line := RandomMotivation()
	g := new(errgroup.Group)
	g.SetLimit(maxNotifyWorkers)
	for i := range users {
		user := users[i]
		g.Go(func() error {
			w.notifier.Notify(ctx, user.ID, "Daily Motivation", line)
			return nil
		})
	}
	_ = g.Wait()

	logrus.Infof("Daily motivation sent to %d users", len(users))
	return nil
}

// RunRoadmapNudge notifies every roadmap owner who still has pending steps.
// Roadmaps with no steps at all are skipped.
func (w *Sweeper) RunRoadmapNudge(ctx context.Context) error {
	roadmaps, err := w.roadmaps.GetAllRoadmaps(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch roadmaps: %w", err)
	}

	g := new(errgroup.Group)
	g.SetLimit(maxNotifyWorkers)
	nudged := 0
	for i := range roadmaps {
		roadmap := roadmaps[i]
		total := len(roadmap.Steps)
		if total == 0 {
			continue
		}
		pending := total - roadmap.CompletedSteps()
		if pending == 0 {
			continue
		}
		nudged++
		message := fmt.Sprintf("You have %d pending step(s) in %q. Try completing one today — small wins add up!", pending, roadmap.Goal)
		g.Go(func() error {
			w.notifier.Notify(ctx, roadmap.UserID, "Roadmap Reminder", message)
			return nil
		})
	}
	_ = g.Wait()

	logrus.Infof("Roadmap nudge sweep finished, nudged %d of %d roadmaps", nudged, len(roadmaps))
	return nil
}

// RunExpiredReminderPurge deletes one-shot reminders whose time is already
// past. This backstops per-reminder self-deletion: it catches reminders
// created while the process was down and records whose self-cancel failed.
func (w *Sweeper) RunExpiredReminderPurge(ctx context.Context) error {
	deleted, err := w.reminders.DeleteExpiredOnceReminders(ctx, w.now())
	if err != nil {
		return fmt.Errorf("failed to purge expired reminders: %w", err)
	}
	if deleted > 0 {
		logrus.Infof("Purged %d expired one-time reminders", deleted)
	}
	return nil
}

// RunStreakCheck resets the streak of every user whose last completion is
// two or more days old, at day granularity in the system timezone. Users
// who never completed anything are left alone. A failing user is logged
// and skipped; the sweep keeps going.
func (w *Sweeper) RunStreakCheck(ctx context.Context) error {
	users, err := w.users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	today := dayOf(w.now().In(w.loc))
	reset := 0
	for i := range users {
		user := users[i]
		if user.LastCompletionDate.IsZero() {
			continue
		}
		last := dayOf(user.LastCompletionDate.In(w.loc))
		gap := int(math.Round(today.Sub(last).Hours() / 24))
		if gap < 2 {
			continue
		}
		if _, err := w.users.UpdateUser(ctx, user.ID, bson.M{"streak": 0, "updated_at": w.now()}); err != nil {
			logrus.WithError(err).Warnf("Failed to reset streak for user %s", user.ID.Hex())
			continue
		}
		reset++
		w.notifier.Notify(ctx, user.ID, "Streak reset",
			"We noticed you missed a day — your streak has been reset. Start again today!")
	}

	if reset > 0 {
		logrus.Infof("Streak check reset %d user(s)", reset)
	}
	return nil
}

// dayOf truncates t to midnight in its own location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
