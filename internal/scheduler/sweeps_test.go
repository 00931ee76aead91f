package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRunDailyMotivationBroadcastsOneLine(t *testing.T) {
	users := make([]models.User, 3)
	for i := range users {
		users[i] = models.User{
			ID:    primitive.NewObjectID(),
			Email: fmt.Sprintf("user%d@example.com", i),
		}
	}
	mailer := &fakeMailer{}
	sched := newTestScheduler(newFakeReminderStore(), newFakeUserStore(users...), &fakeRoadmapStore{}, mailer, &fakePusher{}, testLoc, testNow)

	require.NoError(t, sched.sweeper.RunDailyMotivation(context.Background()))

	sent := mailer.messages()
	require.Len(t, sent, 3)
	for _, m := range sent {
		assert.Equal(t, "Daily Motivation", m.subject)
		assert.Equal(t, sent[0].body, m.body, "a single run picks one line for everybody")
	}
	assert.Contains(t, motivationalLines, sent[0].body)
}

func TestRunRoadmapNudgeSkipsCompleteAndEmpty(t *testing.T) {
	owner := models.User{ID: primitive.NewObjectID(), Email: "owner@example.com"}
	roadmaps := &fakeRoadmapStore{roadmaps: []models.Roadmap{
		{
			UserID: owner.ID,
			Goal:   "Learn Spanish",
			Steps: []models.RoadmapStep{
				{Title: "Alphabet", Completed: true},
				{Title: "Greetings"},
				{Title: "Verbs"},
			},
		},
		{
			UserID: owner.ID,
			Goal:   "Done already",
			Steps:  []models.RoadmapStep{{Title: "Only step", Completed: true}},
		},
		{UserID: owner.ID, Goal: "Empty plan"},
	}}
	mailer := &fakeMailer{}
	sched := newTestScheduler(newFakeReminderStore(), newFakeUserStore(owner), roadmaps, mailer, &fakePusher{}, testLoc, testNow)

	require.NoError(t, sched.sweeper.RunRoadmapNudge(context.Background()))

	sent := mailer.messages()
	require.Len(t, sent, 1, "only the roadmap with pending steps gets a nudge")
	assert.Equal(t, "Roadmap Reminder", sent[0].subject)
	assert.Contains(t, sent[0].body, "2 pending step(s)")
	assert.Contains(t, sent[0].body, `"Learn Spanish"`)
}

func TestRunExpiredReminderPurge(t *testing.T) {
	reminders := newFakeReminderStore()
	ctx := context.Background()
	expired, err := reminders.CreateReminder(ctx, &models.Reminder{
		UserID: primitive.NewObjectID(), Title: "Old", Time: testNow.Add(-2 * time.Hour), Repeat: models.RepeatOnce,
	})
	require.NoError(t, err)
	upcoming, err := reminders.CreateReminder(ctx, &models.Reminder{
		UserID: primitive.NewObjectID(), Title: "Soon", Time: testNow.Add(time.Hour), Repeat: models.RepeatOnce,
	})
	require.NoError(t, err)
	daily, err := reminders.CreateReminder(ctx, &models.Reminder{
		UserID: primitive.NewObjectID(), Title: "Every day", Time: testNow.Add(-26 * time.Hour), Repeat: models.RepeatDaily,
	})
	require.NoError(t, err)

	sched := newTestScheduler(reminders, newFakeUserStore(), &fakeRoadmapStore{}, &fakeMailer{}, &fakePusher{}, testLoc, testNow)
	require.NoError(t, sched.sweeper.RunExpiredReminderPurge(ctx))

	assert.False(t, reminders.has(expired.ID), "expired one-time reminder should be purged")
	assert.True(t, reminders.has(upcoming.ID), "future one-time reminder must survive the purge")
	assert.True(t, reminders.has(daily.ID), "daily reminders are never purged, however old their anchor time")
}

func TestRunStreakCheck(t *testing.T) {
	never := models.User{ID: primitive.NewObjectID(), Email: "never@example.com", Streak: 0}
	active := models.User{
		ID:                 primitive.NewObjectID(),
		Email:              "active@example.com",
		Streak:             6,
		LastCompletionDate: testNow.AddDate(0, 0, -1),
	}
	lapsed := models.User{
		ID:                 primitive.NewObjectID(),
		Email:              "lapsed@example.com",
		Streak:             12,
		LastCompletionDate: testNow.AddDate(0, 0, -3),
	}
	users := newFakeUserStore(never, active, lapsed)
	mailer := &fakeMailer{}
	sched := newTestScheduler(newFakeReminderStore(), users, &fakeRoadmapStore{}, mailer, &fakePusher{}, testLoc, testNow)

	require.NoError(t, sched.sweeper.RunStreakCheck(context.Background()))

	_, touched := users.updatedWith(never.ID)
	assert.False(t, touched, "users with no completions are left alone")
	_, touched = users.updatedWith(active.ID)
	assert.False(t, touched, "a completion yesterday keeps the streak alive")

	update, touched := users.updatedWith(lapsed.ID)
	require.True(t, touched, "a two day gap resets the streak")
	assert.Equal(t, 0, update["streak"])

	sent := mailer.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, lapsed.Email, sent[0].to)
	assert.Equal(t, "Streak reset", sent[0].subject)
}

func TestRunStreakCheckResetsAtExactlyTwoDays(t *testing.T) {
	// Completed late at night two calendar days ago. Wall clock distance is
	// under 48h but the day gap is 2, so the streak resets.
	user := models.User{
		ID:                 primitive.NewObjectID(),
		Email:              "edge@example.com",
		Streak:             3,
		LastCompletionDate: time.Date(2026, time.March, 8, 23, 30, 0, 0, testLoc),
	}
	users := newFakeUserStore(user)
	sched := newTestScheduler(newFakeReminderStore(), users, &fakeRoadmapStore{}, &fakeMailer{}, &fakePusher{}, testLoc, testNow)

	require.NoError(t, sched.sweeper.RunStreakCheck(context.Background()))

	update, touched := users.updatedWith(user.ID)
	require.True(t, touched)
	assert.Equal(t, 0, update["streak"])
}
