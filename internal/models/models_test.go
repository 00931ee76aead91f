package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoadmapProgress(t *testing.T) {
	empty := Roadmap{}
	assert.Equal(t, 0, empty.Progress(), "a roadmap without steps reports zero progress")

	r := Roadmap{Steps: []RoadmapStep{
		{Completed: true},
		{Completed: true},
		{Completed: true},
		{},
	}}
	assert.Equal(t, 3, r.CompletedSteps())
	assert.Equal(t, 75, r.Progress())

	third := Roadmap{Steps: []RoadmapStep{{Completed: true}, {}, {}}}
	assert.Equal(t, 33, third.Progress(), "progress rounds to the nearest whole percent")

	done := Roadmap{Steps: []RoadmapStep{{Completed: true}}}
	assert.Equal(t, 100, done.Progress())
}

func TestValidReminderType(t *testing.T) {
	assert.True(t, ValidReminderType(ReminderTypeRoadmap))
	assert.True(t, ValidReminderType(ReminderTypeMotivation))
	assert.True(t, ValidReminderType(ReminderTypeCustom))
	assert.False(t, ValidReminderType("weekly-digest"))
	assert.False(t, ValidReminderType(""))
}

func TestValidRepeat(t *testing.T) {
	assert.True(t, ValidRepeat(RepeatOnce))
	assert.True(t, ValidRepeat(RepeatDaily))
	assert.False(t, ValidRepeat("weekly"))
	assert.False(t, ValidRepeat(""))
}

func TestFutureMessageUnlocked(t *testing.T) {
	unlock := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	m := FutureMessage{UnlockDate: unlock}

	assert.False(t, m.Unlocked(unlock.Add(-time.Second)))
	assert.True(t, m.Unlocked(unlock), "a message unlocks exactly at its unlock instant")
	assert.True(t, m.Unlocked(unlock.Add(time.Hour)))
}

func TestUserPublicStripsSecrets(t *testing.T) {
	u := User{
		Name:           "Asha",
		Email:          "asha@example.com",
		HashedPassword: "bcrypt-material",
		Theme:          "dark",
		Streak:         4,
		ResetToken:     "secret-token",
		PushSubscription: &PushSubscription{
			Endpoint: "https://push.example.com/abc",
		},
	}

	pub := u.Public()
	assert.Equal(t, "Asha", pub.Name)
	assert.Equal(t, "asha@example.com", pub.Email)
	assert.Equal(t, "dark", pub.Theme)
	assert.Equal(t, 4, pub.Streak)
}
