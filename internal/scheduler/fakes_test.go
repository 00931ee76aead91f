package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spoorthyhm/dreampath/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the store and delivery contracts.

type fakeReminderStore struct {
	mu        sync.Mutex
	reminders map[primitive.ObjectID]models.Reminder
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{reminders: make(map[primitive.ObjectID]models.Reminder)}
}

func (f *fakeReminderStore) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reminder.ID.IsZero() {
		reminder.ID = primitive.NewObjectID()
	}
	f.reminders[reminder.ID] = *reminder
	saved := *reminder
	return &saved, nil
}

func (f *fakeReminderStore) GetAllReminders(ctx context.Context) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Reminder, 0, len(f.reminders))
	for _, r := range f.reminders {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReminderStore) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reminders, id)
	return nil
}

func (f *fakeReminderStore) DeleteExpiredOnceReminders(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, r := range f.reminders {
		if r.Repeat == models.RepeatOnce && r.Time.Before(now) {
			delete(f.reminders, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeReminderStore) has(id primitive.ObjectID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.reminders[id]
	return ok
}

func (f *fakeReminderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reminders)
}

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]models.User
	updates map[primitive.ObjectID]bson.M
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	f := &fakeUserStore{
		users:   make(map[primitive.ObjectID]models.User),
		updates: make(map[primitive.ObjectID]bson.M),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	out := u
	return &out, nil
}

func (f *fakeUserStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	if v, ok := update["streak"]; ok {
		u.Streak = v.(int)
	}
	f.users[id] = u
	f.updates[id] = update
	out := u
	return &out, nil
}

func (f *fakeUserStore) updatedWith(id primitive.ObjectID) (bson.M, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.updates[id]
	return m, ok
}

type fakeRoadmapStore struct {
	roadmaps []models.Roadmap
}

func (f *fakeRoadmapStore) GetAllRoadmaps(ctx context.Context) ([]models.Roadmap, error) {
	return f.roadmaps, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailer) messages() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMail, len(f.sent))
	copy(out, f.sent)
	return out
}

type fakePusher struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakePusher) Send(sub *models.PushSubscription, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, title+": "+body)
	return nil
}

// newTestScheduler wires a Scheduler around fakes with a frozen clock in the
// given location.
func newTestScheduler(reminders *fakeReminderStore, users *fakeUserStore, roadmaps *fakeRoadmapStore, mailer *fakeMailer, pusher *fakePusher, loc *time.Location, now time.Time) *Scheduler {
	s := New(Config{
		Reminders: reminders,
		Users:     users,
		Roadmaps:  roadmaps,
		Mailer:    mailer,
		Pusher:    pusher,
		Location:  loc,
	})
	s.now = func() time.Time { return now }
	s.sweeper.now = s.now
	return s
}
