package scheduler

import (
	"fmt"
	"time"
)

// DailyCronSpec translates the wall-clock time of day of t into the cron
// field pattern "minute hour * * *". The caller must pass t already in the
// scheduler's location; the resulting entry fires every day at that local
// hour and minute. One-shot reminders never go through this translation,
// they use an absolute deadline instead.
func DailyCronSpec(t time.Time) string {
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
}
