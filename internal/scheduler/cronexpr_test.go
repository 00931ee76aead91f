package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyCronSpec(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"evening", time.Date(2026, time.March, 10, 21, 30, 0, 0, testLoc), "30 21 * * *"},
		{"midnight", time.Date(2026, time.March, 10, 0, 0, 0, 0, testLoc), "0 0 * * *"},
		{"morning", time.Date(2026, time.March, 10, 9, 5, 45, 0, testLoc), "5 9 * * *"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyCronSpec(tt.in))
		})
	}
}
