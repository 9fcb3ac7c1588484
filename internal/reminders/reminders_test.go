package reminders

import (
	"testing"
	"time"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 8, 28, hour, min, sec, 0, time.UTC)
}

func TestDue(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		last time.Time
		want bool
	}{
		{"exact minute, never fired", at(19, 0, 0), time.Time{}, true},
		{"late in the minute, never fired", at(19, 0, 45), time.Time{}, true},
		{"wrong hour", at(18, 0, 0), time.Time{}, false},
		{"wrong minute", at(19, 1, 0), time.Time{}, false},
		{"second poll of the same minute", at(19, 0, 30), at(19, 0, 0), false},
		{"next day", at(19, 0, 0).AddDate(0, 0, 1), at(19, 0, 0), true},
	}
	for _, tc := range cases {
		if got := due(tc.now, 19, tc.last); got != tc.want {
			t.Errorf("%s: due(%v, 19, %v) = %v, want %v", tc.name, tc.now, tc.last, got, tc.want)
		}
	}
}

func TestTickFiresOncePerMinute(t *testing.T) {
	s := &Scheduler{}

	now := at(19, 0, 5)
	if !due(now, employeeReminderHour, s.lastReminder) {
		t.Fatal("first poll of 19:00 should fire")
	}
	s.lastReminder = now

	if due(at(19, 0, 35), employeeReminderHour, s.lastReminder) {
		t.Fatal("second poll of 19:00 must be debounced")
	}
}
