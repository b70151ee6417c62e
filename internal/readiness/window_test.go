package readiness

import (
	"testing"
	"time"
)

func TestIsActive_BeforeExpiry(t *testing.T) {
	l := Log{CreatedAt: daysAgo(5), ExpiresAt: timep(now.Add(time.Second))}
	if !IsActive(l, now) {
		t.Error("IsActive = false, want true one second before expiry")
	}
}

func TestIsActive_BoundaryExclusive(t *testing.T) {
	l := Log{CreatedAt: daysAgo(5), ExpiresAt: timep(now)}
	if IsActive(l, now) {
		t.Error("IsActive = true at expiresAt == now, want false")
	}
}

func TestIsActive_AfterExpiry(t *testing.T) {
	l := Log{CreatedAt: daysAgo(40), ExpiresAt: timep(now.Add(-time.Nanosecond))}
	if IsActive(l, now) {
		t.Error("IsActive = true after expiry, want false")
	}
}

func TestIsActive_MonotonicAfterExpiry(t *testing.T) {
	exp := now
	l := Log{CreatedAt: daysAgo(31), ExpiresAt: &exp}
	for _, d := range []time.Duration{0, time.Millisecond, time.Hour, 24 * time.Hour, 365 * 24 * time.Hour} {
		if IsActive(l, exp.Add(d)) {
			t.Errorf("IsActive(expiresAt+%v) = true, want false", d)
		}
	}
	for _, d := range []time.Duration{time.Millisecond, time.Hour, 24 * time.Hour} {
		if !IsActive(l, exp.Add(-d)) {
			t.Errorf("IsActive(expiresAt-%v) = false, want true", d)
		}
	}
}

func TestIsActive_LegacyFallback(t *testing.T) {
	created := daysAgo(30)
	l := Log{CreatedAt: created}

	if IsActive(l, now) {
		t.Error("legacy log exactly 30 days old should be inactive")
	}
	if !IsActive(l, now.Add(-time.Second)) {
		t.Error("legacy log just under 30 days old should be active")
	}
}

func TestIsActive_LegacyUsesThirtyDaysNotMonth(t *testing.T) {
	// A 31-day month: one calendar month would still be active, 30 days is not.
	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	if IsActive(Log{CreatedAt: created}, at) {
		t.Error("legacy log past 30 days should be inactive")
	}
	stamped := logAt("x", created, 0, LogSolved)
	if !IsActive(stamped, at) {
		t.Error("stamped log within one calendar month should be active")
	}
}

func TestNewLogExpiry_OneCalendarMonth(t *testing.T) {
	created := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	want := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	if got := NewLogExpiry(created); !got.Equal(want) {
		t.Errorf("NewLogExpiry = %v, want %v", got, want)
	}
}

func TestActiveLogs_PreservesOrder(t *testing.T) {
	logs := []Log{
		logAt("a", daysAgo(1), 10, LogSolved),
		logAt("b", daysAgo(40), 10, LogSolved),
		logAt("c", daysAgo(3), 10, LogAttempted),
	}
	got := ActiveLogs(logs, now)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("ActiveLogs ids = %v, want [a c]", ids(got))
	}
}

func ids(logs []Log) []string {
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.ID
	}
	return out
}
