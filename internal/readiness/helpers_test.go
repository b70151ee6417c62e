package readiness

import "time"

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func intp(v int) *int { return &v }

func timep(t time.Time) *time.Time { return &t }

func daysAgo(d int) time.Time { return now.AddDate(0, 0, -d) }

// logAt builds a log created at createdAt with the standard one-month expiry.
func logAt(id string, createdAt time.Time, secs int, status LogStatus) Log {
	exp := NewLogExpiry(createdAt)
	return Log{ID: id, TimeSpent: secs, Status: status, CreatedAt: createdAt, ExpiresAt: &exp}
}
