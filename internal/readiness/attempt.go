package readiness

import (
	"encoding/json"
	"math"
	"strings"
)

// Attempt is a normalized log submission.
type Attempt struct {
	TimeSpent int
	Status    LogStatus
	Notes     string
	Solution  string
}

// CoerceTimeSpent converts a raw decoded JSON value into whole seconds.
// Only numbers count; anything else (missing, strings, bools) becomes 0.
// Fractions are truncated, negatives clamp to 0 and values saturate at
// math.MaxInt32.
func CoerceTimeSpent(v any) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(f)
}

// NormalizeAttempt applies the submission defaults: time is coerced and an
// unknown status becomes solved when time was recorded, attempted otherwise.
func NormalizeAttempt(timeSpent any, status, notes, solution string) Attempt {
	a := Attempt{
		TimeSpent: CoerceTimeSpent(timeSpent),
		Status:    LogStatus(strings.TrimSpace(status)),
		Notes:     notes,
		Solution:  solution,
	}
	if !a.Status.Valid() {
		if a.TimeSpent > 0 {
			a.Status = LogSolved
		} else {
			a.Status = LogAttempted
		}
	}
	return a
}
