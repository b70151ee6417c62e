package readiness

import (
	"strings"
	"time"
)

// Difficulty is a problem's published difficulty, normalized to lowercase.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the recognized difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty normalizes s. Unrecognized values are returned as-is
// (lowercased) so that callers degrade instead of failing.
func ParseDifficulty(s string) Difficulty {
	return Difficulty(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether d is one of easy, medium or hard.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// LogStatus is the outcome recorded on a single attempt.
type LogStatus string

const (
	LogSolved    LogStatus = "solved"
	LogAttempted LogStatus = "attempted"
)

// Valid reports whether s is a known log status.
func (s LogStatus) Valid() bool {
	return s == LogSolved || s == LogAttempted
}

// ProblemStatus is a user's overall progress on a problem.
type ProblemStatus string

const (
	NotStarted ProblemStatus = "not_started"
	InProgress ProblemStatus = "in_progress"
	Solved     ProblemStatus = "solved"
)

// Log is one timed attempt. ExpiresAt is nil for legacy entries written
// before expiry was recorded.
type Log struct {
	ID        string
	TimeSpent int // seconds
	Status    LogStatus
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// Snapshot is the persisted aggregate of a user's logs on one problem.
type Snapshot struct {
	TimeSpent *int
	Status    ProblemStatus
	SolvedAt  *time.Time
}
