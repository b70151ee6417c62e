package readiness

import (
	"fmt"
	"time"
)

// Readiness is the freshness label derived for a problem on every read.
type Readiness int

const (
	// None means the problem has never been solved.
	None Readiness = iota
	Weak
	Revisit
	Rusty
	Mastered
)

// All returns every readiness label, strongest first, ending with None.
func All() []Readiness {
	return []Readiness{Mastered, Rusty, Revisit, Weak, None}
}

func (r Readiness) String() string {
	switch r {
	case Mastered:
		return "mastered"
	case Rusty:
		return "rusty"
	case Revisit:
		return "revisit"
	case Weak:
		return "weak"
	default:
		return "-"
	}
}

// MarshalText encodes r using its label so JSON carries "mastered", "-", etc.
func (r Readiness) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a label produced by MarshalText.
func (r *Readiness) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = p
	return nil
}

// Parse converts a label back into a Readiness.
func Parse(s string) (Readiness, error) {
	for _, r := range All() {
		if r.String() == s {
			return r, nil
		}
	}
	return None, fmt.Errorf("unknown readiness %q", s)
}

// Band holds the minute thresholds for one difficulty. Times strictly below
// Mastered are mastered; times up to and including Revisit are revisit.
type Band struct {
	Mastered float64
	Revisit  float64
}

// Bands maps each difficulty to its thresholds, in minutes.
var Bands = map[Difficulty]Band{
	Easy:   {Mastered: 10, Revisit: 20},
	Medium: {Mastered: 25, Revisit: 40},
	Hard:   {Mastered: 45, Revisit: 75},
}

// Input is what the classifier needs from a stored problem.
type Input struct {
	TimeSpent  *int
	SolvedAt   *time.Time
	Difficulty Difficulty
	Logs       []Log
}

// Classify derives the readiness label for in at now. It is total: every
// input maps to exactly one label. Only a missing time means "never solved";
// a recorded time of 0 is classified like any other.
func Classify(in Input, now time.Time) Readiness {
	if in.TimeSpent == nil || in.SolvedAt == nil {
		return None
	}

	active := ActiveLogs(in.Logs, now)
	if len(active) == 0 {
		return Weak
	}
	if newest(active).Status == LogAttempted {
		return Weak
	}

	band, ok := Bands[in.Difficulty]
	if !ok {
		return None
	}

	minutes := float64(*in.TimeSpent) / 60
	var base Readiness
	switch {
	case minutes < band.Mastered:
		base = Mastered
	case minutes <= band.Revisit:
		base = Revisit
	default:
		base = Weak
	}

	if base == Mastered && IsStale(*in.SolvedAt, now) {
		return Rusty
	}
	return base
}

// IsStale reports whether solvedAt is more than one calendar month before now.
func IsStale(solvedAt, now time.Time) bool {
	return solvedAt.Before(now.AddDate(0, -1, 0))
}

// newest returns the most recently created log. logs must be non-empty.
func newest(logs []Log) Log {
	n := logs[0]
	for _, l := range logs[1:] {
		if l.CreatedAt.After(n.CreatedAt) {
			n = l
		}
	}
	return n
}
