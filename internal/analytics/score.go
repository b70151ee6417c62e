// Package analytics turns classified problems into per-category scores and a
// composite GPA.
package analytics

import "github.com/TelmenBay/leetlog/internal/readiness"

// MaxScore is the highest score a single problem can earn.
const MaxScore = 5

var scoreTable = map[readiness.Readiness]map[readiness.Difficulty]int{
	readiness.Mastered: {readiness.Easy: 3, readiness.Medium: 4, readiness.Hard: 5},
	readiness.Rusty:    {readiness.Easy: 2, readiness.Medium: 3, readiness.Hard: 4},
	readiness.Revisit:  {readiness.Easy: 2, readiness.Medium: 3, readiness.Hard: 4},
	readiness.Weak:     {readiness.Easy: 1, readiness.Medium: 2, readiness.Hard: 3},
	readiness.None:     {readiness.Easy: 0, readiness.Medium: 0, readiness.Hard: 0},
}

// Score maps a readiness label and difficulty to 0..5. Unknown combinations
// score 0.
func Score(r readiness.Readiness, d readiness.Difficulty) int {
	return scoreTable[r][d]
}
