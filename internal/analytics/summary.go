package analytics

import (
	"math"

	"github.com/TelmenBay/leetlog/internal/readiness"
)

// Problem is one tracked problem as seen by analytics.
type Problem struct {
	Tags       []string
	Difficulty readiness.Difficulty
	TimeSpent  *int
	Readiness  readiness.Readiness
}

// CategoryScore is the mean score of the problems matching one category.
type CategoryScore struct {
	Group    Group   `json:"group"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Count    int     `json:"count"`
}

// DifficultyStats summarizes the problems of one difficulty.
type DifficultyStats struct {
	Difficulty readiness.Difficulty        `json:"difficulty"`
	Total      int                         `json:"total"`
	Solved     int                         `json:"solved"`
	AvgTime    *int                        `json:"avgTime"`
	Readiness  map[readiness.Readiness]int `json:"readiness"`
}

// Summary is the full analytics view for one user.
type Summary struct {
	TotalProblems  int                         `json:"totalProblems"`
	Solved         int                         `json:"solved"`
	AvgTime        *int                        `json:"avgTime"`
	Readiness      map[readiness.Readiness]int `json:"readinessCounts"`
	Difficulties   []DifficultyStats           `json:"difficultyStats"`
	DataStructures []CategoryScore             `json:"dsScores"`
	Algorithms     []CategoryScore             `json:"algoScores"`
	GPA            float64                     `json:"gpa"`
}

// Summarize aggregates problems against tax. Solved counts only problems
// holding a best time; problems without one still count in category means.
func Summarize(problems []Problem, tax Taxonomy) Summary {
	s := Summary{
		TotalProblems: len(problems),
		Readiness:     map[readiness.Readiness]int{},
	}
	for _, r := range readiness.All() {
		s.Readiness[r] = 0
	}

	var times []int
	for _, p := range problems {
		s.Readiness[p.Readiness]++
		if p.TimeSpent != nil {
			times = append(times, *p.TimeSpent)
		}
	}
	s.Solved = len(times)
	s.AvgTime = meanSeconds(times)

	for _, d := range readiness.AllDifficulties() {
		s.Difficulties = append(s.Difficulties, difficultyStats(problems, d))
	}

	s.DataStructures = CategoryScores(problems, GroupDataStructures, tax.DataStructures)
	s.Algorithms = CategoryScores(problems, GroupAlgorithms, tax.Algorithms)
	s.GPA = GPA(append(append([]CategoryScore{}, s.DataStructures...), s.Algorithms...))
	return s
}

// CategoryScores scores every category in cats. Empty categories score 0.
func CategoryScores(problems []Problem, group Group, cats []Category) []CategoryScore {
	out := make([]CategoryScore, 0, len(cats))
	for _, c := range cats {
		sum, n := 0, 0
		for _, p := range problems {
			if c.Matches(p.Tags) {
				sum += Score(p.Readiness, p.Difficulty)
				n++
			}
		}
		cs := CategoryScore{Group: group, Category: c.Name, Count: n}
		if n > 0 {
			cs.Score = round2(float64(sum) / float64(n))
		}
		out = append(out, cs)
	}
	return out
}

// GPA is the mean of all category scores, empty ones included, rounded to
// two decimals.
func GPA(scores []CategoryScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Score
	}
	return round2(sum / float64(len(scores)))
}

func difficultyStats(problems []Problem, d readiness.Difficulty) DifficultyStats {
	ds := DifficultyStats{
		Difficulty: d,
		Readiness: map[readiness.Readiness]int{
			readiness.Mastered: 0, readiness.Revisit: 0, readiness.Weak: 0, readiness.Rusty: 0,
		},
	}
	var times []int
	for _, p := range problems {
		if p.Difficulty != d {
			continue
		}
		ds.Total++
		if p.TimeSpent != nil {
			times = append(times, *p.TimeSpent)
		}
		if p.Readiness != readiness.None {
			ds.Readiness[p.Readiness]++
		}
	}
	ds.Solved = len(times)
	ds.AvgTime = meanSeconds(times)
	return ds
}

func meanSeconds(times []int) *int {
	if len(times) == 0 {
		return nil
	}
	sum := 0
	for _, t := range times {
		sum += t
	}
	avg := int(math.Round(float64(sum) / float64(len(times))))
	return &avg
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
