package journal

import (
	"time"

	"github.com/TelmenBay/leetlog/internal/readiness"
	"github.com/TelmenBay/leetlog/internal/store"
)

// ProblemView is problem metadata as returned to clients.
type ProblemView struct {
	ID          string               `json:"id"`
	ExternalID  int                  `json:"leetcodeId"`
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	Difficulty  readiness.Difficulty `json:"difficulty"`
	Tags        []string             `json:"tags"`
	Description string               `json:"description,omitempty"`
	PaidOnly    bool                 `json:"paidOnly"`
}

// LogView is one attempt as returned to clients.
type LogView struct {
	ID            string              `json:"id"`
	UserProblemID string              `json:"userProblemId"`
	TimeSpent     int                 `json:"timeSpent"`
	Status        readiness.LogStatus `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	Solution      string              `json:"solution,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	ExpiresAt     time.Time           `json:"expiresAt"`
	Active        bool                `json:"active"`
}

// UserProblemView is a tracked problem with its derived readiness.
type UserProblemView struct {
	ID        string                  `json:"id"`
	Status    readiness.ProblemStatus `json:"status"`
	TimeSpent *int                    `json:"timeSpent"`
	BestTime  string                  `json:"bestTime"`
	SolvedAt  *time.Time              `json:"solvedAt"`
	Readiness readiness.Readiness     `json:"readiness"`
	Problem   ProblemView             `json:"problem"`
	Logs      []LogView               `json:"logs"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// SubmitResult is returned after a new log is recorded.
type SubmitResult struct {
	Log         LogView         `json:"log"`
	UserProblem UserProblemView `json:"userProblem"`
}

func newProblemView(p *store.Problem) ProblemView {
	if p == nil {
		return ProblemView{Tags: []string{}}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProblemView{
		ID:          p.ID,
		ExternalID:  p.ExternalID,
		Title:       p.Title,
		Slug:        p.Slug,
		Difficulty:  p.Difficulty,
		Tags:        tags,
		Description: p.Description,
		PaidOnly:    p.PaidOnly,
	}
}

func newLogView(l store.Log, now time.Time) LogView {
	e := l.Entry()
	return LogView{
		ID:            l.ID,
		UserProblemID: l.UserProblemID,
		TimeSpent:     l.TimeSpent,
		Status:        l.Status,
		Notes:         l.Notes,
		Solution:      l.Solution,
		CreatedAt:     l.CreatedAt,
		ExpiresAt:     readiness.ExpiresAt(e),
		Active:        readiness.IsActive(e, now),
	}
}

// recentActive mirrors the dashboard read: consider the newest fetch logs,
// keep at most keep of those still active.
func recentActive(logs []store.Log, now time.Time) []store.Log {
	if len(logs) > DashboardLogFetch {
		logs = logs[:DashboardLogFetch]
	}
	out := make([]store.Log, 0, DashboardLogKeep)
	for _, l := range logs {
		if len(out) == DashboardLogKeep {
			break
		}
		if readiness.IsActive(l.Entry(), now) {
			out = append(out, l)
		}
	}
	return out
}

// newUserProblemView classifies up at now from its recent active logs.
func newUserProblemView(up *store.UserProblem, now time.Time) UserProblemView {
	active := recentActive(up.Logs, now)

	var difficulty readiness.Difficulty
	if up.Problem != nil {
		difficulty = up.Problem.Difficulty
	}
	r := readiness.Classify(readiness.Input{
		TimeSpent:  up.TimeSpent,
		SolvedAt:   up.SolvedAt,
		Difficulty: difficulty,
		Logs:       store.Entries(active),
	}, now)

	logs := make([]LogView, len(active))
	for i, l := range active {
		logs[i] = newLogView(l, now)
	}

	return UserProblemView{
		ID:        up.ID,
		Status:    up.Status,
		TimeSpent: up.TimeSpent,
		BestTime:  readiness.FormatTime(up.TimeSpent),
		SolvedAt:  up.SolvedAt,
		Readiness: r,
		Problem:   newProblemView(up.Problem),
		Logs:      logs,
		CreatedAt: up.CreatedAt,
		UpdatedAt: up.UpdatedAt,
	}
}
