package readiness

import (
	"encoding/json"
	"testing"
	"time"
)

func solvedInput(d Difficulty, secs int, solvedAt time.Time) Input {
	return Input{
		TimeSpent:  intp(secs),
		SolvedAt:   timep(solvedAt),
		Difficulty: d,
		Logs:       []Log{logAt("s", solvedAt, secs, LogSolved)},
	}
}

func TestClassify_NeverSolved(t *testing.T) {
	cases := []Input{
		{Difficulty: Easy},
		{TimeSpent: intp(60), Difficulty: Easy},
		{SolvedAt: timep(now), Difficulty: Easy},
	}
	for _, in := range cases {
		if got := Classify(in, now); got != None {
			t.Errorf("Classify(%+v) = %v, want -", in, got)
		}
	}
}

func TestClassify_ZeroTimeIsNotNil(t *testing.T) {
	in := solvedInput(Easy, 0, daysAgo(1))
	if got := Classify(in, now); got != Mastered {
		t.Errorf("Classify = %v, want mastered", got)
	}

	in.TimeSpent = nil
	if got := Classify(in, now); got != None {
		t.Errorf("Classify(nil time) = %v, want none", got)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		d    Difficulty
		secs int
		want Readiness
	}{
		{Easy, 10*60 - 1, Mastered},
		{Easy, 10 * 60, Revisit},
		{Easy, 20 * 60, Revisit},
		{Easy, 20*60 + 1, Weak},
		{Medium, 25*60 - 1, Mastered},
		{Medium, 25 * 60, Revisit},
		{Medium, 40 * 60, Revisit},
		{Medium, 40*60 + 1, Weak},
		{Hard, 45*60 - 1, Mastered},
		{Hard, 45 * 60, Revisit},
		{Hard, 75 * 60, Revisit},
		{Hard, 75*60 + 1, Weak},
	}
	for _, c := range cases {
		got := Classify(solvedInput(c.d, c.secs, daysAgo(1)), now)
		if got != c.want {
			t.Errorf("Classify(%s, %ds) = %v, want %v", c.d, c.secs, got, c.want)
		}
	}
}

func TestClassify_UnknownDifficulty(t *testing.T) {
	in := solvedInput(Difficulty("extreme"), 60, daysAgo(1))
	if got := Classify(in, now); got != None {
		t.Errorf("Classify = %v, want -", got)
	}
}

func TestClassify_LatestAttemptOverrides(t *testing.T) {
	in := solvedInput(Easy, 60, daysAgo(3))
	in.Logs = append(in.Logs, logAt("try", daysAgo(1), 0, LogAttempted))
	if got := Classify(in, now); got != Weak {
		t.Errorf("Classify = %v, want weak", got)
	}
}

func TestClassify_AttemptThenSolveIsNotWeak(t *testing.T) {
	in := solvedInput(Easy, 60, daysAgo(1))
	in.Logs = append(in.Logs, logAt("try", daysAgo(3), 0, LogAttempted))
	if got := Classify(in, now); got != Mastered {
		t.Errorf("Classify = %v, want mastered", got)
	}
}

func TestClassify_AllLogsExpired(t *testing.T) {
	in := solvedInput(Easy, 60, daysAgo(50))
	if got := Classify(in, now); got != Weak {
		t.Errorf("Classify = %v, want weak", got)
	}
}

func TestClassify_DecayLaw(t *testing.T) {
	// solvedAt one month and one day ago, with a fresh solved log keeping
	// the log set non-empty.
	stale := now.AddDate(0, -1, -1)
	in := Input{
		TimeSpent:  intp(120),
		SolvedAt:   timep(stale),
		Difficulty: Easy,
		Logs:       []Log{logAt("recent", daysAgo(2), 120, LogSolved)},
	}
	if got := Classify(in, now); got != Rusty {
		t.Errorf("Classify(1 month + 1 day) = %v, want rusty", got)
	}

	in.SolvedAt = timep(daysAgo(29))
	if got := Classify(in, now); got != Mastered {
		t.Errorf("Classify(29 days) = %v, want mastered", got)
	}
}

func TestClassify_DecayOnlyDowngradesMastered(t *testing.T) {
	in := Input{
		TimeSpent:  intp(15 * 60),
		SolvedAt:   timep(daysAgo(60)),
		Difficulty: Easy,
		Logs:       []Log{logAt("recent", daysAgo(2), 15*60, LogSolved)},
	}
	if got := Classify(in, now); got != Revisit {
		t.Errorf("Classify = %v, want revisit", got)
	}
}

func TestClassify_Totality(t *testing.T) {
	valid := map[Readiness]bool{}
	for _, r := range All() {
		valid[r] = true
	}
	diffs := []Difficulty{Easy, Medium, Hard, "", "Expert"}
	times := []*int{nil, intp(0), intp(299), intp(1800), intp(99999)}
	solved := []*time.Time{nil, timep(now), timep(daysAgo(45)), timep(now.Add(time.Hour))}
	logSets := [][]Log{
		nil,
		{logAt("a", daysAgo(1), 10, LogSolved)},
		{logAt("b", daysAgo(60), 10, LogSolved)},
		{logAt("c", daysAgo(1), 0, LogAttempted), {ID: "legacy", CreatedAt: daysAgo(2), Status: LogSolved}},
	}
	for _, d := range diffs {
		for _, ts := range times {
			for _, sa := range solved {
				for _, logs := range logSets {
					got := Classify(Input{TimeSpent: ts, SolvedAt: sa, Difficulty: d, Logs: logs}, now)
					if !valid[got] {
						t.Fatalf("Classify returned %d outside the label set", got)
					}
				}
			}
		}
	}
}

func TestClassify_ScenarioA(t *testing.T) {
	in := Input{
		TimeSpent:  intp(300),
		SolvedAt:   timep(now),
		Difficulty: Easy,
		Logs:       []Log{logAt("a", now, 300, LogSolved)},
	}
	if got := Classify(in, now); got != Mastered {
		t.Errorf("Classify = %v, want mastered", got)
	}
}

func TestClassify_ScenarioB(t *testing.T) {
	if got := Classify(solvedInput(Medium, 1800, daysAgo(10)), now); got != Revisit {
		t.Errorf("Classify = %v, want revisit", got)
	}
}

func TestClassify_ScenarioC(t *testing.T) {
	in := Input{
		TimeSpent:  intp(2000),
		SolvedAt:   timep(daysAgo(45)),
		Difficulty: Hard,
		Logs:       []Log{logAt("recent", daysAgo(5), 2000, LogSolved)},
	}
	if got := Classify(in, now); got != Rusty {
		t.Errorf("Classify = %v, want rusty", got)
	}
}

func TestClassify_ScenarioD(t *testing.T) {
	in := Input{
		TimeSpent:  intp(60),
		SolvedAt:   timep(daysAgo(40)),
		Difficulty: Easy,
		Logs: []Log{
			logAt("old", daysAgo(40), 60, LogSolved),
			logAt("try", daysAgo(2), 0, LogAttempted),
		},
	}
	if got := Classify(in, now); got != Weak {
		t.Errorf("Classify = %v, want weak", got)
	}
}

func TestClassify_ScenarioE(t *testing.T) {
	if got := Classify(Input{Difficulty: Medium}, now); got != None {
		t.Errorf("Classify = %v, want -", got)
	}
}

func TestReadiness_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Readiness{"a": Rusty, "b": None})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"a":"rusty","b":"-"}` {
		t.Errorf("Marshal = %s", b)
	}

	var back map[string]Readiness
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back["a"] != Rusty || back["b"] != None {
		t.Errorf("Unmarshal = %v", back)
	}
}

func TestParse_Unknown(t *testing.T) {
	if _, err := Parse("stale"); err == nil {
		t.Error("Parse(stale) = nil error, want error")
	}
}
