package domain

import "testing"

func logsOf(n int) []WorkoutLog {
	logs := make([]WorkoutLog, n)
	for i := range logs {
		logs[i] = WorkoutLog{ID: "l", StudentID: "s1"}
	}
	return logs
}

func TestEvaluate(t *testing.T) {
	t.Run("log count locked below threshold", func(t *testing.T) {
		a := Achievement{ID: "a", CriteriaType: CriteriaLogCount, CriteriaValue: 10}
		p := Evaluate(a, logsOf(9))
		if p.Unlocked {
			t.Error("9 logs should not unlock a threshold of 10")
		}
		if p.Current != 9 {
			t.Errorf("current = %v, want 9", p.Current)
		}
	})

	t.Run("log count unlocks at threshold", func(t *testing.T) {
		a := Achievement{ID: "a", CriteriaType: CriteriaLogCount, CriteriaValue: 10}
		if p := Evaluate(a, logsOf(10)); !p.Unlocked {
			t.Error("10 logs should unlock a threshold of 10")
		}
	})

	t.Run("max weight scans every item", func(t *testing.T) {
		a := Achievement{ID: "a", CriteriaType: CriteriaMaxWeight, CriteriaValue: 100}
		logs := []WorkoutLog{
			{Items: []LogItem{{Exercise: "squat", Weight: 40}, {Exercise: "bench", Weight: 80}}},
			{Items: []LogItem{{Exercise: "deadlift", Weight: 99}}},
		}
		p := Evaluate(a, logs)
		if p.Unlocked || p.Current != 99 {
			t.Errorf("got current=%v unlocked=%v, want 99 locked", p.Current, p.Unlocked)
		}

		logs = append(logs, WorkoutLog{Items: []LogItem{{Exercise: "deadlift", Weight: 100}}})
		if p := Evaluate(a, logs); !p.Unlocked || p.Current != 100 {
			t.Errorf("got current=%v unlocked=%v, want 100 unlocked", p.Current, p.Unlocked)
		}
	})

	t.Run("max weight honors exercise restriction", func(t *testing.T) {
		a := Achievement{ID: "a", CriteriaType: CriteriaMaxWeight, CriteriaValue: 100, CriteriaExercise: "deadlift"}
		logs := []WorkoutLog{
			{Items: []LogItem{{Exercise: "leg press", Weight: 200}, {Exercise: "deadlift", Weight: 90}}},
		}
		p := Evaluate(a, logs)
		if p.Current != 90 {
			t.Errorf("current = %v, want 90 (leg press must not count)", p.Current)
		}
	})

	t.Run("plan count only counts completed plans", func(t *testing.T) {
		a := Achievement{ID: "a", CriteriaType: CriteriaPlanCount, CriteriaValue: 2}
		logs := []WorkoutLog{
			{IsPlanCompleted: true},
			{IsPlan: true},
			{},
			{IsPlanCompleted: true},
		}
		p := Evaluate(a, logs)
		if p.Current != 2 || !p.Unlocked {
			t.Errorf("got current=%v unlocked=%v, want 2 unlocked", p.Current, p.Unlocked)
		}
	})

	t.Run("total time treats missing duration as zero", func(t *testing.T) {
		a := Achievement{ID: "a", CriteriaType: CriteriaTotalTime, CriteriaValue: 90}
		logs := []WorkoutLog{{Duration: 60}, {}, {Duration: 30}}
		p := Evaluate(a, logs)
		if p.Current != 90 || !p.Unlocked {
			t.Errorf("got current=%v unlocked=%v, want 90 unlocked", p.Current, p.Unlocked)
		}
	})
}

func TestSystemAchievements(t *testing.T) {
	set := SystemAchievements()
	if len(set) != 5 {
		t.Fatalf("got %d system achievements, want 5", len(set))
	}
	for _, a := range set {
		if a.CreatorID != SystemCreatorID {
			t.Errorf("%s: creatorId = %s, want %s", a.ID, a.CreatorID, SystemCreatorID)
		}
		if a.CriteriaValue <= 0 {
			t.Errorf("%s: non-positive threshold %v", a.ID, a.CriteriaValue)
		}
	}
}
