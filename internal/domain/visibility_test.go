package domain

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestVisibleLogs(t *testing.T) {
	coach := User{ID: "c1", Name: "coach-one", Role: RoleCoach, Status: StatusActive}
	otherCoach := User{ID: "c2", Name: "coach-two", Role: RoleCoach, Status: StatusActive}
	alice := User{ID: "s1", Name: "alice", Role: RoleStudent, Status: StatusActive, CoachID: "c1"}
	bob := User{ID: "s2", Name: "bob", Role: RoleStudent, Status: StatusActive, CoachID: "c1"}
	carol := User{ID: "s3", Name: "carol", Role: RoleStudent, Status: StatusActive, CoachID: "c2"}
	users := []User{coach, otherCoach, alice, bob, carol}

	logs := []WorkoutLog{
		{ID: "l1", StudentID: "s1", Date: day(1)},
		{ID: "l2", StudentID: "s2", Date: day(2)},
		{ID: "l3", StudentID: "s2", Date: day(3), IsShared: true},
		{ID: "l4", StudentID: "s3", Date: day(4), IsShared: true},
	}

	t.Run("student sees own plus shared peer logs", func(t *testing.T) {
		got := VisibleLogs(&alice, logs, users, "")
		want := []string{"l3", "l1"} // newest first
		if len(got) != len(want) {
			t.Fatalf("got %d logs, want %d", len(got), len(want))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("got[%d] = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("shared log from another coach's student stays hidden", func(t *testing.T) {
		for _, l := range VisibleLogs(&alice, logs, users, "") {
			if l.ID == "l4" {
				t.Error("log l4 belongs to another cohort and should not be visible")
			}
		}
	})

	t.Run("coach sees only own roster", func(t *testing.T) {
		got := VisibleLogs(&coach, logs, users, "")
		if len(got) != 3 {
			t.Fatalf("got %d logs, want 3", len(got))
		}
		for _, l := range got {
			if l.StudentID == "s3" {
				t.Error("coach c1 should not see logs of student s3")
			}
		}
	})

	t.Run("coach view narrowed to one student", func(t *testing.T) {
		got := VisibleLogs(&coach, logs, users, "s2")
		if len(got) != 2 {
			t.Fatalf("got %d logs, want 2", len(got))
		}
		for _, l := range got {
			if l.StudentID != "s2" {
				t.Errorf("unexpected studentId %s", l.StudentID)
			}
		}
	})

	t.Run("equal dates keep input order", func(t *testing.T) {
		sameDay := []WorkoutLog{
			{ID: "a", StudentID: "s1", Date: day(5)},
			{ID: "b", StudentID: "s1", Date: day(5)},
			{ID: "c", StudentID: "s1", Date: day(5)},
		}
		got := VisibleLogs(&alice, sameDay, users, "")
		for i, id := range []string{"a", "b", "c"} {
			if got[i].ID != id {
				t.Fatalf("tie order broken: got[%d] = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("nil viewer sees nothing", func(t *testing.T) {
		if got := VisibleLogs(nil, logs, users, ""); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestVisibleExercises(t *testing.T) {
	coach := User{ID: "c1", Role: RoleCoach, Status: StatusActive}
	student := User{ID: "s1", Role: RoleStudent, Status: StatusActive, CoachID: "c1"}
	unassigned := User{ID: "s9", Role: RoleStudent, Status: StatusActive}

	exercises := []Exercise{
		{ID: "e1", AuthorID: "c1", Name: "Bench Press", Muscle: "chest", Guide: "keep shoulders retracted"},
		{ID: "e2", AuthorID: "c1", Name: "Deadlift", Muscle: "back"},
		{ID: "e3", AuthorID: "c2", Name: "Bench Press", Muscle: "chest"},
	}

	t.Run("coach sees own entries only", func(t *testing.T) {
		got := VisibleExercises(&coach, exercises, "")
		if len(got) != 2 {
			t.Fatalf("got %d, want 2", len(got))
		}
	})

	t.Run("student inherits the coach's wiki", func(t *testing.T) {
		got := VisibleExercises(&student, exercises, "")
		if len(got) != 2 {
			t.Fatalf("got %d, want 2", len(got))
		}
		for _, e := range got {
			if e.AuthorID != "c1" {
				t.Errorf("exercise %s authored by %s, want c1", e.ID, e.AuthorID)
			}
		}
	})

	t.Run("unassigned student sees nothing", func(t *testing.T) {
		if got := VisibleExercises(&unassigned, exercises, ""); len(got) != 0 {
			t.Errorf("got %d, want 0", len(got))
		}
	})

	t.Run("query matches name muscle and guide, case-insensitive", func(t *testing.T) {
		if got := VisibleExercises(&coach, exercises, "BENCH"); len(got) != 1 || got[0].ID != "e1" {
			t.Errorf("name search: got %v", got)
		}
		if got := VisibleExercises(&coach, exercises, "back"); len(got) != 1 || got[0].ID != "e2" {
			t.Errorf("muscle search: got %v", got)
		}
		if got := VisibleExercises(&coach, exercises, "shoulders"); len(got) != 1 || got[0].ID != "e1" {
			t.Errorf("guide search: got %v", got)
		}
		if got := VisibleExercises(&coach, exercises, "rowing"); len(got) != 0 {
			t.Errorf("no-match search: got %v", got)
		}
	})
}

func TestVisibleBattles(t *testing.T) {
	coach := User{ID: "c1", Role: RoleCoach, Status: StatusActive}
	alice := User{ID: "s1", Role: RoleStudent, Status: StatusActive, CoachID: "c1"}
	bob := User{ID: "s2", Role: RoleStudent, Status: StatusActive, CoachID: "c1"}
	carol := User{ID: "s3", Role: RoleStudent, Status: StatusActive, CoachID: "c2"}
	users := []User{coach, alice, bob, carol}

	battles := []Battle{
		{ID: "b1", AuthorID: "s1", TargetStudentID: TargetAll},
		{ID: "b2", AuthorID: "s1", TargetStudentID: "s2"},
		{ID: "b3", AuthorID: "s3", TargetStudentID: "s1"},
		{ID: "b4", AuthorID: "s3", TargetStudentID: "s3"},
	}

	ids := func(bs []Battle) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.ID
		}
		return out
	}

	t.Run("all mode returns everything", func(t *testing.T) {
		if got := VisibleBattles(&alice, battles, users, BattleModeAll); len(got) != len(battles) {
			t.Errorf("got %v", ids(got))
		}
	})

	t.Run("student sent mode matches author", func(t *testing.T) {
		got := VisibleBattles(&alice, battles, users, BattleModeSent)
		if len(got) != 2 || got[0].ID != "b1" || got[1].ID != "b2" {
			t.Errorf("got %v, want [b1 b2]", ids(got))
		}
	})

	t.Run("student received mode matches target", func(t *testing.T) {
		got := VisibleBattles(&alice, battles, users, BattleModeReceived)
		if len(got) != 1 || got[0].ID != "b3" {
			t.Errorf("got %v, want [b3]", ids(got))
		}
	})

	t.Run("coach sent mode covers the whole roster", func(t *testing.T) {
		got := VisibleBattles(&coach, battles, users, BattleModeSent)
		if len(got) != 2 || got[0].ID != "b1" || got[1].ID != "b2" {
			t.Errorf("got %v, want [b1 b2]", ids(got))
		}
	})

	t.Run("coach received mode skips open battles", func(t *testing.T) {
		got := VisibleBattles(&coach, battles, users, BattleModeReceived)
		if len(got) != 2 || got[0].ID != "b2" || got[1].ID != "b3" {
			t.Errorf("got %v, want [b2 b3]", ids(got))
		}
	})
}
