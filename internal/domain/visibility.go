package domain

import (
	"sort"
	"strings"
)

// BattleFilterMode selects which battles a listing returns.
type BattleFilterMode string

const (
	BattleModeAll      BattleFilterMode = "all"
	BattleModeReceived BattleFilterMode = "received"
	BattleModeSent     BattleFilterMode = "sent"
)

// userIndex builds an ID lookup once per filter call.
func userIndex(users []User) map[string]*User {
	idx := make(map[string]*User, len(users))
	for i := range users {
		idx[users[i].ID] = &users[i]
	}
	return idx
}

// VisibleLogs returns the subset of logs the viewer may see, newest date
// first. Students see their own logs plus peer-shared logs from students
// under the same coach. Coaches (the super-admin included, when acting as
// one) see logs of students whose coachId is theirs; a non-empty
// viewingStudentID narrows a coach's view to that one student. The sort is
// stable, so logs sharing a date keep their input order.
func VisibleLogs(viewer *User, logs []WorkoutLog, users []User, viewingStudentID string) []WorkoutLog {
	if viewer == nil {
		return nil
	}
	idx := userIndex(users)

	visible := make([]WorkoutLog, 0, len(logs))
	for _, l := range logs {
		if viewer.IsStudent() {
			if l.StudentID == viewer.ID {
				visible = append(visible, l)
				continue
			}
			if l.IsShared && viewer.CoachID != "" {
				if owner, ok := idx[l.StudentID]; ok && owner.CoachID == viewer.CoachID {
					visible = append(visible, l)
				}
			}
			continue
		}
		// Coach view: only the coach's own roster.
		owner, ok := idx[l.StudentID]
		if !ok || owner.CoachID != viewer.ID {
			continue
		}
		if viewingStudentID != "" && l.StudentID != viewingStudentID {
			continue
		}
		visible = append(visible, l)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date.After(visible[j].Date)
	})
	return visible
}

// AllLogsSorted returns every log newest first; the super-admin's "all"
// view. Stable, like VisibleLogs.
func AllLogsSorted(logs []WorkoutLog) []WorkoutLog {
	out := make([]WorkoutLog, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// VisibleExercises returns the wiki entries within the viewer's cohort: a
// coach sees only their own entries, a student only those authored by their
// assigned coach (none while unassigned). A non-empty query then filters
// case-insensitively across name, muscle and guide.
func VisibleExercises(viewer *User, exercises []Exercise, query string) []Exercise {
	if viewer == nil {
		return nil
	}
	ownerID := viewer.ID
	if viewer.IsStudent() {
		ownerID = viewer.CoachID
		if ownerID == "" {
			return []Exercise{}
		}
	}

	query = strings.ToLower(strings.TrimSpace(query))
	visible := make([]Exercise, 0, len(exercises))
	for _, e := range exercises {
		if e.AuthorID != ownerID {
			continue
		}
		if query != "" && !exerciseMatches(e, query) {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}

func exerciseMatches(e Exercise, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(e.Name), loweredQuery) ||
		strings.Contains(strings.ToLower(e.Muscle), loweredQuery) ||
		strings.Contains(strings.ToLower(e.Guide), loweredQuery)
}

// VisibleBattles filters battles by mode. "sent" is matched on the
// immutable author ID (for a coach: battles authored by any of their
// students); "received" on the target student (for a coach: battles
// targeting any of their students); "all" returns everything.
func VisibleBattles(viewer *User, battles []Battle, users []User, mode BattleFilterMode) []Battle {
	if viewer == nil {
		return nil
	}
	if mode == "" || mode == BattleModeAll {
		return battles
	}
	idx := userIndex(users)

	coachOf := func(userID string) string {
		if u, ok := idx[userID]; ok {
			return u.CoachID
		}
		return ""
	}

	visible := make([]Battle, 0, len(battles))
	for _, b := range battles {
		switch mode {
		case BattleModeSent:
			if viewer.IsCoach() {
				if coachOf(b.AuthorID) == viewer.ID {
					visible = append(visible, b)
				}
			} else if b.AuthorID == viewer.ID {
				visible = append(visible, b)
			}
		case BattleModeReceived:
			if viewer.IsCoach() {
				if b.TargetStudentID != "" && b.TargetStudentID != TargetAll && coachOf(b.TargetStudentID) == viewer.ID {
					visible = append(visible, b)
				}
			} else if b.TargetStudentID == viewer.ID {
				visible = append(visible, b)
			}
		}
	}
	return visible
}
