package domain

// CriteriaType selects how an achievement's progress is measured.
type CriteriaType string

const (
	CriteriaLogCount  CriteriaType = "log_count"  // number of logs
	CriteriaMaxWeight CriteriaType = "max_weight" // heaviest single item, kg
	CriteriaPlanCount CriteriaType = "plan_count" // completed plans
	CriteriaTotalTime CriteriaType = "total_time" // summed durations, minutes
)

// SystemCreatorID marks the built-in achievements.
const SystemCreatorID = "admin"

// Achievement is an unlockable award. System achievements are a fixed
// built-in set whose thresholds only the super-admin may edit; coach-defined
// ones live on the coach's user record and apply to that coach's students.
type Achievement struct {
	ID             string       `bson:"_id,omitempty" json:"id"`
	CreatorID      string       `bson:"creatorId" json:"creatorId"` // "admin" or a coach ID
	TargetAudience string       `bson:"targetAudience,omitempty" json:"targetAudience,omitempty"`
	Title          string       `bson:"title" json:"title"`
	Description    string       `bson:"description,omitempty" json:"description,omitempty"`
	Icon           string       `bson:"icon,omitempty" json:"icon,omitempty"`
	CriteriaType   CriteriaType `bson:"criteriaType" json:"criteriaType"`
	CriteriaValue  float64      `bson:"criteriaValue" json:"criteriaValue"`

	// Optional exercise-name restriction for max_weight criteria.
	CriteriaExercise string `bson:"criteriaExercise,omitempty" json:"criteriaExercise,omitempty"`
}

// Progress is the evaluation result of one achievement against a student's
// full log list.
type Progress struct {
	AchievementID string  `json:"achievementId"`
	Current       float64 `json:"current"`
	Threshold     float64 `json:"threshold"`
	Unlocked      bool    `json:"unlocked"`
}

// Evaluate computes a student's progress toward an achievement from their
// complete log list. Missing durations count as zero; a student with no
// items has a max weight of zero.
func Evaluate(a Achievement, logs []WorkoutLog) Progress {
	var current float64
	switch a.CriteriaType {
	case CriteriaLogCount:
		current = float64(len(logs))
	case CriteriaMaxWeight:
		for _, l := range logs {
			for _, item := range l.Items {
				if a.CriteriaExercise != "" && item.Exercise != a.CriteriaExercise {
					continue
				}
				if item.Weight > current {
					current = item.Weight
				}
			}
		}
	case CriteriaPlanCount:
		for _, l := range logs {
			if l.IsPlanCompleted {
				current++
			}
		}
	case CriteriaTotalTime:
		for _, l := range logs {
			current += float64(l.Duration)
		}
	}
	return Progress{
		AchievementID: a.ID,
		Current:       current,
		Threshold:     a.CriteriaValue,
		Unlocked:      current >= a.CriteriaValue,
	}
}

// MaxSelectedBadges is the pin limit for a student's displayed achievements.
const MaxSelectedBadges = 3

// SystemAchievements returns the built-in set with default thresholds. The
// set itself is fixed; only CriteriaValue may later be changed by the
// super-admin.
func SystemAchievements() []Achievement {
	return []Achievement{
		{ID: "sys-first-log", CreatorID: SystemCreatorID, Title: "新手上路", Description: "完成第一筆訓練記錄", Icon: "🏅", CriteriaType: CriteriaLogCount, CriteriaValue: 1},
		{ID: "sys-persistent", CreatorID: SystemCreatorID, Title: "持之以恆", Description: "累積 10 筆訓練記錄", Icon: "🥉", CriteriaType: CriteriaLogCount, CriteriaValue: 10},
		{ID: "sys-athlete", CreatorID: SystemCreatorID, Title: "健身運動員", Description: "累積 30 筆訓練記錄", Icon: "🥈", CriteriaType: CriteriaLogCount, CriteriaValue: 30},
		{ID: "sys-elite", CreatorID: SystemCreatorID, Title: "健身菁英", Description: "累積 50 筆訓練記錄", Icon: "🥇", CriteriaType: CriteriaLogCount, CriteriaValue: 50},
		{ID: "sys-strongman", CreatorID: SystemCreatorID, Title: "大力士", Description: "單項重量達到 100kg", Icon: "💪", CriteriaType: CriteriaMaxWeight, CriteriaValue: 100},
	}
}
