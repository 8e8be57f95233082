package domain

import "time"

// LogItem is a single exercise entry inside a workout log.
type LogItem struct {
	ID       string  `bson:"id" json:"id"`
	Exercise string  `bson:"exercise" json:"exercise"`
	Weight   float64 `bson:"weight" json:"weight"` // kg
	Reps     int     `bson:"reps" json:"reps"`
	Sets     int     `bson:"sets" json:"sets"`
	Muscle   string  `bson:"muscle" json:"muscle"` // muscle group tag
}

// WorkoutLog is a student's training record. A coach can also create one
// with IsPlan set: a prescribed routine the student has not performed yet.
// When the student submits the plan it is completed in place (IsPlan goes
// false, IsPlanCompleted true, items/notes/date overwritten).
type WorkoutLog struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	StudentID string    `bson:"studentId" json:"studentId"`
	Date      time.Time `bson:"date" json:"date"`
	Items     []LogItem `bson:"items" json:"items"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`

	// Coach review. Score is a pointer so "not yet scored" is
	// distinguishable from a zero score.
	Score               *int       `bson:"score,omitempty" json:"score,omitempty"`
	CoachComment        string     `bson:"coachComment,omitempty" json:"coachComment,omitempty"`
	CoachIDWhoCommented string     `bson:"coachIdWhoCommented,omitempty" json:"coachIdWhoCommented,omitempty"`
	CoachCommentDate    *time.Time `bson:"coachCommentDate,omitempty" json:"coachCommentDate,omitempty"`

	IsHidden        bool `bson:"isHidden,omitempty" json:"isHidden,omitempty"`
	IsPlan          bool `bson:"isPlan,omitempty" json:"isPlan,omitempty"`
	IsPlanCompleted bool `bson:"isPlanCompleted,omitempty" json:"isPlanCompleted,omitempty"`

	// Minutes spent completing a plan. Missing counts as zero in the
	// total_time achievement criterion.
	Duration int `bson:"duration,omitempty" json:"duration,omitempty"`

	// Peer sharing: the owner marks a log IsShared; each recipient gets an
	// independent copy carrying SharedFrom (the origin student's ID).
	IsShared   bool   `bson:"isShared,omitempty" json:"isShared,omitempty"`
	SharedFrom string `bson:"sharedFrom,omitempty" json:"sharedFrom,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
