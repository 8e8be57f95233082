package domain

import "time"

// TargetAll marks a battle open to every student.
const TargetAll = "all"

// Comment is a single battle comment. Comments are append-only, ordered by
// submission time.
type Comment struct {
	ID      string    `bson:"id" json:"id"`
	Author  string    `bson:"author" json:"author"`
	Content string    `bson:"content" json:"content"`
	Date    time.Time `bson:"date" json:"date"`
}

// BattleRecord is a student's completion report for a battle. At most one
// record per student survives: resubmitting replaces the previous one.
type BattleRecord struct {
	ID          string    `bson:"id" json:"id"`
	StudentID   string    `bson:"studentId" json:"studentId"`
	StudentName string    `bson:"studentName" json:"studentName"`
	CompletedAt time.Time `bson:"completedAt" json:"completedAt"`
	Content     string    `bson:"content" json:"content"`
}

// Battle is a workout challenge issued by one user to all students or to a
// specific one.
type Battle struct {
	ID string `bson:"_id,omitempty" json:"id"`

	// AuthorID is the immutable creator key; AuthorName is for display.
	AuthorID   string `bson:"authorId" json:"authorId"`
	AuthorName string `bson:"authorName" json:"authorName"`

	Title           string         `bson:"title" json:"title"`
	Routine         []string       `bson:"routine" json:"routine"`
	Likes           int            `bson:"likes" json:"likes"`
	LikedBy         []string       `bson:"likedBy,omitempty" json:"likedBy,omitempty"`
	Comments        []Comment      `bson:"comments,omitempty" json:"comments,omitempty"`
	TargetStudentID string         `bson:"targetStudentId,omitempty" json:"targetStudentId,omitempty"`
	Records         []BattleRecord `bson:"records,omitempty" json:"records,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
}

// ToggleLike flips the given user's like. The first call adds the user to
// LikedBy and increments the counter; a second call with the same user
// undoes both, so a like/unlike pair is a no-op. Returns the new state.
func (b *Battle) ToggleLike(userID string) (liked bool) {
	for i, id := range b.LikedBy {
		if id == userID {
			b.LikedBy = append(b.LikedBy[:i], b.LikedBy[i+1:]...)
			if b.Likes > 0 {
				b.Likes--
			}
			return false
		}
	}
	b.LikedBy = append(b.LikedBy, userID)
	b.Likes++
	return true
}

// AddComment appends a comment. Comments are never edited or removed.
func (b *Battle) AddComment(c Comment) {
	b.Comments = append(b.Comments, c)
}

// UpsertRecord stores a completion record, replacing any existing record by
// the same student in place.
func (b *Battle) UpsertRecord(rec BattleRecord) {
	for i, r := range b.Records {
		if r.StudentID == rec.StudentID {
			b.Records[i] = rec
			return
		}
	}
	b.Records = append(b.Records, rec)
}

// HasLiked reports whether the user currently likes this battle.
func (b *Battle) HasLiked(userID string) bool {
	for _, id := range b.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
