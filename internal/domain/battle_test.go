package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestBattleToggleLike(t *testing.T) {
	t.Run("like then unlike restores the original state", func(t *testing.T) {
		b := Battle{ID: "b1", Likes: 2, LikedBy: []string{"s1", "s2"}}

		if liked := b.ToggleLike("s3"); !liked {
			t.Error("first toggle should like")
		}
		if b.Likes != 3 || !b.HasLiked("s3") {
			t.Errorf("after like: likes=%d likedBy=%v", b.Likes, b.LikedBy)
		}

		if liked := b.ToggleLike("s3"); liked {
			t.Error("second toggle should unlike")
		}
		if b.Likes != 2 || b.HasLiked("s3") {
			t.Errorf("after unlike: likes=%d likedBy=%v", b.Likes, b.LikedBy)
		}
	})

	t.Run("counter never drops below zero", func(t *testing.T) {
		b := Battle{ID: "b1", Likes: 0, LikedBy: []string{"s1"}}
		b.ToggleLike("s1")
		if b.Likes != 0 {
			t.Errorf("likes = %d, want 0", b.Likes)
		}
	})
}

func TestBattleUpsertRecord(t *testing.T) {
	b := Battle{ID: "b1"}
	first := BattleRecord{ID: "r1", StudentID: "s1", Content: "3 rounds", CompletedAt: time.Now()}
	b.UpsertRecord(first)

	other := BattleRecord{ID: "r2", StudentID: "s2", Content: "2 rounds"}
	b.UpsertRecord(other)
	if len(b.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(b.Records))
	}

	// Resubmission replaces in place and does not grow the list.
	replacement := BattleRecord{ID: "r3", StudentID: "s1", Content: "5 rounds"}
	b.UpsertRecord(replacement)
	if len(b.Records) != 2 {
		t.Fatalf("got %d records after resubmit, want 2", len(b.Records))
	}
	if !reflect.DeepEqual(b.Records[0], replacement) {
		t.Errorf("records[0] = %+v, want replacement in original slot", b.Records[0])
	}
	if b.Records[1].StudentID != "s2" {
		t.Errorf("records[1] belongs to %s, want s2", b.Records[1].StudentID)
	}
}

func TestBattleAddComment(t *testing.T) {
	b := Battle{ID: "b1"}
	b.AddComment(Comment{ID: "c1", Author: "alice", Content: "nice"})
	b.AddComment(Comment{ID: "c2", Author: "bob", Content: "tough one"})
	if len(b.Comments) != 2 || b.Comments[0].ID != "c1" || b.Comments[1].ID != "c2" {
		t.Errorf("comments out of order: %+v", b.Comments)
	}
}
