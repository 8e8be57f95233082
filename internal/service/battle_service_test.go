package service

import (
	"context"
	"errors"
	"testing"

	"github.com/megaJingHua/PixelGym/internal/domain"
)

func TestCreateBattle(t *testing.T) {
	ctx := context.Background()

	t.Run("author is stamped and social state reset", func(t *testing.T) {
		repo := newFakeBattleRepo()
		svc := NewBattleService(repo, newFakeUserRepo(testAlice))

		battle := &domain.Battle{
			ID: "b1", Title: "百次波比跳", Routine: []string{"burpee x100"},
			AuthorID: "someone-else", Likes: 99, LikedBy: []string{"x"},
			Comments: []domain.Comment{{ID: "c1"}},
		}
		created, err := svc.CreateBattle(ctx, &testAlice, battle)
		if err != nil {
			t.Fatalf("CreateBattle: %v", err)
		}
		if created.AuthorID != "s1" || created.AuthorName != "alice" {
			t.Errorf("author = %s/%s, want s1/alice", created.AuthorID, created.AuthorName)
		}
		if created.Likes != 0 || created.LikedBy != nil || created.Comments != nil {
			t.Errorf("social state not reset: %+v", created)
		}
	})

	t.Run("title and routine are required", func(t *testing.T) {
		svc := NewBattleService(newFakeBattleRepo(), newFakeUserRepo(testAlice))
		_, err := svc.CreateBattle(ctx, &testAlice, &domain.Battle{ID: "b1", Title: "x"})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("err = %v, want ErrValidationFailed", err)
		}
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBattleRepo(domain.Battle{ID: "b1", Title: "t", Routine: []string{"x"}})
	svc := NewBattleService(repo, newFakeUserRepo(testAlice))

	battle, err := svc.ToggleLike(ctx, &testAlice, "b1")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if battle.Likes != 1 || !battle.HasLiked("s1") {
		t.Errorf("after like: %+v", battle)
	}

	battle, err = svc.ToggleLike(ctx, &testAlice, "b1")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if battle.Likes != 0 || battle.HasLiked("s1") {
		t.Errorf("after unlike: %+v", battle)
	}

	if _, err := svc.ToggleLike(ctx, &testAlice, "missing"); !errors.Is(err, ErrBattleNotFound) {
		t.Errorf("err = %v, want ErrBattleNotFound", err)
	}
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBattleRepo(domain.Battle{ID: "b1", Title: "t", Routine: []string{"x"}})
	svc := NewBattleService(repo, newFakeUserRepo(testAlice))

	battle, err := svc.AddComment(ctx, &testAlice, "b1", "let's go")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if len(battle.Comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(battle.Comments))
	}
	c := battle.Comments[0]
	if c.Author != "alice" || c.ID == "" || c.Date.IsZero() {
		t.Errorf("comment = %+v", c)
	}

	if _, err := svc.AddComment(ctx, &testAlice, "b1", ""); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("err = %v, want ErrEmptyComment", err)
	}
}

func TestSubmitRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("resubmission replaces the previous record", func(t *testing.T) {
		repo := newFakeBattleRepo(domain.Battle{ID: "b1", Title: "t", Routine: []string{"x"}})
		svc := NewBattleService(repo, newFakeUserRepo(testAlice, testBob))

		if _, err := svc.SubmitRecord(ctx, &testAlice, "b1", "10 min"); err != nil {
			t.Fatalf("SubmitRecord: %v", err)
		}
		if _, err := svc.SubmitRecord(ctx, &testBob, "b1", "12 min"); err != nil {
			t.Fatalf("SubmitRecord: %v", err)
		}
		battle, err := svc.SubmitRecord(ctx, &testAlice, "b1", "9 min")
		if err != nil {
			t.Fatalf("SubmitRecord: %v", err)
		}
		if len(battle.Records) != 2 {
			t.Fatalf("got %d records, want 2", len(battle.Records))
		}
		if battle.Records[0].StudentID != "s1" || battle.Records[0].Content != "9 min" {
			t.Errorf("records[0] = %+v, want alice's replacement", battle.Records[0])
		}
	})

	t.Run("coaches cannot submit", func(t *testing.T) {
		svc := NewBattleService(newFakeBattleRepo(), newFakeUserRepo(testCoach))
		if _, err := svc.SubmitRecord(ctx, &testCoach, "b1", "x"); !errors.Is(err, ErrRecordNotStudent) {
			t.Errorf("err = %v, want ErrRecordNotStudent", err)
		}
	})
}

func TestDeleteBattle(t *testing.T) {
	ctx := context.Background()
	battle := domain.Battle{ID: "b1", AuthorID: "s1", Title: "t", Routine: []string{"x"}}

	t.Run("author deletes", func(t *testing.T) {
		repo := newFakeBattleRepo(battle)
		svc := NewBattleService(repo, newFakeUserRepo(testAlice))
		if err := svc.DeleteBattle(ctx, &testAlice, "b1"); err != nil {
			t.Fatalf("DeleteBattle: %v", err)
		}
		if _, err := repo.GetByID(ctx, "b1"); err == nil {
			t.Error("battle still exists")
		}
	})

	t.Run("super-admin deletes anything", func(t *testing.T) {
		repo := newFakeBattleRepo(battle)
		svc := NewBattleService(repo, newFakeUserRepo(testAdmin))
		if err := svc.DeleteBattle(ctx, &testAdmin, "b1"); err != nil {
			t.Fatalf("DeleteBattle: %v", err)
		}
	})

	t.Run("a stranger is denied", func(t *testing.T) {
		svc := NewBattleService(newFakeBattleRepo(battle), newFakeUserRepo(testBob))
		if err := svc.DeleteBattle(ctx, &testBob, "b1"); !errors.Is(err, ErrBattleAccessDenied) {
			t.Errorf("err = %v, want ErrBattleAccessDenied", err)
		}
	})

	t.Run("missing battle deletes successfully", func(t *testing.T) {
		svc := NewBattleService(newFakeBattleRepo(), newFakeUserRepo(testAlice))
		if err := svc.DeleteBattle(ctx, &testAlice, "ghost"); err != nil {
			t.Errorf("err = %v, want nil", err)
		}
	})
}
