package result_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/formava/formava-lms/internal/db"
	"github.com/formava/formava-lms/internal/evaluation"
	"github.com/formava/formava-lms/internal/result"
)

func openTestDB(t *testing.T) *result.SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "results.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return result.NewSQLStore(dbh)
}

func sampleResult(id, userID string, completedAt int64) result.Result {
	return result.Result{
		ID:           id,
		UserID:       userID,
		ProgramID:    "prog-1",
		ChapterID:    "chap-1",
		Scope:        "chapter",
		Score:        80,
		TotalPoints:  10,
		EarnedPoints: 8,
		Duration:     120,
		Results: []evaluation.BlockResult{
			{BlockID: "q1", Type: evaluation.TypeQCM, IsCorrect: true, Points: 10, EarnedPoints: 8},
		},
		Answers:     map[string]interface{}{"q1": float64(2)},
		CompletedAt: completedAt,
	}
}

func TestSQLStoreSaveAndGet(t *testing.T) {
	st := openTestDB(t)
	ctx := context.Background()

	want := sampleResult("r1", "u1", time.Now().Unix())
	if err := st.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "u1" || got.Score != 80 || got.Duration != 120 {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if len(got.Results) != 1 || got.Results[0].BlockID != "q1" {
		t.Fatalf("per-block results lost: %+v", got.Results)
	}
	if got.Answers["q1"] != float64(2) {
		t.Fatalf("answers lost: %+v", got.Answers)
	}

	if _, err := st.Get(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestSQLStoreSaveRequiresID(t *testing.T) {
	st := openTestDB(t)
	if err := st.Save(context.Background(), result.Result{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestSQLStoreListFiltersAndOrders(t *testing.T) {
	st := openTestDB(t)
	ctx := context.Background()

	base := time.Now().Unix()
	for _, r := range []result.Result{
		sampleResult("r1", "u1", base+1),
		sampleResult("r2", "u1", base+2),
		sampleResult("r3", "u2", base+3),
	} {
		if err := st.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	mine, err := st.List(ctx, result.ListOpts{UserID: "u1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d results for u1, want 2", len(mine))
	}
	// newest first
	if mine[0].ID != "r2" || mine[1].ID != "r1" {
		t.Fatalf("bad order: %s, %s", mine[0].ID, mine[1].ID)
	}

	all, err := st.List(ctx, result.ListOpts{ProgramID: "prog-1", Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("limit ignored: %d", len(all))
	}

	page2, err := st.List(ctx, result.ListOpts{ProgramID: "prog-1", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page2) != 1 || page2[0].ID != "r1" {
		t.Fatalf("bad page: %+v", page2)
	}

	none, err := st.List(ctx, result.ListOpts{Scope: "program"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("scope filter ignored: %d", len(none))
	}
}
