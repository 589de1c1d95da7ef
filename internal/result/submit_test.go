package result_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/formava/formava-lms/internal/content"
	"github.com/formava/formava-lms/internal/evaluation"
	"github.com/formava/formava-lms/internal/result"
)

/* ---------------- In-memory fake that satisfies result.Store ---------------- */

type fakeStore struct {
	saved   []result.Result
	saveErr error
}

func (f *fakeStore) Save(_ context.Context, r result.Result) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (result.Result, error) {
	for _, r := range f.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return result.Result{}, errors.New("result not found")
}

func (f *fakeStore) List(_ context.Context, _ result.ListOpts) ([]result.Result, error) {
	return f.saved, nil
}

/* ------------------------------------ Tests ------------------------------------ */

func seedSession(t *testing.T) *evaluation.Session {
	t.Helper()
	pool := []evaluation.Block{
		{ID: "q1", Type: evaluation.TypeQCM, Points: 10,
			Content: evaluation.Content{Options: []string{"a", "b", "c"}, CorrectIndex: 2}},
		{ID: "tf1", Type: evaluation.TypeTrueFalse, Points: 5,
			Content: evaluation.Content{Correct: true}},
	}
	start := time.Unix(1_700_000_000, 0)
	sess := evaluation.NewSession(rand.New(rand.NewSource(1)), pool, start)
	sess.SetAnswer("q1", 2)
	sess.SetAnswer("tf1", false)
	return sess
}

func chapterScope() content.Scope {
	return content.Scope{Kind: content.KindChapter, ProgramID: "prog-1", ChapterID: "chap-1"}
}

func TestSubmitPersistsResult(t *testing.T) {
	st := &fakeStore{}
	start := time.Unix(1_700_000_000, 0)
	now := start.Add(95 * time.Second)
	sub := result.NewSubmitter(st, func() time.Time { return now })

	out := sub.Submit(context.Background(), seedSession(t), evaluation.NewGrader(), "u1", chapterScope())
	if !out.Success {
		t.Fatalf("unexpected failure: %s", out.Error)
	}
	if out.Duration != 95 {
		t.Fatalf("duration = %d, want 95", out.Duration)
	}
	if len(st.saved) != 1 {
		t.Fatalf("saved %d results", len(st.saved))
	}

	r := st.saved[0]
	if r.UserID != "u1" || r.ProgramID != "prog-1" || r.ChapterID != "chap-1" || r.Scope != "chapter" {
		t.Fatalf("bad keying: %+v", r)
	}
	if len(r.Results) != 2 {
		t.Fatalf("per-block results = %d, want 2 (exactly one per pool block)", len(r.Results))
	}
	if r.Score != 67 { // 10 of 15
		t.Fatalf("score = %d, want 67", r.Score)
	}
	if r.CompletedAt != now.Unix() {
		t.Fatalf("completed_at = %d", r.CompletedAt)
	}
}

func TestSubmitFailsFastOnMissingIdentifiers(t *testing.T) {
	st := &fakeStore{}
	sub := result.NewSubmitter(st, nil)
	sess := seedSession(t)

	if out := sub.Submit(context.Background(), sess, evaluation.NewGrader(), "", chapterScope()); out.Success {
		t.Fatal("expected failure without user id")
	}
	bad := content.Scope{Kind: content.KindChapter, ProgramID: "prog-1"} // chapter id missing
	if out := sub.Submit(context.Background(), sess, evaluation.NewGrader(), "u1", bad); out.Success {
		t.Fatal("expected failure on incomplete scope")
	}
	if out := sub.Submit(context.Background(), nil, evaluation.NewGrader(), "u1", chapterScope()); out.Success {
		t.Fatal("expected failure without session")
	}
	if len(st.saved) != 0 {
		t.Fatalf("failed submits reached the store: %d", len(st.saved))
	}
}

func TestSubmitConvertsStoreErrors(t *testing.T) {
	st := &fakeStore{saveErr: errors.New("write rejected")}
	sub := result.NewSubmitter(st, nil)

	out := sub.Submit(context.Background(), seedSession(t), evaluation.NewGrader(), "u1", chapterScope())
	if out.Success {
		t.Fatal("expected failure outcome")
	}
	if out.Error != "write rejected" {
		t.Fatalf("error = %q", out.Error)
	}
}

func TestSubmitSanitizesAnswers(t *testing.T) {
	st := &fakeStore{}
	sub := result.NewSubmitter(st, nil)
	sess := seedSession(t)
	// typed values must come out as plain JSON shapes
	sess.SetAnswer("q1", []int{2, 0})

	out := sub.Submit(context.Background(), sess, evaluation.NewGrader(), "u1", chapterScope())
	if !out.Success {
		t.Fatalf("unexpected failure: %s", out.Error)
	}
	if _, ok := st.saved[0].Answers["q1"].([]interface{}); !ok {
		t.Fatalf("answers not normalized: %T", st.saved[0].Answers["q1"])
	}
}

func TestSubmitEmptyPool(t *testing.T) {
	st := &fakeStore{}
	sub := result.NewSubmitter(st, nil)
	sess := evaluation.NewSession(rand.New(rand.NewSource(1)), nil, time.Now())

	out := sub.Submit(context.Background(), sess, evaluation.NewGrader(), "u1", chapterScope())
	if !out.Success {
		t.Fatalf("empty pool should still submit: %s", out.Error)
	}
	r := st.saved[0]
	if r.Score != 0 || r.TotalPoints != 0 || r.EarnedPoints != 0 || len(r.Results) != 0 {
		t.Fatalf("empty pool result: %+v", r)
	}
}
