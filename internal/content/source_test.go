package content_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/formava/formava-lms/internal/content"
	"github.com/formava/formava-lms/internal/db"
	"github.com/formava/formava-lms/internal/evaluation"
)

func seedTree(t *testing.T) (*content.SQLSource, *content.Catalog) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "content.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })

	src := content.NewSQLSource(dbh)
	cat := content.NewCatalog(dbh)
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(cat.PutProgram(ctx, content.Program{ID: "prog-1", Title: "Go Basics"}))
	must(cat.PutModule(ctx, content.Module{ID: "mod-1", ProgramID: "prog-1", Title: "Syntax", Position: 0}))
	must(cat.PutModule(ctx, content.Module{ID: "mod-2", ProgramID: "prog-1", Title: "Types", Position: 1}))
	must(cat.PutChapter(ctx, content.Chapter{ID: "chap-1", ModuleID: "mod-1", Title: "Variables", Position: 0}))
	must(cat.PutChapter(ctx, content.Chapter{ID: "chap-2", ModuleID: "mod-1", Title: "Constants", Position: 1}))
	must(cat.PutChapter(ctx, content.Chapter{ID: "chap-3", ModuleID: "mod-2", Title: "Structs", Position: 0}))

	blocks := func(ids ...string) []evaluation.Block {
		var out []evaluation.Block
		for _, id := range ids {
			out = append(out, evaluation.Block{
				ID: id, Type: evaluation.TypeQCM, Points: 1,
				Content: evaluation.Content{Options: []string{"a", "b"}, CorrectIndex: 1},
			})
		}
		return out
	}
	must(src.PutExerciseSet(ctx, "chap-1", blocks("b1", "b2")))
	must(src.PutExerciseSet(ctx, "chap-3", blocks("b3")))
	// chap-2 authored without exercises

	return src, cat
}

func countBlocks(gs []evaluation.Grouping) int {
	n := 0
	for _, g := range gs {
		n += len(g.Blocks)
	}
	return n
}

func TestGroupingsProgramScope(t *testing.T) {
	src, _ := seedTree(t)
	gs, err := src.Groupings(context.Background(), content.Scope{
		Kind: content.KindProgram, ProgramID: "prog-1",
	})
	if err != nil {
		t.Fatalf("groupings: %v", err)
	}
	if len(gs) != 3 {
		t.Fatalf("got %d groupings, want one per chapter", len(gs))
	}
	if countBlocks(gs) != 3 {
		t.Fatalf("got %d blocks, want 3", countBlocks(gs))
	}
	if gs[0].ID != "chap-1" || gs[0].Title != "Variables" {
		t.Fatalf("grouping order/labels wrong: %+v", gs[0])
	}
	// the chapter without a set still shows up, just empty
	if len(gs[1].Blocks) != 0 {
		t.Fatalf("chap-2 should be empty: %+v", gs[1])
	}
}

func TestGroupingsModuleScope(t *testing.T) {
	src, _ := seedTree(t)
	gs, err := src.Groupings(context.Background(), content.Scope{
		Kind: content.KindModule, ProgramID: "prog-1", ModuleID: "mod-1",
	})
	if err != nil {
		t.Fatalf("groupings: %v", err)
	}
	if len(gs) != 2 || countBlocks(gs) != 2 {
		t.Fatalf("module scope: %d groupings, %d blocks", len(gs), countBlocks(gs))
	}
}

func TestGroupingsChapterAndSessionScopes(t *testing.T) {
	src, _ := seedTree(t)
	ctx := context.Background()

	ch, err := src.Groupings(ctx, content.Scope{
		Kind: content.KindChapter, ProgramID: "prog-1", ChapterID: "chap-1",
	})
	if err != nil {
		t.Fatalf("chapter: %v", err)
	}
	if len(ch) != 1 || ch[0].ID != "chap-1" || len(ch[0].Blocks) != 2 {
		t.Fatalf("chapter scope: %+v", ch)
	}

	// session scope serves the same set but anonymously: pooled blocks carry
	// no provenance
	sess, err := src.Groupings(ctx, content.Scope{
		Kind: content.KindSession, ProgramID: "prog-1", ChapterID: "chap-1",
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if sess[0].ID != "" || sess[0].Title != "" {
		t.Fatalf("session grouping should be anonymous: %+v", sess[0])
	}
	pool := evaluation.BuildPool(sess...)
	if pool[0].SourceChapterID != "" {
		t.Fatalf("session blocks must stay untagged: %+v", pool[0])
	}
}

func TestGroupingsBadScopes(t *testing.T) {
	src, _ := seedTree(t)
	ctx := context.Background()

	cases := []content.Scope{
		{Kind: content.KindChapter, ProgramID: "prog-1"},    // chapter id missing
		{Kind: content.KindModule, ProgramID: "prog-1"},     // module id missing
		{Kind: content.KindProgram},                         // program id missing
		{Kind: content.Kind("lesson"), ProgramID: "prog-1"}, // unknown kind
	}
	for _, sc := range cases {
		if _, err := src.Groupings(ctx, sc); err == nil {
			t.Fatalf("scope %+v should be rejected", sc)
		}
	}

	if _, err := src.Groupings(ctx, content.Scope{
		Kind: content.KindChapter, ProgramID: "prog-1", ChapterID: "nope",
	}); err == nil {
		t.Fatal("unknown chapter should error")
	}
}

func TestPutExerciseSetReplaces(t *testing.T) {
	src, _ := seedTree(t)
	ctx := context.Background()

	err := src.PutExerciseSet(ctx, "chap-1", []evaluation.Block{
		{ID: "nb1", Type: evaluation.TypeTrueFalse, Points: 2, Content: evaluation.Content{Correct: true}},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	gs, err := src.Groupings(ctx, content.Scope{
		Kind: content.KindChapter, ProgramID: "prog-1", ChapterID: "chap-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(gs[0].Blocks) != 1 || gs[0].Blocks[0].ID != "nb1" {
		t.Fatalf("set not replaced: %+v", gs[0].Blocks)
	}
}
