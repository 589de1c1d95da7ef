package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/formava/formava-lms/internal/evaluation"
)

// Source supplies the groupings an evaluation pools blocks from. A scope with
// no content yields zero groupings (or groupings with empty block lists), not
// an error.
type Source interface {
	Groupings(ctx context.Context, scope Scope) ([]evaluation.Grouping, error)
}

// SQLSource reads authored content from the relational store. Exercise sets
// are kept as one JSON document per chapter, mirroring their document-store
// origin.
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource { return &SQLSource{db: db} }

func (s *SQLSource) Groupings(ctx context.Context, scope Scope) ([]evaluation.Grouping, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	switch scope.Kind {
	case KindSession:
		g, err := s.chapterGrouping(ctx, scope.ProgramID, scope.ChapterID)
		if err != nil {
			return nil, err
		}
		// single-set sessions keep the authored set anonymous: no provenance
		g.ID, g.Title = "", ""
		return []evaluation.Grouping{g}, nil
	case KindChapter:
		g, err := s.chapterGrouping(ctx, scope.ProgramID, scope.ChapterID)
		if err != nil {
			return nil, err
		}
		return []evaluation.Grouping{g}, nil
	case KindModule:
		return s.chapterGroupings(ctx,
			`SELECT c.id, c.title, COALESCE(e.blocks_json, '')
			   FROM chapters c
			   LEFT JOIN exercise_sets e ON e.chapter_id = c.id
			  WHERE c.module_id = $1
			  ORDER BY c.position, c.id`, scope.ModuleID)
	case KindProgram:
		return s.chapterGroupings(ctx,
			`SELECT c.id, c.title, COALESCE(e.blocks_json, '')
			   FROM chapters c
			   JOIN modules m ON m.id = c.module_id
			   LEFT JOIN exercise_sets e ON e.chapter_id = c.id
			  WHERE m.program_id = $1
			  ORDER BY m.position, m.id, c.position, c.id`, scope.ProgramID)
	default:
		return nil, ErrBadScope
	}
}

func (s *SQLSource) chapterGrouping(ctx context.Context, programID, chapterID string) (evaluation.Grouping, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.title, COALESCE(e.blocks_json, '')
		   FROM chapters c
		   JOIN modules m ON m.id = c.module_id
		   LEFT JOIN exercise_sets e ON e.chapter_id = c.id
		  WHERE c.id = $1 AND m.program_id = $2`, chapterID, programID)
	g, err := scanGrouping(row)
	if errors.Is(err, sql.ErrNoRows) {
		return evaluation.Grouping{}, errors.New("chapter not found")
	}
	return g, err
}

func (s *SQLSource) chapterGroupings(ctx context.Context, query, arg string) ([]evaluation.Grouping, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []evaluation.Grouping
	for rows.Next() {
		g, err := scanGrouping(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGrouping(row scanner) (evaluation.Grouping, error) {
	var g evaluation.Grouping
	var blocksJSON string
	if err := row.Scan(&g.ID, &g.Title, &blocksJSON); err != nil {
		return evaluation.Grouping{}, err
	}
	if blocksJSON == "" {
		return g, nil // chapter authored without exercises
	}
	var set struct {
		Blocks []evaluation.Block `json:"blocks"`
	}
	if err := json.Unmarshal([]byte(blocksJSON), &set); err != nil {
		return evaluation.Grouping{}, fmt.Errorf("decode exercise set for chapter %s: %w", g.ID, err)
	}
	g.Blocks = set.Blocks
	return g, nil
}

// PutExerciseSet stores (or replaces) the exercise document of a chapter.
func (s *SQLSource) PutExerciseSet(ctx context.Context, chapterID string, blocks []evaluation.Block) error {
	doc := struct {
		Blocks []evaluation.Block `json:"blocks"`
	}{Blocks: blocks}
	buf, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exercise_sets (chapter_id, blocks_json)
		 VALUES ($1,$2)
		 ON CONFLICT (chapter_id) DO UPDATE SET blocks_json=EXCLUDED.blocks_json`,
		chapterID, string(buf))
	return err
}
