package result

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SQLStore persists results in the evaluation_results table. Per-block
// results and the raw answer map are stored as JSON documents, like the rest
// of the authored content.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Save(ctx context.Context, r Result) error {
	if r.ID == "" {
		return errors.New("result id required")
	}
	resJSON, err := json.Marshal(r.Results)
	if err != nil {
		return err
	}
	ansJSON, err := json.Marshal(r.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO evaluation_results
		   (id, user_id, program_id, module_id, chapter_id, scope,
		    score, total_points, earned_points, duration,
		    results_json, answers_json, completed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		r.ID, r.UserID, r.ProgramID, r.ModuleID, r.ChapterID, r.Scope,
		r.Score, r.TotalPoints, r.EarnedPoints, r.Duration,
		string(resJSON), string(ansJSON), r.CompletedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, program_id, module_id, chapter_id, scope,
		        score, total_points, earned_points, duration,
		        results_json, answers_json, completed_at
		   FROM evaluation_results WHERE id=$1`, id)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, errors.New("result not found")
	}
	return r, err
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Result, error) {
	var where []string
	var args []interface{}
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		where = append(where, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	add("user_id", opts.UserID)
	add("program_id", opts.ProgramID)
	add("module_id", opts.ModuleID)
	add("chapter_id", opts.ChapterID)
	add("scope", opts.Scope)

	q := `SELECT id, user_id, program_id, module_id, chapter_id, scope,
	             score, total_points, earned_points, duration,
	             results_json, answers_json, completed_at
	        FROM evaluation_results`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY completed_at DESC, id DESC"
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	q += fmt.Sprintf(" LIMIT $%d", len(args))
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	var resJSON, ansJSON string
	err := row.Scan(&r.ID, &r.UserID, &r.ProgramID, &r.ModuleID, &r.ChapterID, &r.Scope,
		&r.Score, &r.TotalPoints, &r.EarnedPoints, &r.Duration,
		&resJSON, &ansJSON, &r.CompletedAt)
	if err != nil {
		return Result{}, err
	}
	if err := json.Unmarshal([]byte(resJSON), &r.Results); err != nil {
		return Result{}, err
	}
	if err := json.Unmarshal([]byte(ansJSON), &r.Answers); err != nil {
		r.Answers = map[string]interface{}{}
	}
	return r, nil
}
