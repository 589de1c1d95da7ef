package result

import (
	"context"

	"github.com/formava/formava-lms/internal/evaluation"
)

// Result is the persisted outcome of one evaluation. Immutable once written.
type Result struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProgramID string `json:"program_id"`
	ModuleID  string `json:"module_id,omitempty"`
	ChapterID string `json:"chapter_id,omitempty"`
	Scope     string `json:"scope"` // session|chapter|module|program

	Score        int     `json:"score"` // 0..100
	TotalPoints  float64 `json:"total_points"`
	EarnedPoints float64 `json:"earned_points"`
	Duration     int64   `json:"duration"` // whole seconds

	Results []evaluation.BlockResult `json:"results"`
	// Answers keeps the raw submitted answer map for audit.
	Answers map[string]interface{} `json:"answers"`

	CompletedAt int64 `json:"completed_at"` // unix seconds
}

type ListOpts struct {
	UserID    string
	ProgramID string
	ModuleID  string
	ChapterID string
	Scope     string
	Limit     int
	Offset    int
}

// Store persists evaluation results. Implementations own keying and
// durability; the engine only hands over fully sanitized records.
type Store interface {
	Save(ctx context.Context, r Result) error
	Get(ctx context.Context, id string) (Result, error)
	List(ctx context.Context, opts ListOpts) ([]Result, error)
}
