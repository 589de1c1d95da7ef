package result

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/formava/formava-lms/internal/content"
	"github.com/formava/formava-lms/internal/evaluation"
)

// Outcome is what a submission attempt reports back. Failures are outcomes,
// never panics or naked errors: missing identifiers and store rejections both
// degrade to Success=false with a message.
type Outcome struct {
	Success  bool    `json:"success"`
	Error    string  `json:"error,omitempty"`
	Duration int64   `json:"duration,omitempty"`
	Result   *Result `json:"result,omitempty"`
}

// Submitter assembles a Result from a finished session and hands it to the
// store. It does not retry; once Submit is issued the caller should await it
// to completion.
type Submitter struct {
	store Store
	now   func() time.Time
}

func NewSubmitter(store Store, now func() time.Time) *Submitter {
	if now == nil {
		now = time.Now
	}
	return &Submitter{store: store, now: now}
}

func failure(msg string) Outcome { return Outcome{Success: false, Error: msg} }

// Submit grades the session with g, packages the result, and persists it.
func (s *Submitter) Submit(ctx context.Context, sess *evaluation.Session, g evaluation.Grader, userID string, scope content.Scope) Outcome {
	if userID == "" {
		return failure("user id required")
	}
	if err := scope.Validate(); err != nil {
		return failure("incomplete scope: " + err.Error())
	}
	if sess == nil {
		return failure("no active session")
	}

	now := s.now()
	duration := int64(now.Sub(sess.StartedAt()) / time.Second)
	summary := evaluation.Evaluate(g, sess.Blocks(), sess.Answers())

	r := Result{
		ID:           "eval_" + uuid.NewString(),
		UserID:       userID,
		ProgramID:    scope.ProgramID,
		ModuleID:     scope.ModuleID,
		ChapterID:    scope.ChapterID,
		Scope:        string(scope.Kind),
		Score:        summary.Score,
		TotalPoints:  summary.TotalPoints,
		EarnedPoints: summary.EarnedPoints,
		Duration:     duration,
		Results:      summary.Results,
		Answers:      sess.Answers(),
		CompletedAt:  now.Unix(),
	}

	clean, err := sanitize(r)
	if err != nil {
		return failure("sanitize result: " + err.Error())
	}
	if err := s.store.Save(ctx, clean); err != nil {
		return failure(err.Error())
	}
	return Outcome{Success: true, Duration: duration, Result: &clean}
}

// sanitize round-trips the record through JSON. Document stores reject values
// JSON cannot carry (functions, NaN, cyclic maps); normalizing here keeps the
// store collaborator's contract honest.
func sanitize(r Result) (Result, error) {
	buf, err := json.Marshal(r)
	if err != nil {
		return Result{}, err
	}
	var clean Result
	if err := json.Unmarshal(buf, &clean); err != nil {
		return Result{}, err
	}
	return clean, nil
}
