package http

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/formava/formava-lms/internal/content"
	"github.com/formava/formava-lms/internal/evaluation"
	"github.com/formava/formava-lms/internal/rbac"
	"github.com/formava/formava-lms/internal/result"
	syncx "github.com/formava/formava-lms/internal/sync"
)

// graderFor picks the partial-credit policy by scope: single-set sessions
// keep the lenient proportional scoring, aggregate evaluations are strict.
func graderFor(kind content.Kind) evaluation.Grader {
	if kind == content.KindSession {
		return evaluation.NewGrader(evaluation.WithPartialCredit(evaluation.PartialProportional))
	}
	return evaluation.NewGrader(evaluation.WithPartialCredit(evaluation.PartialStrict))
}

type sessionView struct {
	SessionID     string                   `json:"session_id"`
	CurrentIndex  int                      `json:"current_index"`
	TotalBlocks   int                      `json:"total_blocks"`
	Progress      int                      `json:"progress"`
	IsFirst       bool                     `json:"is_first"`
	IsLast        bool                     `json:"is_last"`
	AnsweredCount int                      `json:"answered_count"`
	Empty         bool                     `json:"empty,omitempty"`
	Block         *evaluation.Block        `json:"block,omitempty"`
	Presentation  *evaluation.Presentation `json:"presentation,omitempty"`
}

func viewOf(as *ActiveSession) sessionView {
	s := as.Session
	v := sessionView{
		SessionID:    as.ID,
		CurrentIndex: s.CurrentIndex(),
		TotalBlocks:  s.TotalBlocks(),
		Progress:     s.Progress(),
		IsFirst:      s.IsFirst(),
		IsLast:       s.IsLast(),
		Empty:        s.TotalBlocks() == 0,
	}
	for _, b := range s.Blocks() {
		if _, ok := s.Answer(b.ID); ok {
			v.AnsweredCount++
		}
	}
	if b, ok := s.Current(); ok {
		red := b.Redacted()
		v.Block = &red
		p := s.Presentation(b)
		v.Presentation = &p
	}
	return v
}

// POST /sessions  {"kind":"module","program_id":"...","module_id":"..."}
func CreateSessionHandler(src content.Source, reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var scope content.Scope
		if err := json.NewDecoder(r.Body).Decode(&scope); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := scope.Validate(); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		groupings, err := src.Groupings(r.Context(), scope)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		pool := evaluation.BuildPool(groupings...)
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		as := &ActiveSession{
			UserID:  rbac.SubjectFromContext(r.Context()),
			Scope:   scope,
			Session: evaluation.NewSession(rng, pool, time.Now()),
			Grader:  graderFor(scope.Kind),
		}
		reg.Put(as)
		writeJSON(w, viewOf(as))
	}
}

// GET /sessions/{sessionID}
func GetSessionHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		sub := rbac.SubjectFromContext(r.Context())
		err := reg.With(id, sub, func(as *ActiveSession) error {
			writeJSON(w, viewOf(as))
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), 404)
		}
	}
}

// POST /sessions/{sessionID}/answers  {"block_id":"...","answer":...}
func AnswerHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		sub := rbac.SubjectFromContext(r.Context())
		var req struct {
			BlockID string      `json:"block_id"`
			Answer  interface{} `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.BlockID == "" {
			http.Error(w, "block_id required", 400)
			return
		}
		err := reg.With(id, sub, func(as *ActiveSession) error {
			as.Session.SetAnswer(req.BlockID, req.Answer)
			writeJSON(w, viewOf(as))
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), 404)
		}
	}
}

// POST /sessions/{sessionID}/navigate  {"action":"next|previous|goto","index":3}
func NavigateHandler(reg *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		sub := rbac.SubjectFromContext(r.Context())
		var req struct {
			Action string `json:"action"`
			Index  int    `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		err := reg.With(id, sub, func(as *ActiveSession) error {
			switch req.Action {
			case "next":
				as.Session.Next()
			case "previous":
				as.Session.Previous()
			case "goto":
				as.Session.GoTo(req.Index)
			default:
				http.Error(w, "unknown action", 400)
				return nil
			}
			writeJSON(w, viewOf(as))
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), 404)
		}
	}
}

// POST /sessions/{sessionID}/submit
func SubmitHandler(reg *SessionRegistry, sub *result.Submitter, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		userID := rbac.SubjectFromContext(r.Context())
		var outcome result.Outcome
		err := reg.With(id, userID, func(as *ActiveSession) error {
			outcome = sub.Submit(r.Context(), as.Session, as.Grader, as.UserID, as.Scope)
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		if outcome.Success {
			reg.Delete(id)
			if events != nil && outcome.Result != nil {
				// best-effort; the result itself is already durable
				_ = events.Append(r.Context(), syncx.EventEvaluationSubmitted, outcome.Result.ID, outcome.Result)
			}
		}
		writeJSON(w, outcome)
	}
}
