package content

import "errors"

// Kind is the grouping granularity an evaluation pools blocks from.
type Kind string

const (
	// KindSession runs a single chapter's exercise set as-authored, with no
	// cross-chapter pooling or provenance tags.
	KindSession Kind = "session"
	// KindChapter pools the exercise set of one chapter.
	KindChapter Kind = "chapter"
	// KindModule pools the exercise sets of every chapter in a module.
	KindModule Kind = "module"
	// KindProgram pools the exercise sets of every chapter in every module of
	// a program.
	KindProgram Kind = "program"
)

// Scope names what an evaluation covers.
type Scope struct {
	Kind      Kind   `json:"kind"`
	ProgramID string `json:"program_id"`
	ModuleID  string `json:"module_id,omitempty"`
	ChapterID string `json:"chapter_id,omitempty"`
}

var (
	ErrBadScope = errors.New("invalid scope")
)

// Validate checks that the identifiers the kind needs are present.
func (s Scope) Validate() error {
	if s.ProgramID == "" {
		return ErrBadScope
	}
	switch s.Kind {
	case KindSession, KindChapter:
		if s.ChapterID == "" {
			return ErrBadScope
		}
	case KindModule:
		if s.ModuleID == "" {
			return ErrBadScope
		}
	case KindProgram:
		// program id alone is enough
	default:
		return ErrBadScope
	}
	return nil
}
