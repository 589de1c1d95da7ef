package evaluation

import (
	"math"
	"math/rand"
	"time"
)

// Presentation is the per-exercise display randomization for one block,
// computed once per session so re-renders see a stable order.
type Presentation struct {
	// ItemOrder scrambles reorder items for initial display: position p shows
	// original item ItemOrder[p].
	ItemOrder []int `json:"itemOrder,omitempty"`
	// RightOrder scrambles the match-pairs right column the same way.
	RightOrder []int `json:"rightOrder,omitempty"`
}

// Session is one learner's in-progress evaluation: the shuffled pool, the
// answer map, and the cursor. It is ephemeral; only the submitted result
// survives. A session serves a single learner, so it does no locking of its
// own (the HTTP registry serializes access).
type Session struct {
	blocks    []Block
	answers   map[string]interface{}
	current   int
	startedAt time.Time

	rng           *rand.Rand
	presentations map[string]Presentation
}

// NewSession shuffles pool exactly once and fixes that order for the life of
// the session. An empty pool is allowed and represents "no content".
func NewSession(rng *rand.Rand, pool []Block, startedAt time.Time) *Session {
	return &Session{
		blocks:        ShuffleBlocks(rng, pool),
		answers:       map[string]interface{}{},
		startedAt:     startedAt,
		rng:           rng,
		presentations: map[string]Presentation{},
	}
}

func (s *Session) Blocks() []Block      { return s.blocks }
func (s *Session) TotalBlocks() int     { return len(s.blocks) }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) CurrentIndex() int    { return s.current }

// Current returns the block under the cursor, or false for an empty pool.
func (s *Session) Current() (Block, bool) {
	if len(s.blocks) == 0 {
		return Block{}, false
	}
	return s.blocks[s.current], true
}

// Next advances the cursor; no-op at the last block.
func (s *Session) Next() {
	if s.current < len(s.blocks)-1 {
		s.current++
	}
}

// Previous moves the cursor back; no-op at the first block.
func (s *Session) Previous() {
	if s.current > 0 {
		s.current--
	}
}

// GoTo jumps to index; no-op when out of bounds.
func (s *Session) GoTo(index int) {
	if index >= 0 && index < len(s.blocks) {
		s.current = index
	}
}

func (s *Session) IsFirst() bool { return s.current == 0 }

func (s *Session) IsLast() bool { return s.current == len(s.blocks)-1 }

// Progress is the 1-based cursor position as a rounded percentage.
func (s *Session) Progress() int {
	if len(s.blocks) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.current+1) / float64(len(s.blocks))))
}

// SetAnswer replaces the learner's answer for a block. Values are not
// validated here; the grader sorts out shape at scoring time.
func (s *Session) SetAnswer(blockID string, answer interface{}) {
	s.answers[blockID] = answer
}

// Answer reports the stored answer and whether one was set, so callers can
// tell "unanswered" from a valid false.
func (s *Session) Answer(blockID string) (interface{}, bool) {
	v, ok := s.answers[blockID]
	return v, ok
}

// Answers returns a copy of the answer map.
func (s *Session) Answers() map[string]interface{} {
	out := make(map[string]interface{}, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Presentation returns the display randomization for a block, drawing it on
// first use and memoizing it for the rest of the session.
func (s *Session) Presentation(b Block) Presentation {
	if p, ok := s.presentations[b.ID]; ok {
		return p
	}
	var p Presentation
	switch b.Type {
	case TypeReorder:
		p.ItemOrder = Permutation(s.rng, len(b.Content.Items))
	case TypeMatchPairs:
		p.RightOrder = Permutation(s.rng, len(b.Content.Pairs))
	}
	s.presentations[b.ID] = p
	return p
}
