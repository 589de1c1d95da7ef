package evaluation

// Verdict is the outcome of grading a single block.
type Verdict struct {
	Correct       bool
	EarnedPoints  float64
	MaxPoints     float64
	CorrectAnswer interface{}
}

// Strategy grades one block type.
type Strategy interface {
	Grade(b Block, answer interface{}) Verdict
}

// Grader routes by block type to the correct Strategy. Grading is pure:
// identical inputs always give identical verdicts, and nothing ever panics
// or errors. Unknown types and malformed answers resolve to incorrect.
type Grader interface {
	Grade(b Block, answer interface{}) Verdict
}

// PartialCredit selects how drag_drop and match_pairs blocks score when only
// some sub-parts are right.
type PartialCredit int

const (
	// PartialProportional awards points * correctParts/totalParts.
	PartialProportional PartialCredit = iota
	// PartialStrict awards full points or none.
	PartialStrict
)

type Option func(*graderConfig)

type graderConfig struct {
	partial PartialCredit
}

func WithPartialCredit(p PartialCredit) Option {
	return func(c *graderConfig) { c.partial = p }
}

type defaultGrader struct {
	strategies map[BlockType]Strategy
}

func (g *defaultGrader) Grade(b Block, answer interface{}) Verdict {
	s, ok := g.strategies[b.Type]
	if !ok {
		return Verdict{MaxPoints: b.Points, CorrectAnswer: nil}
	}
	return s.Grade(b, answer)
}

// NewGrader installs built-in strategies for the eight block types.
func NewGrader(opts ...Option) Grader {
	cfg := &graderConfig{partial: PartialProportional}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultGrader{
		strategies: map[BlockType]Strategy{
			TypeFlashcard:    flashcardStrategy{},
			TypeTrueFalse:    trueFalseStrategy{},
			TypeQCM:          qcmStrategy{},
			TypeQCMSelective: qcmSelectiveStrategy{},
			TypeReorder:      reorderStrategy{},
			TypeDragDrop:     dragDropStrategy{partial: cfg.partial},
			TypeMatchPairs:   matchPairsStrategy{partial: cfg.partial},
			TypeText:         textStrategy{},
		},
	}
}

// --- Strategies ---

type flashcardStrategy struct{}

// Flashcards are self-reported: the learner's own "correct"/"incorrect" tap
// is the verdict. No text comparison happens.
func (flashcardStrategy) Grade(b Block, answer interface{}) Verdict {
	v := Verdict{MaxPoints: b.Points, CorrectAnswer: CorrectAnswer(b)}
	if m, ok := asMap(answer); ok {
		if sv, ok := m["selfEvaluation"].(string); ok && sv == "correct" {
			v.Correct = true
			v.EarnedPoints = b.Points
		}
	}
	return v
}

type trueFalseStrategy struct{}

func (trueFalseStrategy) Grade(b Block, answer interface{}) Verdict {
	v := Verdict{MaxPoints: b.Points, CorrectAnswer: CorrectAnswer(b)}
	// An unanswered block is distinct from an answered "false".
	if got, ok := answer.(bool); ok && got == b.Content.Correct {
		v.Correct = true
		v.EarnedPoints = b.Points
	}
	return v
}

type qcmStrategy struct{}

func (qcmStrategy) Grade(b Block, answer interface{}) Verdict {
	v := Verdict{MaxPoints: b.Points, CorrectAnswer: CorrectAnswer(b)}
	if got, ok := asInt(answer); ok && got == b.Content.CorrectIndex {
		v.Correct = true
		v.EarnedPoints = b.Points
	}
	return v
}

type qcmSelectiveStrategy struct{}

// Set-equality, order-independent. Subsets and supersets of the correct set
// score nothing.
func (qcmSelectiveStrategy) Grade(b Block, answer interface{}) Verdict {
	v := Verdict{MaxPoints: b.Points, CorrectAnswer: CorrectAnswer(b)}
	got, ok := asIntSlice(answer)
	if !ok {
		return v
	}
	want := b.Content.CorrectIndices
	if len(got) != len(want) {
		return v
	}
	seen := make(map[int]int, len(want))
	for _, i := range want {
		seen[i]++
	}
	for _, i := range got {
		seen[i]--
	}
	for _, n := range seen {
		if n != 0 {
			return v
		}
	}
	v.Correct = true
	v.EarnedPoints = b.Points
	return v
}

type reorderStrategy struct{}

// The stored item order is the canonical one; the answer is the sequence of
// original indices in the order the learner arranged them.
func (reorderStrategy) Grade(b Block, answer interface{}) Verdict {
	v := Verdict{MaxPoints: b.Points, CorrectAnswer: CorrectAnswer(b)}
	got, ok := asIntSlice(answer)
	if !ok || len(got) != len(b.Content.Items) {
		return v
	}
	for i, idx := range got {
		if idx != i {
			return v
		}
	}
	v.Correct = true
	v.EarnedPoints = b.Points
	return v
}

type dragDropStrategy struct{ partial PartialCredit }

func (s dragDropStrategy) Grade(b Block, answer interface{}) Verdict {
	v := Verdict{MaxPoints: b.Points, CorrectAnswer: CorrectAnswer(b)}
	zones := b.Content.DropZones
	if len(zones) == 0 {
		return v
	}
	placed, _ := asMap(answer)
	correct := 0
	for i, z := range zones {
		if got, ok := placed[ZoneKey(z, i)].(string); ok && got == z.CorrectAnswer {
			correct++
		}
	}
	v.Correct = correct == len(zones)
	v.EarnedPoints = partialPoints(s.partial, b.Points, correct, len(zones))
	return v
}

type matchPairsStrategy struct{ partial PartialCredit }

// Pair i must be matched back to itself; the display-side scramble is purely
// presentational.
func (s matchPairsStrategy) Grade(b Block, answer interface{}) Verdict {
	v := Verdict{MaxPoints: b.Points, CorrectAnswer: CorrectAnswer(b)}
	pairs := b.Content.Pairs
	if len(pairs) == 0 {
		return v
	}
	matched, _ := asIntMap(answer)
	correct := 0
	for i := range pairs {
		if got, ok := matched[i]; ok && got == i {
			correct++
		}
	}
	v.Correct = correct == len(pairs)
	v.EarnedPoints = partialPoints(s.partial, b.Points, correct, len(pairs))
	return v
}

type textStrategy struct{}

// Text blocks are informational. They are never scored and contribute
// nothing to the total; the "read" timestamp is a caller concern.
func (textStrategy) Grade(Block, interface{}) Verdict {
	return Verdict{}
}

func partialPoints(p PartialCredit, points float64, correct, total int) float64 {
	if correct == total {
		return points
	}
	if p == PartialProportional && total > 0 {
		return points * float64(correct) / float64(total)
	}
	return 0
}
