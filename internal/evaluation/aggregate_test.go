package evaluation

import "testing"

func TestEvaluateEmptyPool(t *testing.T) {
	sum := Evaluate(NewGrader(), nil, map[string]interface{}{})
	if sum.Score != 0 || sum.TotalPoints != 0 || sum.EarnedPoints != 0 {
		t.Fatalf("empty pool: got %+v, want zeroes", sum)
	}
	if len(sum.Results) != 0 {
		t.Fatalf("empty pool: got %d results", len(sum.Results))
	}
}

func TestEvaluateOneResultPerBlock(t *testing.T) {
	blocks := []Block{
		qcmBlock("q1", 0, 10),
		qcmBlock("q2", 1, 10),
		{ID: "tf1", Type: TypeTrueFalse, Points: 5, Content: Content{Correct: true}},
		{ID: "txt", Type: TypeText, Points: 99, Content: Content{HTML: "<p>intro</p>"}},
	}
	answers := map[string]interface{}{
		"q1":  0, // right
		"q2":  0, // wrong
		// tf1 left unanswered
	}

	sum := Evaluate(NewGrader(), blocks, answers)
	if len(sum.Results) != len(blocks) {
		t.Fatalf("got %d results, want %d", len(sum.Results), len(blocks))
	}
	for i, r := range sum.Results {
		if r.BlockID != blocks[i].ID {
			t.Fatalf("result %d out of pool order: %s", i, r.BlockID)
		}
	}
	// text points are excluded from the total
	if sum.TotalPoints != 25 {
		t.Fatalf("total = %v, want 25", sum.TotalPoints)
	}
	if sum.EarnedPoints != 10 {
		t.Fatalf("earned = %v, want 10", sum.EarnedPoints)
	}
	if sum.Score != 40 {
		t.Fatalf("score = %d, want 40", sum.Score)
	}
}

func TestEvaluateScoreBoundsAndRounding(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		answer map[string]interface{}
		score  int
	}{
		{
			name:   "all correct",
			blocks: []Block{qcmBlock("a", 1, 3)},
			answer: map[string]interface{}{"a": 1},
			score:  100,
		},
		{
			name:   "none answered",
			blocks: []Block{qcmBlock("a", 1, 3), qcmBlock("b", 2, 3)},
			answer: map[string]interface{}{},
			score:  0,
		},
		{
			name:   "two thirds rounds up",
			blocks: []Block{qcmBlock("a", 1, 1), qcmBlock("b", 1, 1), qcmBlock("c", 1, 1)},
			answer: map[string]interface{}{"a": 1, "b": 1, "c": 0},
			score:  67,
		},
		{
			name:   "zero total stays zero",
			blocks: []Block{{ID: "t", Type: TypeText}},
			answer: map[string]interface{}{},
			score:  0,
		},
	}
	g := NewGrader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Evaluate(g, tt.blocks, tt.answer)
			if sum.Score != tt.score {
				t.Fatalf("score = %d, want %d", sum.Score, tt.score)
			}
			if sum.Score < 0 || sum.Score > 100 {
				t.Fatalf("score %d out of [0,100]", sum.Score)
			}
			if sum.EarnedPoints > sum.TotalPoints {
				t.Fatalf("earned %v exceeds total %v", sum.EarnedPoints, sum.TotalPoints)
			}
		})
	}
}

func TestEvaluateCarriesProvenance(t *testing.T) {
	pool := BuildPool(Grouping{
		ID:     "chap-1",
		Title:  "Basics",
		Blocks: []Block{qcmBlock("q1", 0, 2)},
	})
	sum := Evaluate(NewGrader(), pool, map[string]interface{}{"q1": 0})
	r := sum.Results[0]
	if r.SourceChapterID != "chap-1" || r.SourceChapterTitle != "Basics" {
		t.Fatalf("provenance lost: %+v", r)
	}
}
