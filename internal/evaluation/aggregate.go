package evaluation

import "math"

// BlockResult is one entry of a submission's per-block result list.
type BlockResult struct {
	BlockID            string      `json:"blockId"`
	Type               BlockType   `json:"type"`
	IsCorrect          bool        `json:"isCorrect"`
	Points             float64     `json:"points"`
	EarnedPoints       float64     `json:"earnedPoints"`
	CorrectAnswer      interface{} `json:"correctAnswer"`
	UserAnswer         interface{} `json:"userAnswer"`
	SourceChapterID    string      `json:"sourceChapterId,omitempty"`
	SourceChapterTitle string      `json:"sourceChapterTitle,omitempty"`
}

// Summary is the aggregate score over a full block pool.
type Summary struct {
	Score        int           `json:"score"` // 0..100
	TotalPoints  float64       `json:"totalPoints"`
	EarnedPoints float64       `json:"earnedPoints"`
	Results      []BlockResult `json:"results"`
}

// Evaluate grades every block in pool order against the answer map and sums
// points. Every block yields exactly one result entry, answered or not.
// Deterministic for fixed inputs; safe to call repeatedly before submission.
func Evaluate(g Grader, blocks []Block, answers map[string]interface{}) Summary {
	sum := Summary{Results: make([]BlockResult, 0, len(blocks))}
	for _, b := range blocks {
		answer := answers[b.ID]
		v := g.Grade(b, answer)
		sum.TotalPoints += v.MaxPoints
		sum.EarnedPoints += v.EarnedPoints
		sum.Results = append(sum.Results, BlockResult{
			BlockID:            b.ID,
			Type:               b.Type,
			IsCorrect:          v.Correct,
			Points:             v.MaxPoints,
			EarnedPoints:       v.EarnedPoints,
			CorrectAnswer:      v.CorrectAnswer,
			UserAnswer:         answer,
			SourceChapterID:    b.SourceChapterID,
			SourceChapterTitle: b.SourceChapterTitle,
		})
	}
	if sum.TotalPoints > 0 {
		sum.Score = int(math.Round(100 * sum.EarnedPoints / sum.TotalPoints))
	}
	return sum
}
