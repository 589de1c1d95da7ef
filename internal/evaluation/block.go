package evaluation

import "fmt"

type BlockType string

const (
	TypeFlashcard    BlockType = "flashcard"
	TypeTrueFalse    BlockType = "true_false"
	TypeQCM          BlockType = "qcm"
	TypeQCMSelective BlockType = "qcm_selective"
	TypeReorder      BlockType = "reorder"
	TypeDragDrop     BlockType = "drag_drop"
	TypeMatchPairs   BlockType = "match_pairs"
	TypeText         BlockType = "text"
)

type ReorderItem struct {
	Text string `json:"text"`
}

type DropZone struct {
	ID            string `json:"id,omitempty"`
	Label         string `json:"label,omitempty"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Content is the union of all per-type payloads. Blocks are authored as
// free-form documents; only the fields relevant to the block's type are set.
type Content struct {
	Question  string `json:"question,omitempty"`
	Answer    string `json:"answer,omitempty"`    // flashcard
	Hint      string `json:"hint,omitempty"`      // flashcard
	Statement string `json:"statement,omitempty"` // true_false
	Correct   bool   `json:"correct,omitempty"`   // true_false

	Options        []string `json:"options,omitempty"`        // qcm, qcm_selective
	CorrectIndex   int      `json:"correctIndex,omitempty"`   // qcm
	CorrectIndices []int    `json:"correctIndices,omitempty"` // qcm_selective

	Items []ReorderItem `json:"items,omitempty"` // reorder

	DropZones []DropZone `json:"dropZones,omitempty"` // drag_drop
	Labels    []string   `json:"labels,omitempty"`    // drag_drop

	Pairs []Pair `json:"pairs,omitempty"` // match_pairs

	HTML string `json:"html,omitempty"` // text
}

// Block is the atomic gradable unit of an exercise set.
type Block struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Content Content   `json:"content"`
	Points  float64   `json:"points,omitempty"`

	// Provenance, set when blocks are pooled from multiple chapters.
	SourceChapterID    string `json:"sourceChapterId,omitempty"`
	SourceChapterTitle string `json:"sourceChapterTitle,omitempty"`
}

// ZoneKey returns the answer-map key for the zone at index i. Authoring
// predates stable zone ids, so unidentified zones fall back to a positional
// key.
func ZoneKey(z DropZone, i int) string {
	if z.ID != "" {
		return z.ID
	}
	return fmt.Sprintf("zone_%d", i)
}

// CorrectAnswer returns the canonical correct answer for a block, or nil for
// text and unknown types.
func CorrectAnswer(b Block) interface{} {
	switch b.Type {
	case TypeFlashcard:
		return b.Content.Answer
	case TypeTrueFalse:
		return b.Content.Correct
	case TypeQCM:
		return b.Content.CorrectIndex
	case TypeQCMSelective:
		return b.Content.CorrectIndices
	case TypeReorder:
		order := make([]int, len(b.Content.Items))
		for i := range order {
			order[i] = i
		}
		return order
	case TypeDragDrop:
		m := make(map[string]string, len(b.Content.DropZones))
		for i, z := range b.Content.DropZones {
			m[ZoneKey(z, i)] = z.CorrectAnswer
		}
		return m
	case TypeMatchPairs:
		idx := make([]int, len(b.Content.Pairs))
		for i := range idx {
			idx[i] = i
		}
		return idx
	default:
		return nil
	}
}

// Redacted returns a copy of the block with answer-key fields stripped, safe
// to serve to a learner mid-session.
func (b Block) Redacted() Block {
	c := b
	c.Content.Answer = ""
	c.Content.Correct = false
	c.Content.CorrectIndex = 0
	c.Content.CorrectIndices = nil
	if len(b.Content.DropZones) > 0 {
		zones := make([]DropZone, len(b.Content.DropZones))
		copy(zones, b.Content.DropZones)
		for i := range zones {
			zones[i].CorrectAnswer = ""
		}
		c.Content.DropZones = zones
	}
	return c
}
