package evaluation

// Grouping is one source of blocks (typically a chapter) with the provenance
// label to attach to each block pulled from it.
type Grouping struct {
	ID     string
	Title  string
	Blocks []Block
}

// BuildPool flattens groupings into a single pool, tagging each block with
// the grouping it came from. Order is whatever the groupings supply; callers
// shuffle before display. Blocks are not deduplicated: the same exercise id
// reused in two chapters yields two pool entries, told apart by provenance.
// An empty pool is a valid "no content" state, not an error.
func BuildPool(groupings ...Grouping) []Block {
	var pool []Block
	for _, g := range groupings {
		for _, b := range g.Blocks {
			if g.ID != "" {
				b.SourceChapterID = g.ID
				b.SourceChapterTitle = g.Title
			}
			pool = append(pool, b)
		}
	}
	return pool
}
