package evaluation

import "math/rand"

// ShuffleBlocks returns a new slice holding a Fisher-Yates permutation of
// blocks. The input is left untouched.
func ShuffleBlocks(r *rand.Rand, blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Permutation returns a Fisher-Yates permutation of [0..n). Used for
// per-exercise internal orderings (reorder item scrambles, match-pairs right
// column), each an isolated draw.
func Permutation(r *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
