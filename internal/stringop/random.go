package stringop

import "math/rand/v2"

// Random draws one atomic operation for strings of the given size over
// alphabet. size and len(alphabet) must both be at least 2.
func Random(rng *rand.Rand, size int, alphabet string) Op {
	alpha := []rune(alphabet)
	switch rng.IntN(5) {
	case 0:
		return Transposition{I: rng.IntN(size), J: rng.IntN(size)}
	case 1:
		return Shift{I: rng.IntN(size), D: 1 + rng.IntN(len(alpha)-1), Alphabet: alphabet}
	case 2:
		return Exchange{A: alpha[rng.IntN(len(alpha))], B: alpha[rng.IntN(len(alpha))]}
	case 3:
		return Rotation{D: 1 + rng.IntN(size-1)}
	default:
		return Reflection{}
	}
}

// RandomChain draws a composite of length atomic operations.
func RandomChain(rng *rand.Rand, size int, alphabet string, length int) Composite {
	ops := make([]Op, length)
	for i := range ops {
		ops[i] = Random(rng, size, alphabet)
	}
	return Composite{Ops: ops}
}

// RandomString draws size symbols uniformly from alphabet.
func RandomString(rng *rand.Rand, size int, alphabet string) string {
	alpha := []rune(alphabet)
	out := make([]rune, size)
	for i := range out {
		out[i] = alpha[rng.IntN(len(alpha))]
	}
	return string(out)
}
