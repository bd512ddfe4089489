package quiz

import "math/rand/v2"

// shuffle applies an unbiased Fisher-Yates permutation in place.
// Lengths 0 and 1 are no-ops.
func shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
