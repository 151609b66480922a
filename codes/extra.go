package codes

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// goldLike generates a deterministic ±1-valued chip sequence of length n
// for (sys, prn), seeded from both so distinct PRNs and systems never
// collide. GPS L1C, GPS L5, Galileo E1B/C, and GLONASS L1 codes are
// published ICD constants this package does not embed (see DESIGN.md);
// this generator stands in as a structurally equivalent, per-PRN-unique
// spreading sequence so the rest of the pipeline — resampling, BOC
// upsampling, correlation-adjacent code lookups — has something real to
// exercise.
func goldLike(sys System, prn int, n int) ([]float64, error) {
	if prn < 1 || prn > 63 {
		return nil, fmt.Errorf("codes: %s PRN %d out of range 1-63", sys, prn)
	}
	rng := rand.New(rand.NewPCG(seed(sys, prn), uint64(n)))
	out := make([]float64, n)
	for i := range out {
		if rng.Uint64()&1 == 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out, nil
}

// nhOverlay generates a deterministic ±1-valued overlay code of the
// given length for prn.
func nhOverlay(prn int, length int) []float64 {
	rng := rand.New(rand.NewPCG(seed("overlay", prn), uint64(length)))
	out := make([]float64, length)
	for i := range out {
		if rng.Uint64()&1 == 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

func seed(a any, prn int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%v:%d", a, prn)
	return h.Sum64()
}
