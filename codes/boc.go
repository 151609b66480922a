package codes

import "fmt"

// BOCUpsample maps each ±1-valued chip in chips to a block of k values
// alternating the chip and its negation, implementing BOC(m,n) for
// integer k = 2m/n. Used to pre-expand GPS L1C and Galileo E1OS
// BOC(1,1) chip sequences (k=2) before feeding a source.Repeating.
func BOCUpsample(chips []float64, m, n int) ([]float64, error) {
	if n == 0 || (2*m)%n != 0 {
		return nil, fmt.Errorf("codes: BOC(%d,%d) requires 2m/n to be an integer", m, n)
	}
	k := 2 * m / n
	if k < 1 {
		return nil, fmt.Errorf("codes: BOC(%d,%d) yields non-positive k=%d", m, n, k)
	}

	out := make([]float64, len(chips)*k)
	for i, c := range chips {
		for j := 0; j < k; j++ {
			if j%2 == 0 {
				out[i*k+j] = c
			} else {
				out[i*k+j] = -c
			}
		}
	}
	return out, nil
}
