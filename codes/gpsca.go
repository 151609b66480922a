package codes

import "fmt"

// caTaps gives the two G2 output-tap positions (1-indexed into the
// 10-bit G2 shift register) selected per PRN, per ICD-GPS-200 Table
// 3-Ia, for PRNs 1-32.
var caTaps = map[int][2]int{
	1: {2, 6}, 2: {3, 7}, 3: {4, 8}, 4: {5, 9}, 5: {1, 9},
	6: {2, 10}, 7: {1, 8}, 8: {2, 9}, 9: {3, 10}, 10: {2, 3},
	11: {3, 4}, 12: {5, 6}, 13: {6, 7}, 14: {7, 8}, 15: {8, 9},
	16: {9, 10}, 17: {1, 4}, 18: {2, 5}, 19: {3, 6}, 20: {4, 7},
	21: {5, 8}, 22: {6, 9}, 23: {1, 3}, 24: {4, 6}, 25: {5, 7},
	26: {6, 8}, 27: {7, 9}, 28: {8, 10}, 29: {1, 6}, 30: {2, 7},
	31: {3, 8}, 32: {4, 9},
}

// gpsCA generates the 1023-chip GPS L1 C/A Gold code for prn as a
// ±1-valued sequence (0 -> +1, 1 -> -1), via the standard G1/G2 LFSR
// pair defined in ICD-GPS-200.
func gpsCA(prn int) ([]float64, error) {
	taps, ok := caTaps[prn]
	if !ok {
		return nil, fmt.Errorf("codes: GPS L1 C/A has no PRN %d (valid range 1-32)", prn)
	}

	g1 := newAllOnes(10)
	g2 := newAllOnes(10)

	out := make([]float64, 1023)
	for i := range out {
		g1Out := g1[9]
		g2Out := g2[taps[0]-1] ^ g2[taps[1]-1]
		bit := g1Out ^ g2Out

		if bit == 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}

		g1 = shiftLFSR(g1, g1[2]^g1[9])
		g2 = shiftLFSR(g2, g2[1]^g2[2]^g2[5]^g2[7]^g2[8]^g2[9])
	}
	return out, nil
}

func newAllOnes(n int) []int {
	reg := make([]int, n)
	for i := range reg {
		reg[i] = 1
	}
	return reg
}

// shiftLFSR shifts reg right by one (dropping the last element) and
// inserts feedback at position 0, returning a new slice.
func shiftLFSR(reg []int, feedback int) []int {
	out := make([]int, len(reg))
	out[0] = feedback
	copy(out[1:], reg[:len(reg)-1])
	return out
}
