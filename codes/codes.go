// Package codes provides PRN spreading-code and overlay-code tables for
// the GNSS signals spec.md names as supported by the core: GPS L1 C/A,
// GPS L1C, GPS L5, Galileo E1B/C, and GLONASS L1 C/A. Codes are ±1-valued
// chip arrays; callers feed them into a source.Repeating to drive the
// rest of the pipeline.
package codes

import "fmt"

// System identifies a supported GNSS signal.
type System string

const (
	GPSL1CA    System = "GPS/L1CA"
	GPSL1C     System = "GPS/L1C"
	GPSL5      System = "GPS/L5"
	GalileoE1  System = "Galileo/E1OS"
	GLONASSL1  System = "GLONASS/L1CA"
)

// ChipRate returns the nominal chipping rate in chips/second for sys.
func ChipRate(sys System) (float64, error) {
	switch sys {
	case GPSL1CA:
		return 1.023e6, nil
	case GPSL1C:
		return 1.023e6, nil // pre-BOC-upsample chip rate; BOC(1,1) doubles the sample rate
	case GPSL5:
		return 10.23e6, nil
	case GalileoE1:
		return 1.023e6, nil // pre-BOC-upsample chip rate
	case GLONASSL1:
		return 0.511e6, nil
	default:
		return 0, fmt.Errorf("codes: unknown system %q", sys)
	}
}

// CodeLength returns the number of chips (or symbols, for overlay codes)
// in one full period of sys's primary spreading code.
func CodeLength(sys System) (int, error) {
	switch sys {
	case GPSL1CA:
		return 1023, nil
	case GPSL1C:
		return 10230, nil
	case GPSL5:
		return 10230, nil
	case GalileoE1:
		return 4092, nil
	case GLONASSL1:
		return 511, nil
	default:
		return 0, fmt.Errorf("codes: unknown system %q", sys)
	}
}

// Chips returns the ±1-valued primary spreading-code chip sequence for
// prn under sys.
func Chips(sys System, prn int) ([]float64, error) {
	switch sys {
	case GPSL1CA:
		return gpsCA(prn)
	case GPSL1C, GPSL5, GalileoE1, GLONASSL1:
		n, err := CodeLength(sys)
		if err != nil {
			return nil, err
		}
		return goldLike(sys, prn, n)
	default:
		return nil, fmt.Errorf("codes: unknown system %q", sys)
	}
}

// Overlay returns the secondary (Neuman-Hofman or overlay) code for
// signals that carry one, as ±1-valued symbols; ok is false for
// signals with no secondary code.
func Overlay(sys System, prn int) (chips []float64, ok bool, err error) {
	switch sys {
	case GPSL5:
		// 10-bit Neuman-Hofman-length overlay seeded by PRN, generated
		// deterministically here rather than from an ICD table; see
		// DESIGN.md.
		return nhOverlay(prn, 10), true, nil
	case GalileoE1:
		return nhOverlay(prn, 25), true, nil
	default:
		return nil, false, nil
	}
}
