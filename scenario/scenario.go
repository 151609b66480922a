// Package scenario loads the scenario descriptor: a JSON document
// enumerating the signals a run should synthesize, each with its system,
// name, PRN, data rate, initial carrier phase, and file references for
// the profile PPs that drive it.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SignalParams holds the per-signal parameters named directly in the
// descriptor rather than loaded from a referenced file.
type SignalParams struct {
	PRN      int     `json:"prn"`
	DataRate float64 `json:"data_rate"`
}

// Signal describes one signal to synthesize.
type Signal struct {
	System       string       `json:"system"`
	Name         string       `json:"name"`
	SignalParams SignalParams `json:"signal_params"`
	CarrierPhase float64      `json:"carrier_phase"`

	// File references, each optional; a zero value means that profile
	// is disabled for this signal.
	PseudorangeFile string `json:"pseudorange_file,omitempty"`
	DopplerFile     string `json:"doppler_file,omitempty"`
	PowerFile       string `json:"power_file,omitempty"`
	DataIFile       string `json:"data_i_file,omitempty"`
	DataQFile       string `json:"data_q_file,omitempty"`
	NoiseDensityFile string `json:"noise_density_file,omitempty"`

	FDMAOffsetHz float64 `json:"fdma_offset_hz,omitempty"`
}

// Descriptor is a fully parsed scenario file.
type Descriptor struct {
	Signals []Signal `json:"signals"`
}

// Load reads and parses a scenario descriptor from r.
func Load(r io.Reader) (*Descriptor, error) {
	var d Descriptor
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("scenario: decoding descriptor: %w", err)
	}
	if len(d.Signals) == 0 {
		return nil, fmt.Errorf("scenario: descriptor names no signals")
	}
	for i, s := range d.Signals {
		if s.System == "" || s.Name == "" {
			return nil, fmt.Errorf("scenario: signal %d missing system or name", i)
		}
	}
	return &d, nil
}

// LoadFile opens and parses a scenario descriptor file at path.
func LoadFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}
