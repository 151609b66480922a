package scenario

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "signals": [
    {
      "system": "GPS",
      "name": "L1CA",
      "signal_params": {"prn": 5, "data_rate": 50},
      "carrier_phase": 0.5,
      "pseudorange_file": "prn5_pseudorange.pp",
      "doppler_file": "prn5_doppler.pp"
    }
  ]
}`

func TestLoad_ParsesSignals(t *testing.T) {
	d, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, d.Signals, 1)

	s := d.Signals[0]
	assert.Equal(t, "GPS", s.System)
	assert.Equal(t, "L1CA", s.Name)
	assert.Equal(t, 5, s.SignalParams.PRN)
	assert.Equal(t, 50.0, s.SignalParams.DataRate)
	assert.Equal(t, "prn5_pseudorange.pp", s.PseudorangeFile)
}

func TestLoad_RejectsEmptySignalList(t *testing.T) {
	_, err := Load(strings.NewReader(`{"signals": []}`))
	assert.Error(t, err)
}

func TestLoad_RejectsMissingRequiredFields(t *testing.T) {
	_, err := Load(strings.NewReader(`{"signals": [{"signal_params": {"prn": 1}}]}`))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader(`{"signals": [{"system":"GPS","name":"L1CA","bogus_field": 1}]}`))
	assert.Error(t, err)
}
