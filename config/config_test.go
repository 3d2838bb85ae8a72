// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
	"device_index": 0,
	"num_channels": 2,
	"num_oversamples": 3,
	"base_size": 512,
	"channels": [
		{"enabled": true, "gain": "+/-10", "desc": "ch0"},
		{"enabled": true, "gain": "0-5", "desc": "ch1"}
	],
	"trigger_mode": "immediate",
	"timeout_ms": 3000,
	"testing": true,
	"output_kind": "volts",
	"sample_rate_hz": 10000
}`

func TestLoadValidConfig(t *testing.T) {
	c, err := Load(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	require.Equal(t, 2, c.NumChannels)
	require.Equal(t, GainCode(0), c.Channels[0].GainCode)
	require.Equal(t, GainCode(9), c.Channels[1].GainCode)
	require.Equal(t, TriggerImmediate, c.TriggerMode)
	require.Equal(t, Volts, c.OutputKind)
	require.True(t, c.Testing)

	require.NoError(t, c.Validate())
}

func TestGainCodeUnmarshalRejectsUnknown(t *testing.T) {
	var g GainCode
	err := g.UnmarshalJSON([]byte(`"+/-999"`))
	require.Error(t, err)
}

func TestOutputKindUnmarshalRejectsUnknown(t *testing.T) {
	var k OutputKind
	err := k.UnmarshalJSON([]byte(`"bogus"`))
	require.Error(t, err)
}

func TestValidateRejectsNoEnabledChannels(t *testing.T) {
	c := &StreamConfig{NumChannels: 1, SampleRateHz: 1000}
	err := c.Validate()
	require.Error(t, err)
}

func TestValidateRejectsZeroSampleRate(t *testing.T) {
	c := &StreamConfig{NumChannels: 1}
	c.Channel(0).Enabled = true
	err := c.Validate()
	require.Error(t, err)
}
