// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kjfield/aioadc/api"
)

// Channel is one entry of a StreamConfig's channel table.
type Channel struct {
	Enabled     bool     `json:"enabled"`
	GainCode    GainCode `json:"gain"`
	Description string   `json:"desc"`
}

// StreamConfig is the decoded form of a JSON stream configuration
// file: device selection, channel table, and the acquisition
// parameters the engine package needs to start a run. Channels has no
// fixed upper bound: NumChannels may exceed its current length, in
// which case any index past the end is treated as a disabled,
// default-gain channel. Use the Channel method rather than indexing
// directly when populating entries outside of JSON decoding.
type StreamConfig struct {
	DeviceIndex        int         `json:"device_index"`
	NumChannels        int         `json:"num_channels"`
	NumOversamples     uint8       `json:"num_oversamples"`
	BaseSize           int         `json:"base_size"`
	Channels           []Channel   `json:"channels"`
	TriggerMode        TriggerMode `json:"trigger_mode"`
	TimeoutMS          int         `json:"timeout_ms"`
	Testing            bool        `json:"testing"`
	Differential       bool        `json:"differential"`
	DiscardFirstSample bool        `json:"discard_first_sample"`
	OutputKind         OutputKind  `json:"output_kind"`
	SampleRateHz       float64     `json:"sample_rate_hz"`
}

// Channel returns a pointer to c's entry for channel i, growing the
// underlying table if i is not yet covered. Callers that build a
// StreamConfig by hand should use this rather than indexing Channels
// directly, since a freshly constructed StreamConfig's table is empty.
func (c *StreamConfig) Channel(i int) *Channel {
	if i >= len(c.Channels) {
		grown := make([]Channel, i+1)
		copy(grown, c.Channels)
		c.Channels = grown
	}
	return &c.Channels[i]
}

// Load decodes a StreamConfig from r.
func Load(r io.Reader) (*StreamConfig, error) {
	var c StreamConfig
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("config: decoding stream configuration: %w", err)
	}
	return &c, nil
}

// Validate reports whether c describes a configuration the engine can
// actually run: at least one channel, a non-zero sample rate, and gain
// codes that index a defined range. NumChannels has no fixed ceiling;
// a device addressing more than the hardware's native register width
// is handled by the engine expanding its configuration register size
// rather than by rejecting the configuration here.
func (c *StreamConfig) Validate() error {
	if c.NumChannels <= 0 {
		return fmt.Errorf("config: num_channels must be positive: %w", api.InvalidParameter)
	}
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("config: sample_rate_hz must be positive: %w", api.InvalidParameter)
	}
	enabled := 0
	for i := 0; i < c.NumChannels; i++ {
		if i >= len(c.Channels) {
			continue
		}
		ch := c.Channels[i]
		if !ch.Enabled {
			continue
		}
		enabled++
		if int(ch.GainCode) >= len(api.GainRanges) {
			return fmt.Errorf("config: channel %d gain code %d out of range: %w", i, ch.GainCode, api.InvalidParameter)
		}
	}
	if enabled == 0 {
		return fmt.Errorf("config: no channels enabled: %w", api.InvalidParameter)
	}
	return nil
}

// GainTable returns the per-channel gain range table for c's first
// NumChannels channels, suitable for stream.CountsToVolts. A channel
// index past the end of Channels is treated as gain code zero.
func (c *StreamConfig) GainTable() []api.GainRange {
	table := make([]api.GainRange, c.NumChannels)
	for i := 0; i < c.NumChannels; i++ {
		var code GainCode
		if i < len(c.Channels) {
			code = c.Channels[i].GainCode
		}
		table[i] = api.GainRanges[code]
	}
	return table
}
