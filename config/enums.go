// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/kjfield/aioadc/api"
)

// GainCode selects a channel's gain range. It mirrors api.GainCode but
// decodes from the human-readable strings used in a JSON configuration
// file rather than a raw index.
type GainCode api.GainCode

// GainCodes maps a JSON gain string to its wire-level code. Bipolar
// ranges are named "+/-<V>"; unipolar ranges "0-<V>".
var GainCodes = map[string]GainCode{
	"+/-10":  0,
	"+/-5":   1,
	"+/-2":   2,
	"+/-1":   3,
	"+/-0.5": 4,
	"+/-0.25": 5,
	"+/-0.125": 6,
	"+/-0.0625": 7,
	"0-10":   8,
	"0-5":    9,
	"0-2":    10,
	"0-1":    11,
	"0-0.5":  12,
	"0-0.25": 13,
	"0-0.125": 14,
	"0-0.0625": 15,
}

// UnmarshalJSON implements json.Unmarshaler for GainCode, taking a
// string that must match a key in GainCodes, the way
// usb1608fsplus.VoltageRange decodes against its InputRanges map.
func (g *GainCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("config: gain code should be a string, got %s", data)
	}
	got, ok := GainCodes[s]
	if !ok {
		return fmt.Errorf("config: invalid gain code %q", s)
	}
	*g = got
	return nil
}

// TriggerMode selects how an acquisition starts.
type TriggerMode int

const (
	TriggerImmediate TriggerMode = iota
	TriggerExternalRising
	TriggerExternalFalling
)

// TriggerModes maps a JSON trigger string to its TriggerMode value.
var TriggerModes = map[string]TriggerMode{
	"immediate":       TriggerImmediate,
	"ext_rising_edge":  TriggerExternalRising,
	"ext_falling_edge": TriggerExternalFalling,
}

// UnmarshalJSON implements json.Unmarshaler for TriggerMode.
func (m *TriggerMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("config: trigger mode should be a string, got %s", data)
	}
	got, ok := TriggerModes[s]
	if !ok {
		return fmt.Errorf("config: invalid trigger mode %q", s)
	}
	*m = got
	return nil
}

// OutputKind selects whether the engine emits raw counts or converted
// voltages.
type OutputKind int

const (
	Counts OutputKind = iota
	Volts
)

// OutputKinds maps a JSON output-kind string to its OutputKind value.
var OutputKinds = map[string]OutputKind{
	"counts": Counts,
	"volts":  Volts,
}

// UnmarshalJSON implements json.Unmarshaler for OutputKind.
func (k *OutputKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("config: output kind should be a string, got %s", data)
	}
	got, ok := OutputKinds[s]
	if !ok {
		return fmt.Errorf("config: invalid output kind %q", s)
	}
	*k = got
	return nil
}
