// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kjfield/aioadc/api"
)

// ParseFrequency is a helper function to parse a frequency value
// specified as a command-line argument. For convenience, valid
// arguments can have a suffix of k, K, m, or M to indicate the value
// is in kHz or MHz respectively (e.g. 1.5M). Any text before such a
// suffix must represent a valid floating point value as parsed by
// strconv.ParseFloat(). The return value is the parsed frequency in
// Hz.
func ParseFrequency(arg string) (float64, error) {
	var mult float64 = 1
	arg = strings.ToLower(arg)
	switch {
	case arg == "":
		// do nothing
	case strings.HasSuffix(arg, "k"):
		mult = 1000
		arg = strings.TrimSuffix(arg, "k")
	case strings.HasSuffix(arg, "m"):
		mult = 1000 * 1000
		arg = strings.TrimSuffix(arg, "m")
	}
	freq, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, err
	}
	return freq * mult, nil
}

// ParseSampleRate is a wrapper around ParseFrequency that also
// guarantees the result is a valid sample rate for this hardware.
// Specifically, it returns an error if the rate is not in (0,
// api.RootClockHz], since a rate above the 10MHz root clock cannot be
// realized by any divisor pair.
func ParseSampleRate(arg string) (float64, error) {
	freq, err := ParseFrequency(arg)
	if err != nil {
		return 0, err
	}
	if freq <= 0 || freq > api.RootClockHz {
		return 0, fmt.Errorf("invalid sample rate; got %f Hz, want 0<Rate<=%gHz", freq, float64(api.RootClockHz))
	}
	return freq, nil
}
