// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kjfield/aioadc/config"
)

// FlagSet is the Var method shared by pflag.FlagSet and flag.FlagSet.
// Nothing in this package takes a FlagSet.
type FlagSet interface {
	Var(value flag.Value, name string, usage string)
}

const FsFlagHelp = `FsHz: Sample Rate
Sample rate between 0 and 10 MHz specified in Hz. Can be specified
with a k or M suffix to indicate the value is in kHz or MHz
respectively (e.g. 2.1M is equal to 2100000).`

// ParseFsFlag parses the --rate flag's value, validating it as a
// sample rate this hardware's clock divisors can realize.
func ParseFsFlag(arg string) (float64, error) {
	return ParseSampleRate(arg)
}

const GainFlagHelp = `+/-10|+/-5|+/-2|+/-1|+/-0.5|+/-0.25|+/-0.125|+/-0.0625|0-10|0-5|0-2|0-1|0-0.5|0-0.25|0-0.125|0-0.0625: Gain Range
Select a channel's input gain range by its span and polarity, matching
the keys accepted in a channel's "gain" field in the JSON configuration
file.`

// ParseGainFlag parses a gain-range flag value against the same
// lookup config.GainCodes uses for a channel's JSON "gain" field.
func ParseGainFlag(arg string) (config.GainCode, error) {
	code, ok := config.GainCodes[arg]
	if !ok {
		return 0, fmt.Errorf("invalid gain code; got %q, want one of %v", arg, gainCodeKeys())
	}
	return code, nil
}

func gainCodeKeys() []string {
	keys := make([]string, 0, len(config.GainCodes))
	for k := range config.GainCodes {
		keys = append(keys, k)
	}
	return keys
}

const OutputFlagHelp = `counts|volts: Output Kind
Select whether the engine emits raw counts or converted voltages.`

// ParseOutputFlag parses an output-kind flag value.
func ParseOutputFlag(arg string) (config.OutputKind, error) {
	kind, ok := config.OutputKinds[arg]
	if !ok {
		return 0, fmt.Errorf("invalid output kind; got %q, want counts|volts", arg)
	}
	return kind, nil
}

const ChannelsFlagHelp = `N|N-M|N,M,...: Channel Range
Select which channels to enable, specified as a single channel index,
an inclusive range (e.g. 0-3), or a comma-separated list of either
(e.g. 0-3,6,8).`

// ParseChannelsFlag parses a channel-range flag value into a sorted,
// deduplicated list of zero-based channel indices.
func ParseChannelsFlag(arg string) ([]int, error) {
	seen := make(map[int]bool)
	var chans []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, err := parseChannelPart(part)
		if err != nil {
			return nil, err
		}
		for i := lo; i <= hi; i++ {
			if !seen[i] {
				seen[i] = true
				chans = append(chans, i)
			}
		}
	}
	if len(chans) == 0 {
		return nil, fmt.Errorf("invalid channel range; got %q, want N|N-M|N,M,...", arg)
	}
	sort.Ints(chans)
	return chans, nil
}

func parseChannelPart(part string) (int, int, error) {
	if i := strings.IndexByte(part, '-'); i >= 0 {
		lo, err := strconv.Atoi(part[:i])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid channel range %q: %w", part, err)
		}
		hi, err := strconv.Atoi(part[i+1:])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid channel range %q: %w", part, err)
		}
		if lo > hi {
			return 0, 0, fmt.Errorf("invalid channel range %q: start greater than end", part)
		}
		return lo, hi, nil
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid channel %q: %w", part, err)
	}
	return n, n, nil
}

const SerialsFlagHelp = `serialA,serialB,...: Device Serial Numbers
Provide a comma-separated list of one or more device serial numbers to
select from. The value "any" matches any serial number.`

// ParseSerialsFlag parses a comma-separated serial number list, for
// use with session.WithSerials.
func ParseSerialsFlag(arg string) ([]string, error) {
	if arg == "" || arg == "any" {
		return nil, nil
	}
	var serials []string
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("invalid serial in list %q", arg)
		}
		serials = append(serials, part)
	}
	return serials, nil
}
