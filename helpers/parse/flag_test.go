// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"reflect"
	"testing"

	"github.com/kjfield/aioadc/config"
)

func TestParseGainFlag(t *testing.T) {
	specs := []struct {
		arg   string
		valid bool
		want  config.GainCode
	}{
		{"+/-10", true, 0},
		{"0-0.0625", true, 15},
		{"bogus", false, 0},
	}
	for i, spec := range specs {
		got, err := ParseGainFlag(spec.arg)
		switch {
		case !spec.valid && err == nil:
			t.Errorf("%d: unexpected success", i)
		case spec.valid && err != nil:
			t.Errorf("%d: unexpected error: %v", i, err)
		case spec.valid && got != spec.want:
			t.Errorf("%d: wrong value: got %v, want %v", i, got, spec.want)
		}
	}
}

func TestParseOutputFlag(t *testing.T) {
	specs := []struct {
		arg   string
		valid bool
		want  config.OutputKind
	}{
		{"counts", true, config.Counts},
		{"volts", true, config.Volts},
		{"bogus", false, 0},
	}
	for i, spec := range specs {
		got, err := ParseOutputFlag(spec.arg)
		switch {
		case !spec.valid && err == nil:
			t.Errorf("%d: unexpected success", i)
		case spec.valid && err != nil:
			t.Errorf("%d: unexpected error: %v", i, err)
		case spec.valid && got != spec.want:
			t.Errorf("%d: wrong value: got %v, want %v", i, got, spec.want)
		}
	}
}

func TestParseChannelsFlag(t *testing.T) {
	specs := []struct {
		arg   string
		valid bool
		want  []int
	}{
		{"0", true, []int{0}},
		{"0-3", true, []int{0, 1, 2, 3}},
		{"0-3,6,8", true, []int{0, 1, 2, 3, 6, 8}},
		{"3-1", false, nil},
		{"abc", false, nil},
		{"", false, nil},
	}
	for i, spec := range specs {
		got, err := ParseChannelsFlag(spec.arg)
		switch {
		case !spec.valid && err == nil:
			t.Errorf("%d: unexpected success", i)
		case spec.valid && err != nil:
			t.Errorf("%d: unexpected error: %v", i, err)
		case spec.valid && !reflect.DeepEqual(got, spec.want):
			t.Errorf("%d: wrong value: got %v, want %v", i, got, spec.want)
		}
	}
}

func TestParseSerialsFlag(t *testing.T) {
	specs := []struct {
		arg   string
		valid bool
		want  []string
	}{
		{"any", true, nil},
		{"", true, nil},
		{"abc", true, []string{"abc"}},
		{"abc,defg", true, []string{"abc", "defg"}},
		{"abc,", false, nil},
	}
	for i, spec := range specs {
		got, err := ParseSerialsFlag(spec.arg)
		switch {
		case !spec.valid && err == nil:
			t.Errorf("%d: unexpected success", i)
		case spec.valid && err != nil:
			t.Errorf("%d: unexpected error: %v", i, err)
		case spec.valid && !reflect.DeepEqual(got, spec.want):
			t.Errorf("%d: wrong value: got %v, want %v", i, got, spec.want)
		}
	}
}
