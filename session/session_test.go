// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"testing"
	"time"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/config"
	"github.com/kjfield/aioadc/registry"
	"github.com/kjfield/aioadc/transport/simtransport"
	"github.com/stretchr/testify/require"
)

func testStreamConfig() *config.StreamConfig {
	c := &config.StreamConfig{
		DeviceIndex:  0,
		NumChannels:  2,
		Testing:      true,
		OutputKind:   config.Counts,
		SampleRateHz: 1000,
		TimeoutMS:    3000,
	}
	c.Channel(0).Enabled = true
	c.Channel(1).Enabled = true
	return c
}

func simRegistry() *registry.Registry {
	return registry.New(func(index int) (api.Device, error) {
		return &simtransport.SimDevice{}, nil
	})
}

func TestRunStopsOnCallbackRequest(t *testing.T) {
	var calls int
	cb := func(scan []uint16) int {
		calls++
		if calls >= 5 {
			return -1
		}
		return 0
	}

	s, err := New(
		WithRegistry(simRegistry()),
		WithStreamConfig(testStreamConfig()),
		WithScanCount(256),
		WithCountsCallback(cb),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, s.Run(ctx))
	require.GreaterOrEqual(t, calls, 5)
}

func TestRunRejectsMissingCallback(t *testing.T) {
	s, err := New(
		WithRegistry(simRegistry()),
		WithStreamConfig(testStreamConfig()),
	)
	require.NoError(t, err)

	err = s.Run(context.Background())
	require.Error(t, err)
}

func TestRunRejectsMissingRegistry(t *testing.T) {
	s, err := New(
		WithStreamConfig(testStreamConfig()),
		WithCountsCallback(func(scan []uint16) int { return -1 }),
	)
	require.NoError(t, err)

	err = s.Run(context.Background())
	require.Error(t, err)
}

func TestRunExposesProducedSeq(t *testing.T) {
	s := &Session{ScanCount: 256}
	require.Equal(t, uint32(0), s.ProducedSeq())

	var (
		calls int
		last  uint32
	)
	s.Registry = simRegistry()
	s.Config = testStreamConfig()
	s.CountsCb = func(scan []uint16) int {
		calls++
		last = s.ProducedSeq()
		if calls >= 5 {
			return -1
		}
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, s.Run(ctx))
	require.Greater(t, last, uint32(0))
	require.Equal(t, uint32(0), s.ProducedSeq())
}

func TestWithSelectorNarrowsAndPicksFirst(t *testing.T) {
	devs := []api.DeviceInfo{
		{Index: 0, SerialNo: "aaa", NumDIOPins: 4},
		{Index: 1, SerialNo: "bbb", NumDIOPins: 16},
		{Index: 2, SerialNo: "bbb", NumDIOPins: 8},
	}

	selector := WithSelector(WithSerials("bbb"), WithMinDIOPins(8))
	got := selector(devs)
	require.NotNil(t, got)
	require.Equal(t, 1, got.Index)

	none := WithSelector(WithSerials("nope"))(devs)
	require.Nil(t, none)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cb := func(scan []uint16) int { return 0 }

	s, err := New(
		WithRegistry(simRegistry()),
		WithStreamConfig(testStreamConfig()),
		WithScanCount(4096),
		WithCountsCallback(cb),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err = s.Run(ctx)
	require.NoError(t, err)
}
