// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"testing"
	"time"

	"github.com/kjfield/aioadc/config"
	"github.com/kjfield/aioadc/registry"
	"github.com/kjfield/aioadc/transport/simtransport"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.StreamConfig {
	c := &config.StreamConfig{
		DeviceIndex:    0,
		NumChannels:    2,
		NumOversamples: 0,
		Testing:        true,
		OutputKind:     config.Counts,
		SampleRateHz:   1000,
		TimeoutMS:      3000,
	}
	c.Channel(0).Enabled = true
	c.Channel(1).Enabled = true
	return c
}

func newTestEntry() *registry.Entry {
	return &registry.Entry{Index: 0, Transport: &simtransport.SimDevice{}}
}

func TestEngineLifecycle(t *testing.T) {
	cfg := testConfig()
	entry := newTestEntry()
	entry.Config = cfg

	e, err := New(entry, cfg, 64, nil)
	require.NoError(t, err)
	require.Equal(t, NotStarted, e.Status())

	require.NoError(t, e.Start(context.Background()))
	require.Equal(t, Running, e.Status())

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, e.Stop())
	require.NoError(t, e.Join())
	require.Equal(t, Joined, e.Status())

	require.NoError(t, e.Destroy())
}

func TestEngineReadReceivesSamples(t *testing.T) {
	cfg := testConfig()
	entry := newTestEntry()
	entry.Config = cfg

	e, err := New(entry, cfg, 256, nil)
	require.NoError(t, err)
	require.NoError(t, e.Start(context.Background()))

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, e.Stop())
	require.NoError(t, e.Join())

	dst := make([]uint16, 16)
	n, err := e.Read(dst)
	require.NoError(t, err)
	require.Greater(t, n, 0)
}

func TestEngineDoubleStartRejected(t *testing.T) {
	cfg := testConfig()
	entry := newTestEntry()
	entry.Config = cfg

	e, err := New(entry, cfg, 64, nil)
	require.NoError(t, err)
	require.NoError(t, e.Start(context.Background()))
	require.Error(t, e.Start(context.Background()))

	require.NoError(t, e.Stop())
	require.NoError(t, e.Join())
}
