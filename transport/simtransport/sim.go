// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simtransport

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/kjfield/aioadc/api"
)

// SimDevice implements api.Device without touching real hardware. Every
// BulkRead fills the caller's buffer with a deterministic ramp of
// little-endian uint16 counts that increments once per sample across
// calls, so tests and the stream configuration's testing flag get
// reproducible, easily-asserted-on data. Control transfers always
// succeed and report the requested length.
//
// A zero value is ready to use.
type SimDevice struct {
	next uint16
}

// BulkRead implements api.Device.
func (d *SimDevice) BulkRead(_ context.Context, _ uint8, buf []byte, _ time.Duration) (int, error) {
	n := len(buf) &^ 1 // round down to an even number of bytes
	for i := 0; i < n; i += 2 {
		binary.LittleEndian.PutUint16(buf[i:], d.next)
		d.next++
	}
	return n, nil
}

// ControlTransfer implements api.Device.
func (d *SimDevice) ControlTransfer(_ context.Context, req api.ControlRequest) (int, error) {
	return len(req.Data), nil
}

// Close implements api.Device.
func (d *SimDevice) Close() error {
	return nil
}
