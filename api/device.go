// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"context"
	"time"
)

// Device is the USB transport abstraction used by this module. It is
// implemented by a real libusb-backed transport (see the transport
// package) and, for testing, by a deterministic fake that bypasses
// actual USB I/O. Callers are expected to serialize their own access;
// a Device's synchronous methods are assumed internally serialized per
// device, the same assumption the original continuous-acquisition
// buffer makes about its USBDevice collaborator.
type Device interface {
	// BulkRead issues a bulk IN transfer on the given endpoint with the
	// given timeout. It returns the number of bytes actually read.
	// A zero count with a non-nil error indicates a transient or fatal
	// transfer failure; the caller is responsible for counting
	// consecutive failures.
	BulkRead(ctx context.Context, endpoint uint8, buf []byte, timeout time.Duration) (int, error)

	// ControlTransfer issues a single vendor control transfer as
	// described by req and returns the number of bytes transferred.
	ControlTransfer(ctx context.Context, req ControlRequest) (int, error)

	// Close releases any transport-level resources. It is idempotent.
	Close() error
}

// DeviceInfo is the static identity of a device as reported by
// enumeration, independent of any open Device handle.
type DeviceInfo struct {
	Index      int
	SerialNo   string
	ProductID  uint16
	NumDIOPins int
}
