// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import "fmt"

// ErrT is the error taxonomy used throughout this module. It is modeled
// as a small sentinel type, the way the C API's own error enum is wrapped
// one-to-one in the teacher's api.ErrT, so that callers can compare
// against the package constants with ==  or errors.Is.
type ErrT int32

const (
	// Success is not normally returned as an error; it exists so the
	// zero value of ErrT is meaningful.
	Success ErrT = iota
	// InvalidParameter covers a bad target Hz, an unknown RingBuffer
	// write mode, or a channel range outside [0,N).
	InvalidParameter
	// NotEnoughMemory covers an ALL_OR_NONE write without enough free
	// space or a read into an undersized destination.
	NotEnoughMemory
	// DeviceNotFound covers a registry lookup for an index with no
	// entry.
	DeviceNotFound
	// InvalidUsbDevice covers a registry entry whose transport has
	// already been released or never opened.
	InvalidUsbDevice
	// InvalidBuffer covers a nil or zero-value engine/buffer passed to
	// a public API.
	InvalidBuffer
)

func (e ErrT) Error() string {
	switch e {
	case Success:
		return "success"
	case InvalidParameter:
		return "invalid parameter"
	case NotEnoughMemory:
		return "not enough memory"
	case DeviceNotFound:
		return "device not found"
	case InvalidUsbDevice:
		return "invalid usb device"
	case InvalidBuffer:
		return "invalid buffer"
	default:
		return fmt.Sprintf("ErrT(%d)", int32(e))
	}
}

// UsbTransferError wraps a USB-layer error code mapped into this
// package's taxonomy. It is recoverable up to a bounded number of
// consecutive occurrences (see engine.maxUsbFailures); once that many
// consecutive occurrences are reached it is treated as fatal.
type UsbTransferError struct {
	Code int
	Op   string
}

func (e *UsbTransferError) Error() string {
	return fmt.Sprintf("usb transfer error during %s: code %d", e.Op, e.Code)
}
