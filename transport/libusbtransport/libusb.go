// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package libusbtransport

import (
	"context"
	"fmt"
	"time"

	"github.com/gotmc/libusb"

	"github.com/kjfield/aioadc/api"
)

// LibusbDevice implements api.Device over a real USB connection using
// github.com/gotmc/libusb. Construct one with OpenLibusb.
type LibusbDevice struct {
	ctx    *libusb.Context
	handle *libusb.DeviceHandle
}

// OpenLibusb opens the first device matching vendorID/productID on the
// default libusb context. The caller owns the returned LibusbDevice and
// must Close it.
func OpenLibusb(vendorID, productID uint16) (*LibusbDevice, error) {
	ctx, err := libusb.NewContext()
	if err != nil {
		return nil, fmt.Errorf("transport: opening libusb context: %w", err)
	}
	_, handle, err := ctx.OpenDeviceWithVendorProduct(vendorID, productID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("transport: opening device %04x:%04x: %w", vendorID, productID, err)
	}
	return &LibusbDevice{ctx: ctx, handle: handle}, nil
}

// OpenLibusbAt opens the device at the given positional index among
// every attached device matching vendorID and one of the keys of
// productIDs, in the same order Enumerate would report them. It is the
// OpenFn a registry.Registry uses in production.
func OpenLibusbAt(vendorID uint16, productIDs map[uint16]int) func(index int) (api.Device, error) {
	return func(index int) (api.Device, error) {
		ctx, err := libusb.NewContext()
		if err != nil {
			return nil, fmt.Errorf("transport: opening libusb context: %w", err)
		}

		devs, err := ctx.DeviceList()
		if err != nil {
			ctx.Close()
			return nil, fmt.Errorf("transport: listing devices: %w", err)
		}

		pos := 0
		for _, dev := range devs {
			desc, err := dev.GetDeviceDescriptor()
			if err != nil || desc.VendorID != vendorID {
				continue
			}
			if _, ok := productIDs[desc.ProductID]; !ok {
				continue
			}
			if pos != index {
				pos++
				continue
			}
			handle, err := dev.Open()
			if err != nil {
				ctx.Close()
				return nil, fmt.Errorf("transport: opening device index %d: %w", index, err)
			}
			return &LibusbDevice{ctx: ctx, handle: handle}, nil
		}
		ctx.Close()
		return nil, fmt.Errorf("transport: no matching device at index %d", index)
	}
}

// Enumerate lists every attached device matching vendorID/productID,
// briefly opening each to read its serial number over a standard
// string descriptor request, then closing it again. The returned
// DeviceInfo.Index values are positional (0 for the first device
// found, and so on), matching what registry.OpenFn's index argument
// expects.
func Enumerate(vendorID uint16, productIDs map[uint16]int) ([]api.DeviceInfo, error) {
	ctx, err := libusb.NewContext()
	if err != nil {
		return nil, fmt.Errorf("transport: opening libusb context: %w", err)
	}
	defer ctx.Close()

	devs, err := ctx.DeviceList()
	if err != nil {
		return nil, fmt.Errorf("transport: listing devices: %w", err)
	}

	var infos []api.DeviceInfo
	for _, dev := range devs {
		desc, err := dev.GetDeviceDescriptor()
		if err != nil || desc.VendorID != vendorID {
			continue
		}
		pins, ok := productIDs[desc.ProductID]
		if !ok {
			continue
		}
		handle, err := dev.Open()
		if err != nil {
			continue
		}
		serial, _ := handle.GetStringDescriptorASCII(desc.SerialNumberIndex)
		handle.Close()
		infos = append(infos, api.DeviceInfo{
			Index:      len(infos),
			SerialNo:   serial,
			ProductID:  desc.ProductID,
			NumDIOPins: pins,
		})
	}
	return infos, nil
}

// BulkRead implements api.Device.
func (d *LibusbDevice) BulkRead(_ context.Context, endpoint uint8, buf []byte, timeout time.Duration) (int, error) {
	n, err := d.handle.BulkTransfer(endpoint, buf, len(buf), int(timeout/time.Millisecond))
	if err != nil {
		return n, &api.UsbTransferError{Code: libusbErrCode(err), Op: "bulk read"}
	}
	return n, nil
}

// ControlTransfer implements api.Device.
func (d *LibusbDevice) ControlTransfer(_ context.Context, req api.ControlRequest) (int, error) {
	reqType := libusb.BitmapRequestType(direction(req.Direction), libusb.Vendor, libusb.DeviceRecipient)
	n, err := d.handle.ControlTransfer(reqType, req.Request, req.Value, req.Index, req.Data, len(req.Data), int(api.BulkReadTimeoutMS))
	if err != nil {
		return n, &api.UsbTransferError{Code: libusbErrCode(err), Op: "control transfer"}
	}
	return n, nil
}

// Close implements api.Device.
func (d *LibusbDevice) Close() error {
	if d.handle != nil {
		d.handle.Close()
		d.handle = nil
	}
	if d.ctx != nil {
		err := d.ctx.Close()
		d.ctx = nil
		return err
	}
	return nil
}

func direction(dir api.RequestDirection) libusb.EndpointDirection {
	if dir == api.DeviceToHost {
		return libusb.DeviceToHost
	}
	return libusb.HostToDevice
}

// libusbErrCode extracts a stable numeric code from a libusb error for
// the UsbTransferError wrapper. libusb's own errors don't carry a
// numeric code through the Go binding, so this is a best-effort
// classification rather than the raw libusb_error enum.
func libusbErrCode(err error) int {
	if err == nil {
		return 0
	}
	return -1
}
