// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "github.com/kjfield/aioadc/api"

// DevSelectFn is a function that selects a single device out of a list
// of enumerated devices, or returns nil if none are suitable. It is
// not meant to be implemented directly; it is built internally by
// WithSelector from a list of DevFilterFn filters.
type DevSelectFn func(devs []api.DeviceInfo) *api.DeviceInfo

// DevFilterFn is a function that narrows a list of enumerated devices
// down to a subset, or returns nil/empty if none are suitable.
// WithSelector composes a list of these into a DevSelectFn that picks
// the first device remaining after every filter has run.
type DevFilterFn func(devs []api.DeviceInfo) []api.DeviceInfo

// WithSelector composes filters into a DevSelectFn that narrows devs
// through each filter in turn, in order, and returns the first device
// remaining afterward, or nil if none survive.
func WithSelector(filters ...DevFilterFn) DevSelectFn {
	return func(devs []api.DeviceInfo) *api.DeviceInfo {
		for _, filter := range filters {
			devs = filter(devs)
		}
		if len(devs) == 0 {
			return nil
		}
		return &devs[0]
	}
}

// WithNoopDevFilter creates a filter function that accepts every
// device. It can be used as a placeholder for another filter.
func WithNoopDevFilter() DevFilterFn {
	return func(devs []api.DeviceInfo) []api.DeviceInfo {
		return devs
	}
}

// WithSerials creates a device filter function that keeps only devices
// whose serial number matches one of vals.
func WithSerials(vals ...string) DevFilterFn {
	return func(devs []api.DeviceInfo) []api.DeviceInfo {
		var res []api.DeviceInfo
		for _, dev := range devs {
			for _, val := range vals {
				if dev.SerialNo == val {
					res = append(res, dev)
				}
			}
		}
		return res
	}
}

// WithMinDIOPins creates a device filter function that keeps only
// devices reporting at least n digital I/O pins.
func WithMinDIOPins(n int) DevFilterFn {
	return func(devs []api.DeviceInfo) []api.DeviceInfo {
		var res []api.DeviceInfo
		for _, dev := range devs {
			if dev.NumDIOPins >= n {
				res = append(res, dev)
			}
		}
		return res
	}
}
