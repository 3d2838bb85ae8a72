// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package transport groups the two concrete implementations of
api.Device: transport/libusbtransport, a real USB transport built on
github.com/gotmc/libusb, and transport/simtransport, a simulated
transport that generates a deterministic ramp of counts without
touching actual hardware, used by this module's tests and by
cmd/adcsim. The transport is chosen by the registry's OpenFn; no
package reads a stream configuration's testing flag to pick it.

This package itself declares no types; it exists to document the split
between the two implementations.
*/
package transport
