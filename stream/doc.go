// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package stream implements the pure, allocation-conscious algorithms
that sit between a raw USB packet and a consumer-visible sample: clock
divisor search, oversample culling, counts-to-volts conversion, and the
ring buffer that stages converted samples for the engine package's
consumer API.

Nothing in this package performs I/O; it operates entirely on slices
and cursors handed to it by the engine package.
*/
package stream
