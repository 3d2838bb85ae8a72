// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package callback provides types and functions for handling scans
delivered by a session's sample callback (see the session package):
asynchronous dispatch off the callback goroutine via CountsChan and
VoltsChan, dropped-scan detection, and allocation-free binary encoding
for writing scans to a file or socket.

	enc := NewCountsWrite(binary.LittleEndian)
	...
	n, err := enc(out, scan)

The functions returned by NewCountsWrite and NewVoltsWrite encode into
a persistent internal buffer that is reused on every call; they return
only the byte count and error from the underlying io.Writer.
*/
package callback
