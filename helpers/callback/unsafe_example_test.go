// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"

	"github.com/kjfield/aioadc/helpers/callback"
)

func ExampleFastWrite() {
	x := []uint16{1, 2, 3, 4, 5, 6, 7, 8}
	fmt.Printf("Original Scan: %v\n", x)

	// Destination io.Writer
	buf := bytes.NewBuffer(nil)

	// FastWrite doesn't need or use a buffer, so it doesn't need to
	// be created like NewCountsWrite. It can be called directly.
	n, err := callback.FastWrite(buf, x)
	fmt.Printf("Num Bytes Written: %d\n", n)
	if err != nil {
		log.Fatal(err)
	}

	// Since FastWrite uses the native byte order, we need to determine
	// which order to use when doing readback with the encoding/binary
	// package.
	b := buf.Bytes()
	var order binary.ByteOrder = binary.LittleEndian
	// We know the first count is 0x0001. In big-endian, the first byte
	// will be most-significant and, therefore, zero.
	if b[0] == 0 {
		order = binary.BigEndian
	}

	// Create a buffer big enough to read back all of the written counts.
	res := make([]uint16, buf.Len()/2)

	// Now use buf as an io.Reader for readback verification.
	if err := binary.Read(buf, order, &res); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Written Scan: %v\n", res)

	// Output:
	// Original Scan: [1 2 3 4 5 6 7 8]
	// Num Bytes Written: 16
	// Written Scan: [1 2 3 4 5 6 7 8]
}
