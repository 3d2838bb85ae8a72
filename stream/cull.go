// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// CullAndAverage collapses each group of (oversample+1) consecutive
// counts in data into a single integer-mean count, writing the result
// back into data's own prefix, and returns the number of groups
// produced. If discardFirst is set, the first sample of each group is
// excluded from the mean (it exists only to let the converter settle
// after the channel mux switches).
//
// data is modified in place; the caller must not rely on anything past
// the returned length.
func CullAndAverage(data []uint16, oversample int, discardFirst bool) int {
	groupSize := oversample + 1
	if groupSize <= 0 {
		groupSize = 1
	}
	n := len(data) / groupSize
	for i := 0; i < n; i++ {
		group := data[i*groupSize : (i+1)*groupSize]
		start := 0
		if discardFirst && len(group) > 1 {
			start = 1
		}
		var sum uint32
		count := 0
		for _, v := range group[start:] {
			sum += uint32(v)
			count++
		}
		data[i] = uint16(sum / uint32(count))
	}
	return n
}
