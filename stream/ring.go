// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"sync"

	"github.com/kjfield/aioadc/api"
)

// WriteMode selects the overflow policy for RingBuffer.Write.
type WriteMode int

const (
	// AllOrNone fails the write with api.NotEnoughMemory rather than
	// write a partial element count.
	AllOrNone WriteMode = iota
	// Normal writes as many elements as currently fit, silently
	// dropping the rest.
	Normal
	// Override always writes the full count, advancing the read
	// position past any data it overwrites. The producer always wins.
	Override
)

// Element is anything a RingBuffer can store: a raw 16-bit count or a
// converted voltage. The ring buffer is generic over it so the same
// implementation backs both the Counts and Volts output kinds.
type Element interface {
	~uint16 | ~float64
}

// RingBuffer is a bounded single-producer/single-consumer circular
// buffer of fixed-size elements, grouped in scans of NumChannels
// elements each. One slot is always left unused so that write_pos ==
// read_pos is unambiguously "empty"; full occupancy is therefore
// Size-1.
//
// The producer is the sole caller of Write; the consumer is the sole
// caller of Read. Both may call the read-only accessors concurrently;
// the mutex serializes pointer updates and the memcpy-equivalent slice
// copies against each other.
type RingBuffer[T Element] struct {
	mu          sync.Mutex
	buf         []T
	numChannels int
	readPos     int
	writePos    int
	extra       int
}

// NewRingBuffer allocates a RingBuffer holding size elements, grouped
// in scans of numChannels elements. size includes the one reserved
// slot, so a size of scans*numChannels+1 (what StreamEngine passes)
// holds exactly that many complete scans.
func NewRingBuffer[T Element](size, numChannels int) *RingBuffer[T] {
	return &RingBuffer[T]{
		buf:         make([]T, size),
		numChannels: numChannels,
	}
}

// Size returns the fixed capacity of the buffer, including the one
// slot reserved to disambiguate empty from full.
func (r *RingBuffer[T]) Size() int {
	return len(r.buf)
}

func (r *RingBuffer[T]) occupancy() int {
	return mod(r.writePos-r.readPos, len(r.buf))
}

// AvailableRead returns the number of elements currently readable.
func (r *RingBuffer[T]) AvailableRead() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupancy()
}

// AvailableWrite returns the number of elements currently writable
// before the buffer is full.
func (r *RingBuffer[T]) AvailableWrite() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf) - 1 - r.occupancy()
}

// ScansAvailable returns the number of complete scans (groups of
// NumChannels elements) currently readable.
func (r *RingBuffer[T]) ScansAvailable() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupancy() / r.numChannels
}

// Extra returns the count of samples carried over from an in-progress
// scan at the last quiescent point between packets. It is always in
// [0, NumChannels).
func (r *RingBuffer[T]) Extra() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.extra
}

// SetExtra records the residual sample count for the in-progress scan.
// It is the producer's bookkeeping, not buffer content.
func (r *RingBuffer[T]) SetExtra(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extra = n
}

// Reset returns the buffer to its just-constructed state: empty, with
// no residual scan bookkeeping.
func (r *RingBuffer[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readPos = 0
	r.writePos = 0
	r.extra = 0
}

// Write copies up to count elements from src into the buffer according
// to mode, and returns the number of elements actually copied.
//
// AllOrNone returns api.NotEnoughMemory without copying anything if
// free space is less than count. Normal copies min(count,
// AvailableWrite) and returns 0 if none is available. Override always
// copies the full count, advancing readPos to make room when
// necessary, discarding the oldest unread data.
//
// It returns api.InvalidParameter if mode is not one of the three
// defined WriteMode values.
func (r *RingBuffer[T]) Write(src []T, count int, mode WriteMode) (int, error) {
	if count > len(src) {
		count = len(src)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	size := len(r.buf)
	free := size - 1 - r.occupancy()

	switch mode {
	case AllOrNone:
		if free < count {
			return 0, api.NotEnoughMemory
		}
	case Normal:
		if free <= 0 {
			return 0, nil
		}
		if count > free {
			count = free
		}
	case Override:
		if count > free {
			advance := count - free
			if advance > size {
				advance = size
			}
			r.readPos = mod(r.readPos+advance, size)
		}
	default:
		return 0, api.InvalidParameter
	}

	r.copyIn(src[:count])
	r.writePos = mod(r.writePos+count, size)
	return count, nil
}

// Read copies up to max elements into dst, advancing readPos, and
// returns the number of elements actually copied.
func (r *RingBuffer[T]) Read(dst []T, max int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.occupancy()
	if max < n {
		n = max
	}
	r.copyOut(dst, n)
	r.readPos = mod(r.readPos+n, len(r.buf))
	return n
}

// copyIn writes src starting at writePos, wrapping once if needed. The
// caller holds r.mu and has already verified capacity.
func (r *RingBuffer[T]) copyIn(src []T) {
	size := len(r.buf)
	first := size - r.writePos
	if first > len(src) {
		first = len(src)
	}
	copy(r.buf[r.writePos:], src[:first])
	if rem := len(src) - first; rem > 0 {
		copy(r.buf[:rem], src[first:])
	}
}

// copyOut reads n elements starting at readPos into dst, wrapping once
// if needed. The caller holds r.mu.
func (r *RingBuffer[T]) copyOut(dst []T, n int) {
	size := len(r.buf)
	first := size - r.readPos
	if first > n {
		first = n
	}
	copy(dst, r.buf[r.readPos:r.readPos+first])
	if rem := n - first; rem > 0 {
		copy(dst[first:], r.buf[:rem])
	}
}

func mod(x, m int) int {
	x %= m
	if x < 0 {
		x += m
	}
	return x
}
