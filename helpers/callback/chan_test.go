// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import (
	"strings"
	"testing"
)

func TestCountsChan(t *testing.T) {
	t.Parallel()

	const numChannels = 2
	scan := make([]uint16, numChannels)

	sc := NewCountsChan(1, nil)

	select {
	case <-sc.C:
		t.Fatal("unexpected message available on chan")
	default:
		// good
	}

	sc.Callback(scan)
	select {
	case msg, ok := <-sc.C:
		if !ok {
			t.Fatal("counts message channel not ok")
		}
		if len(msg.Scan) != numChannels {
			t.Fatalf("msg payload has wrong length: got %d, want %d", len(msg.Scan), numChannels)
		}
	default:
		t.Fatal("no message available on chan")
	}

	sc.Callback(scan)
	sc.Callback(scan)
	select {
	case _, ok := <-sc.C:
		if !ok {
			t.Fatal("counts message channel not ok")
		}
	default:
		t.Fatal("no message available on chan")
	}
	select {
	case _, ok := <-sc.C:
		if ok {
			t.Fatal("unexpected message on chan")
		}
	default:
		// good, the second Callback payload should have been dropped
	}

	if err := sc.Close(); err != nil {
		t.Fatalf("unexpected Close failure: %v", err)
	}

	if res := sc.Callback(scan); res >= 0 {
		t.Fatalf("expected negative result after Close, got %d", res)
	}
	select {
	case _, ok := <-sc.C:
		if ok {
			t.Fatal("counts message channel ok after close")
		}
	default:
		t.Fatal("chan not closed")
	}

	err := sc.Close()
	if err == nil {
		t.Fatal("unexpected double Close success")
	}
	if !strings.Contains(err.Error(), "already closed") {
		t.Fatalf("wrong error message: got '%s', want 'already closed'", err.Error())
	}
}

func TestCountsChanReportsDrops(t *testing.T) {
	t.Parallel()

	scan := make([]uint16, 2)
	var seq uint32
	sc := NewCountsChan(4, func() uint32 { return seq })

	seq = 1
	sc.Callback(scan)
	msg := <-sc.C
	if msg.Drops != 0 {
		t.Fatalf("unexpected drops on first observation: %d", msg.Drops)
	}

	seq = 5
	sc.Callback(scan)
	msg = <-sc.C
	if msg.Drops != 3 {
		t.Fatalf("wrong drop count: got %d, want 3", msg.Drops)
	}
}

func BenchmarkCountsChan(b *testing.B) {
	scan := make([]uint16, 2)
	sc := NewCountsChan(uint(b.N+1), nil)

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		sc.Callback(scan)
	}
}
