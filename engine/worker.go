// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/config"
	"github.com/kjfield/aioadc/stream"
)

// voltsBufBytes and countsBufBytesPerChannel size the per-iteration
// bulk-read buffer to one multiple of the device's DMA page. Two
// distinct constants, not derived from each other, matching the two
// separate worker loops this is grounded on; preserved as-is rather
// than unified, per the open-question resolution in DESIGN.md.
const (
	voltsBufBytes             = 128 * 512
	countsBufBytesPerChannel  = 16 * 512
)

// run is the producer worker's loop body, started as a goroutine by
// Start. It exits (and runs wind-down) when the engine transitions out
// of Running, whether by Stop, a fatal USB failure, or a fixed-length
// counts capture completing.
func (e *StreamEngine) run(ctx context.Context) {
	defer close(e.done)

	bufBytes := voltsBufBytes
	if e.cfg.OutputKind == config.Counts {
		bufBytes = e.numChannels * countsBufBytesPerChannel
	}
	raw := make([]byte, bufBytes)
	counts := make([]uint16, bufBytes/2)
	// volts is sized with headroom for the channel-count residual an
	// in-progress scan may carry over from the previous packet.
	volts := make([]float64, bufBytes/2+e.numChannels)

	var usbFailCount int

	for {
		e.mu.Lock()
		status := e.status
		e.mu.Unlock()
		if status != Running {
			break
		}

		n, err := e.entry.Transport.BulkRead(ctx, api.BulkDataEndpoint, raw, api.BulkReadTimeoutMS*time.Millisecond)
		if n == 0 {
			if err != nil {
				usbFailCount++
				e.log.Printf("engine: bulk read failed (%d/%d): %v", usbFailCount, maxUsbFailures, err)
				if usbFailCount >= maxUsbFailures {
					e.finish(Terminated, err)
					break
				}
			}
			continue
		}
		usbFailCount = 0

		numSamples := n / 2
		for i := 0; i < numSamples; i++ {
			counts[i] = binary.LittleEndian.Uint16(raw[2*i:])
		}

		n2 := stream.CullAndAverage(counts[:numSamples], int(e.cfg.NumOversamples), e.cfg.DiscardFirstSample)
		culled := e.applyResidual(counts[:n2])
		n2 = len(culled)

		residual := n2 % e.numChannels
		body := culled[:n2-residual]

		var written int
		var writeErr error
		if e.cfg.OutputKind == config.Volts {
			cnt, next := stream.CountsToVolts(e.channelCursor, body, volts, 0, e.gains, e.numChannels)
			e.channelCursor = next
			written, writeErr = e.ringVolts.Write(volts[:cnt], cnt, stream.AllOrNone)
		} else {
			written, writeErr = e.ringCounts.Write(body, len(body), stream.AllOrNone)
			e.channelCursor = (e.channelCursor + len(body)) % e.numChannels
		}
		if writeErr != nil {
			e.log.Printf("engine: ring write dropped %d samples: %v", len(body), writeErr)
		}

		e.stashResidual(culled[n2-residual:])

		e.mu.Lock()
		e.producedSeq += uint32(len(body) / e.numChannels)
		e.mu.Unlock()

		if e.cfg.OutputKind == config.Counts {
			e.totalCopied += written
			if e.totalCopied >= e.ringCounts.Size()-e.numChannels {
				e.finish(Terminated, nil)
				break
			}
		}
	}

	if err := e.windDown(context.Background()); err != nil {
		e.log.Printf("engine: wind-down failed: %v", err)
	}
	e.finish(Terminated, e.ExitCode())
}

// applyResidual prepends the engine-owned spillover from the previous
// packet to in, the already-culled output of this packet's
// CullAndAverage call, returning a single contiguous slice of
// per-scan-aligned counts ready to split into a ring-write body and a
// new tail residual. The spillover is itself already one averaged
// count per leftover channel (stashResidual only ever stores a
// CullAndAverage result), so it must be joined in after culling, not
// before: culling the new packet's raw bytes together with an
// already-averaged residual would group unrelated raw oversample
// readings with finalized counts and shift every later group boundary
// by the residual's length. This replaces the original
// implementation's out-of-bounds memcpy past the caller's buffer (see
// DESIGN.md open question resolution 1): the spillover lives in
// engine-owned memory, never in the caller's.
func (e *StreamEngine) applyResidual(in []uint16) []uint16 {
	extra := e.spilloverLen
	if extra == 0 {
		return in
	}
	out := make([]uint16, extra+len(in))
	copy(out, e.spillover[:extra])
	copy(out[extra:], in)
	return out
}

// stashResidual records r as the engine's spillover for the next
// packet and updates the ring's Extra bookkeeping to match.
func (e *StreamEngine) stashResidual(r []uint16) {
	copy(e.spillover, r)
	e.spilloverLen = len(r)
	if e.ringVolts != nil {
		e.ringVolts.SetExtra(len(r))
	} else {
		e.ringCounts.SetExtra(len(r))
	}
}

// finish records the worker's terminal status and exit code. Safe to
// call multiple times: each call sets the status unless the engine is
// already Joined, and the first non-nil exit code recorded is kept.
func (e *StreamEngine) finish(status Status, exitCode error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == Joined {
		return
	}
	e.status = status
	if e.exitCode == nil {
		e.exitCode = exitCode
	}
}
