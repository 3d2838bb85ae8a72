// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package engine owns the continuous-acquisition lifecycle: the
NotStarted/Running/Terminated/Joined state machine, the device
bring-up and wind-down control-transfer sequences, and the producer
goroutine that pulls bulk packets, culls and converts them, and stages
them in a stream.RingBuffer for a consumer to drain with Read or
PopScans.
*/
package engine
