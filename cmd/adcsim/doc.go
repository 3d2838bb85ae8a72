// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
adcsim runs the full acquisition pipeline against transport/simtransport
instead of a real device, for exercising or demonstrating adcstream's
configuration and output format without hardware attached.

	Usage: adcsim [FLAGS] <fileBytes>
*/
package main
