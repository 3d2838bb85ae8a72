// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
adcdetect is a command-line utility that searches for available
devices and prints a list of them.

	Usage: adcdetect [FLAGS]

	adcdetect prints the list of available devices. For each device,
	its index, serial number, and digital I/O pin count are printed.

	Flags:
	--json
		Print the device list as JSON instead of CSV.
*/
package main
