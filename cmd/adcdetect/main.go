// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/transport/libusbtransport"
)

func adcdetect() error {
	flags := pflag.NewFlagSet("adcdetect", pflag.ExitOnError)
	asJSON := flags.Bool("json", false, "Print the device list as JSON instead of CSV.")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: adcdetect [FLAGS]

adcdetect prints the list of available devices. For each device, its
index, serial number, and digital I/O pin count are printed.

Flags:
`,
		))
		flags.PrintDefaults()
	}

	// Using ExitOnError
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "too many arguments provided")
		flags.Usage()
		os.Exit(1)
	}

	devs, err := libusbtransport.Enumerate(api.VendorID, api.ProductDIOPins)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(devs)
	}

	for _, dev := range devs {
		fmt.Printf("%d,%s,%d\n", dev.Index, dev.SerialNo, dev.NumDIOPins)
	}
	return nil
}

func main() {
	if err := adcdetect(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
