// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/config"
	"github.com/kjfield/aioadc/helpers/callback"
	"github.com/kjfield/aioadc/helpers/parse"
	"github.com/kjfield/aioadc/registry"
	"github.com/kjfield/aioadc/session"
	"github.com/kjfield/aioadc/transport/simtransport"
)

func adcsim() error {
	flags := pflag.NewFlagSet("adcsim", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: adcsim [FLAGS] <fileBytes>

adcsim runs the acquisition pipeline against a simulated device that
synthesizes a deterministic ramp of counts, and writes the result to a
file in the same flat binary format adcstream uses. It requires no
hardware and is useful for trying out a configuration or verifying the
output format end-to-end.

Arguments:
  fileBytes
	Maximum output file size in bytes. It can be specified with
	k, K, m, or M suffix to indicate the value is in KiB or MiB
	respectively (e.g. 10M).

Flags:
`,
		))
		flags.PrintDefaults()
	}

	outOpt := flags.String("out", "adcsim.out", "Write the raw sample stream to the specified path.")
	channelsOpt := flags.String("channels", "0-3", parse.ChannelsFlagHelp)
	gainOpt := flags.String("gain", "+/-10", parse.GainFlagHelp)
	outputOpt := flags.String("output", "counts", parse.OutputFlagHelp)
	rateOpt := flags.String("rate", "1M", parse.FsFlagHelp)
	scanCountOpt := flags.Int("scan-count", 4096, "Ring buffer capacity, in scans.")
	bigOpt := flags.Bool("big", false, "Write samples with big-endian byte order.")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	switch flags.NArg() {
	case 0:
		flags.Usage()
		return errors.New("missing file size limit")
	case 1:
		// good
	default:
		flags.Usage()
		return errors.New("too many arguments")
	}

	numBytes, err := parse.SizeInBytes(flags.Arg(0))
	if err != nil {
		return err
	}

	rate, err := parse.ParseFsFlag(*rateOpt)
	if err != nil {
		return err
	}

	chans, err := parse.ParseChannelsFlag(*channelsOpt)
	if err != nil {
		return err
	}

	gain, err := parse.ParseGainFlag(*gainOpt)
	if err != nil {
		return err
	}

	outputKind, err := parse.ParseOutputFlag(*outputOpt)
	if err != nil {
		return err
	}

	cfg := &config.StreamConfig{
		SampleRateHz: rate,
		Testing:      true,
		OutputKind:   outputKind,
	}
	maxChan := 0
	for _, ch := range chans {
		*cfg.Channel(ch) = config.Channel{Enabled: true, GainCode: gain}
		if ch+1 > maxChan {
			maxChan = ch + 1
		}
	}
	cfg.NumChannels = maxChan

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := charmlog.New(os.Stderr)

	reg := registry.New(func(int) (api.Device, error) {
		return &simtransport.SimDevice{}, nil
	})

	var order binary.ByteOrder = binary.LittleEndian
	if *bigOpt {
		order = binary.BigEndian
	}

	fout, err := os.Create(*outOpt)
	if err != nil {
		return err
	}
	defer fout.Close()
	out := bufio.NewWriterSize(fout, 1024*1024)
	defer out.Flush()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		if v, ok := <-sig; ok {
			logger.Printf("signal received: %v", v)
			cancel()
		}
	}()

	var totalBytes uint64

	baseOpts := []session.ConfigFn{
		session.WithRegistry(reg),
		session.WithStreamConfig(cfg),
		session.WithScanCount(*scanCountOpt),
		session.WithLogger(logger),
	}

	var sess *session.Session
	switch outputKind {
	case config.Volts:
		writeVolts := callback.NewVoltsWrite(order)
		cb := func(scan []float64) int {
			n, err := writeVolts(out, scan)
			totalBytes += uint64(n)
			switch {
			case err != nil:
				logger.Printf("write failed, stopping: %v", err)
				return -1
			case totalBytes > numBytes:
				return -1
			default:
				return 0
			}
		}
		s, err := session.New(append(baseOpts, session.WithVoltsCallback(cb))...)
		if err != nil {
			return err
		}
		sess = s
	default:
		writeCounts := callback.NewCountsWrite(order)
		cb := func(scan []uint16) int {
			n, err := writeCounts(out, scan)
			totalBytes += uint64(n)
			switch {
			case err != nil:
				logger.Printf("write failed, stopping: %v", err)
				return -1
			case totalBytes > numBytes:
				return -1
			default:
				return 0
			}
		}
		s, err := session.New(append(baseOpts, session.WithCountsCallback(cb))...)
		if err != nil {
			return err
		}
		sess = s
	}

	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Printf("clean exit; wrote %d bytes", totalBytes)
	return nil
}

func main() {
	if err := adcsim(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
