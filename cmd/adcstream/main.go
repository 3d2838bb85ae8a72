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
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/config"
	"github.com/kjfield/aioadc/helpers/callback"
	"github.com/kjfield/aioadc/helpers/parse"
	"github.com/kjfield/aioadc/registry"
	"github.com/kjfield/aioadc/session"
	"github.com/kjfield/aioadc/transport/libusbtransport"
)

func adcstream() error {
	flags := pflag.NewFlagSet("adcstream", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: adcstream [FLAGS] <fileBytes>

adcstream connects to an available device, configures it, and writes
the acquired scans to a file as a flat binary stream of fixed-width
scalars, one scan's worth of channel values back-to-back per scan.

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

	configOpt := flags.String("config", "", "Path to a JSON stream configuration file. Overridden by any of --rate, --channels, or --output given on the command line; --gain applies to the channels given with --channels.")
	outOpt := flags.String("out", "adc.out", "Write the raw sample stream to the specified path.")
	rateOpt := flags.String("rate", "", parse.FsFlagHelp)
	channelsOpt := flags.String("channels", "", parse.ChannelsFlagHelp)
	gainOpt := flags.String("gain", "+/-10", parse.GainFlagHelp)
	outputOpt := flags.String("output", "counts", parse.OutputFlagHelp)
	serialsOpt := flags.String("serials", "any", parse.SerialsFlagHelp)
	minDIOOpt := flags.Int("min-dio", 0, "Only select devices reporting at least this many digital I/O pins.")
	scanCountOpt := flags.Int("scan-count", 4096, "Ring buffer capacity, in scans.")
	warmOpt := flags.Duration("warm", 2*time.Second, "Discard scans for this long after the engine starts, to let the input settle.")
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

	cfg := &config.StreamConfig{}
	if *configOpt != "" {
		f, err := os.Open(*configOpt)
		if err != nil {
			return err
		}
		cfg, err = config.Load(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	if *rateOpt != "" {
		rate, err := parse.ParseFsFlag(*rateOpt)
		if err != nil {
			return err
		}
		cfg.SampleRateHz = rate
	}

	if *channelsOpt != "" {
		chans, err := parse.ParseChannelsFlag(*channelsOpt)
		if err != nil {
			return err
		}
		gain, err := parse.ParseGainFlag(*gainOpt)
		if err != nil {
			return err
		}
		cfg.Channels = nil
		maxChan := 0
		for _, ch := range chans {
			*cfg.Channel(ch) = config.Channel{Enabled: true, GainCode: gain}
			if ch+1 > maxChan {
				maxChan = ch + 1
			}
		}
		cfg.NumChannels = maxChan
	}

	if *configOpt == "" || flags.Changed("output") {
		kind, err := parse.ParseOutputFlag(*outputOpt)
		if err != nil {
			return err
		}
		cfg.OutputKind = kind
	}
	outputKind := cfg.OutputKind

	if err := cfg.Validate(); err != nil {
		return err
	}

	serials, err := parse.ParseSerialsFlag(*serialsOpt)
	if err != nil {
		return err
	}

	logger := charmlog.New(os.Stderr)

	devs, err := libusbtransport.Enumerate(api.VendorID, api.ProductDIOPins)
	if err != nil {
		return fmt.Errorf("enumerating devices: %w", err)
	}

	var serialsFilter session.DevFilterFn = session.WithNoopDevFilter()
	if serials != nil {
		serialsFilter = session.WithSerials(serials...)
	}
	selector := session.WithSelector(serialsFilter, session.WithMinDIOPins(*minDIOOpt))
	dev := selector(devs)
	if dev == nil {
		return errors.New("adcstream: no matching device found")
	}
	logger.Printf("selected device index=%d serial=%s", dev.Index, dev.SerialNo)

	reg := registry.New(libusbtransport.OpenLibusbAt(api.VendorID, api.ProductDIOPins))

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
	start := time.Now()

	var sess *session.Session
	baseOpts := []session.ConfigFn{
		session.WithRegistry(reg),
		session.WithDeviceIndex(dev.Index),
		session.WithStreamConfig(cfg),
		session.WithScanCount(*scanCountOpt),
		session.WithLogger(logger),
	}

	switch outputKind {
	case config.Volts:
		writeVolts := callback.NewVoltsWrite(order)
		detectDrops := callback.NewDropDetect()
		cb := func(scan []float64) int {
			if time.Since(start) < *warmOpt {
				return 0
			}
			if d := detectDrops(sess.ProducedSeq()); d > 1 {
				logger.Printf("dropped %d scans at byte offset %d", d-1, totalBytes)
			}
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
		detectDrops := callback.NewDropDetect()
		cb := func(scan []uint16) int {
			if time.Since(start) < *warmOpt {
				return 0
			}
			if d := detectDrops(sess.ProducedSeq()); d > 1 {
				logger.Printf("dropped %d scans at byte offset %d", d-1, totalBytes)
			}
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
	if err := adcstream(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
