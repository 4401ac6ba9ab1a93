// Command blescan runs a single BLE discovery and prints every
// commissionable device it hears.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/bleradar/pkg/agent"
	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/config"
	"github.com/carverauto/bleradar/pkg/models"
)

type options struct {
	timeout  time.Duration
	adapter  string
	simFile  string
	jsonOut  bool
	useAsync bool
}

func main() {
	var opts options

	flag.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Scan duration")
	flag.StringVar(&opts.adapter, "adapter", "", "Adapter address, empty for the first adapter")
	flag.StringVar(&opts.simFile, "sim", "", "Replay a simulated radio scenario instead of scanning")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print one JSON object per device")
	flag.BoolVar(&opts.useAsync, "async", false, "Use the callback API instead of the iterator")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &opts, os.Stdout); err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	kind := config.EngineBlueZ
	if opts.simFile != "" {
		kind = config.EngineSimulated
	}

	engine, err := agent.NewEngine(kind, opts.simFile)
	if err != nil {
		return err
	}

	d := ble.NewDiscoverer(engine)
	sel := models.ParseAdapterSelector(opts.adapter)
	emit := printer(out, opts.jsonOut)

	if opts.useAsync {
		return runAsync(ctx, d, opts.timeout, sel, emit)
	}

	count := 0

	for device, err := range d.Discover(ctx, opts.timeout, sel) {
		if err != nil {
			return err
		}

		count++

		emit(device)
	}

	log.Printf("Scan complete, %d device(s) reported", count)

	return nil
}

func runAsync(
	ctx context.Context, d *ble.Discoverer, timeout time.Duration, sel models.AdapterSelector, emit func(models.DeviceInfo)) error {
	done := make(chan struct{})

	var scanErr error

	d.DiscoverAsync(ctx, timeout, ble.Handlers{
		OnDevice: func(address string, discriminator, vendor, product uint16) {
			emit(models.DeviceInfo{Address: address, Discriminator: discriminator, Vendor: vendor, Product: product})
		},
		OnError: func(err error) { scanErr = err },
		OnDone:  func() { close(done) },
	}, sel)

	<-done

	return scanErr
}

func printer(out io.Writer, asJSON bool) func(models.DeviceInfo) {
	if asJSON {
		enc := json.NewEncoder(out)

		return func(device models.DeviceInfo) {
			if err := enc.Encode(device); err != nil {
				log.Printf("Failed to encode device: %v", err)
			}
		}
	}

	return func(device models.DeviceInfo) {
		fmt.Fprintf(out, "%s discriminator=%d vendor=0x%04X product=0x%04X\n",
			device.Address, device.Discriminator, device.Vendor, device.Product)
	}
}
