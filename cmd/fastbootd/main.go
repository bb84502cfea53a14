// Command fastbootd loads a device configuration file, constructs the
// configured transport, and runs one Fastboot session to completion.
//
// The configuration loader accepts only "usb" or "spis" as the transport
// selector. Both are backed by board-specific hook functions that board
// bring-up code must register with usb.RegisterHooks/spis.RegisterHooks
// before this binary's transport.New call runs. This binary registers
// neither: the virtual pipe it imports is registered as "virtual", a name
// the loader does not accept, so as shipped transport.New fails for every
// configuration fastbootd can load. A real device build embeds this
// package directly and performs the hook registration itself.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/keembay/fastboot/pkg/config"
	"github.com/keembay/fastboot/pkg/fastboot"
	"github.com/keembay/fastboot/pkg/transport"

	_ "github.com/keembay/fastboot/pkg/transport/virtual"
)

func main() {
	configPath := flag.String("c", "", "device configuration file (INI)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *configPath == "" {
		logger.Error("missing required flag", "flag", "-c")
		os.Exit(2)
	}

	dev, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pipe, err := transport.New(string(dev.Transport), dev.Channel)
	if err != nil {
		logger.Error("failed to construct transport", "transport", dev.Transport, "error", err)
		os.Exit(1)
	}

	sess, err := fastboot.New(fastboot.Configuration{
		Transport:       transport.Kind(dev.Transport),
		Pipe:            pipe,
		Product:         dev.Product,
		SerialNumber:    dev.SerialNumber,
		StageBuffer:     make([]byte, dev.HardCapBytes),
		MaxDownloadSize: dev.MaxDownloadSize,
		BootStage:       fastboot.BootStage(dev.BootStage),
		Debug:           dev.Debug,
		Secure:          dev.Secure,
		Recovery:        dev.Recovery,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("failed to construct session", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := sess.Run(ctx); err != nil {
		logger.Error("session exited with error", "error", err)
		os.Exit(1)
	}
}
