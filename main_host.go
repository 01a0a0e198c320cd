package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"graphvis/app"
	"graphvis/hal"
	"graphvis/internal/buildinfo"
	"graphvis/internal/logger"
	"graphvis/plot"
	"graphvis/web"
)

func main() {
	var cfg hal.HeadlessConfig
	var (
		expression = flag.String("expr", plot.DefaultExpression, "Initial expression in x.")
		webAddr    = flag.String("web", "", "Serve the browser UI on this address (e.g. :8080) instead of opening a window.")
		logLevel   = flag.String("log-level", "info", "debug|info|warn|error.")
		zoom       = flag.Int("zoom", 1, "Window size multiplier.")
		version    = flag.Bool("version", false, "Print build info and exit.")
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(&logger.WriterSink{W: os.Stdout}, level, "")

	newApp := func(h hal.HAL) func() error {
		return app.New(h, app.Config{Expression: *expression, Logger: log.WithPrefix("app")})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *webAddr != "":
		err = web.New(web.Config{Addr: *webAddr, Logger: log.WithPrefix("web")}).ListenAndServe(ctx)
	case cfg.Enabled:
		cfg.Width, cfg.Height = hal.DefaultWidth, hal.DefaultHeight
		err = hal.RunHeadless(ctx, newApp, cfg)
	default:
		err = hal.RunWindow(newApp, hal.WindowConfig{
			Width:  hal.DefaultWidth,
			Height: hal.DefaultHeight,
			Zoom:   *zoom,
		})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
