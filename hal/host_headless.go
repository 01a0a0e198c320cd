package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	// Hz is the step rate, 60 when zero.
	Hz int
	// Ticks stops the run after that many steps; 0 runs until ctx is done.
	Ticks uint64
	// Snapshot, when set, is a PNG path that receives the last framebuffer contents.
	Snapshot string
}

// RunHeadless steps the app on a ticker without opening a window. It returns nil after
// cfg.Ticks steps and ctx.Err() on cancellation; the snapshot is written either way.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Width, cfg.Height, os.Stdout)
	step := newApp(h)

	err := runSteps(ctx, h, step, period, cfg.Ticks)
	if cfg.Snapshot != "" {
		if serr := writeSnapshot(h.fb, cfg.Snapshot); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func runSteps(ctx context.Context, h *hostHAL, step func() error, period time.Duration, limit uint64) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for n := uint64(0); limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		h.t.advance()
		if step == nil {
			continue
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshot(fb Framebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, RGBA(fb)); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	return f.Close()
}
