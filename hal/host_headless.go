//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Options
	Hz    int
	Ticks uint64
}

// RunHeadless drives the app from a ticker without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (App, error), cfg HeadlessConfig) error {
	return runHeadless(ctx, New(cfg.Options), newApp, cfg)
}

func runHeadless(ctx context.Context, h HAL, newApp func(HAL) (App, error), cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := app.Step(); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
