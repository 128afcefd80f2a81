package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"wheelmon/app"
	"wheelmon/hal"
	"wheelmon/internal/config"
	"wheelmon/monitor"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wheelmon",
		Short: "Live strip chart of scroll wheel deltas",
		Long: `wheelmon draws one bar per wheel event, growing up for positive deltas
and down for negative ones, and starts over once the bars reach the chart
width.

In manual mode the window ignores the wheel and bars come only from --stdin
or --replay input, one number ("<dy>") or pair ("<dx> <dy>") per line.

Settings are read from $XDG_CONFIG_HOME/wheelmon/config.toml (or --config);
flags given on the command line take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMonitor,
	}

	f := cmd.Flags()
	f.String("config", "", "path to a config file (default $XDG_CONFIG_HOME/wheelmon/config.toml)")
	f.Bool("headless", false, "run without a window")
	f.Int("hz", 60, "tick rate in headless mode")
	f.Uint64("ticks", 0, "stop after N ticks in headless mode (0 = run until interrupted)")

	f.String("variant", app.VariantBuffer, "chart variant: buffer or cursor")
	f.Bool("manual", false, "ignore the wheel; take deltas from --stdin or --replay")
	f.Bool("scale", false, "shrink bars to fit the chart height")
	f.String("axis", string(monitor.AxisY), "wheel axis to record: x or y")
	f.Int("width", monitor.DefaultWidth, "chart width in pixels")
	f.Int("height", monitor.DefaultHeight, "chart height in pixels")
	f.String("color", monitor.DefaultBarColor, "bar color")
	f.String("background", monitor.DefaultBackgroundColor, "chart background color")
	f.Int("z-index", monitor.DefaultZIndex, "chart stacking order")
	f.String("class-name", "", "drop the default placement and border")

	f.Bool("hud", true, "draw a status line under the chart")
	f.Bool("stdin", false, "read deltas from standard input")
	f.String("replay", "", "feed wheel events from a file, one per tick")
	f.String("record", "", "append wheel events to a file")
	f.String("snapshot", "", "write the final frame to a PNG file")
	f.Float64("wheel-scale", 100, "pixels per wheel line reported by the window backend")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

//nolint:revive // flag plumbing
func runMonitor(cmd *cobra.Command, _ []string) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	appCfg, err := buildAppConfig(cmd, cfg)
	if err != nil {
		return err
	}

	w, h := app.Layout(appCfg)
	opts := hal.Options{Width: w, Height: h, WheelScale: 100}
	if cfg.Host.WheelScale != nil {
		opts.WheelScale = *cfg.Host.WheelScale
	}
	if cmd.Flags().Changed("wheel-scale") {
		opts.WheelScale, _ = cmd.Flags().GetFloat64("wheel-scale") //nolint:errcheck // flag name is hardcoded
	}

	newApp := func(h hal.HAL) (hal.App, error) {
		return app.New(h, appCfg)
	}

	headless, _ := cmd.Flags().GetBool("headless") //nolint:errcheck // flag name is hardcoded
	if !headless {
		return hal.RunWindow(newApp, opts)
	}

	hc := hal.HeadlessConfig{Options: opts}
	hc.Hz, _ = cmd.Flags().GetInt("hz") //nolint:errcheck // flag name is hardcoded
	if cfg.Host.Hz != nil && !cmd.Flags().Changed("hz") {
		hc.Hz = *cfg.Host.Hz
	}
	hc.Ticks, _ = cmd.Flags().GetUint64("ticks") //nolint:errcheck // flag name is hardcoded

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := hal.RunHeadless(ctx, newApp, hc); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config") //nolint:errcheck // flag name is hardcoded
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// buildAppConfig layers defaults, the config file and explicitly set flags.
func buildAppConfig(cmd *cobra.Command, cfg config.Config) (app.Config, error) {
	var s monitor.Settings
	if err := cfg.Monitor.Apply(&s); err != nil {
		return app.Config{}, err
	}
	ac := app.Config{Variant: app.VariantBuffer, HUD: true}
	if cfg.Monitor.Variant != nil {
		ac.Variant = *cfg.Monitor.Variant
	}
	if cfg.Host.HUD != nil {
		ac.HUD = *cfg.Host.HUD
	}

	f := cmd.Flags()
	if f.Changed("variant") {
		ac.Variant, _ = f.GetString("variant") //nolint:errcheck // flag name is hardcoded
	}
	if f.Changed("manual") {
		s.Manual, _ = f.GetBool("manual") //nolint:errcheck // flag name is hardcoded
	}
	if f.Changed("scale") {
		s.Scale, _ = f.GetBool("scale") //nolint:errcheck // flag name is hardcoded
	}
	if f.Changed("axis") {
		axis, _ := f.GetString("axis") //nolint:errcheck // flag name is hardcoded
		s.Axis = monitor.Axis(axis)
	}
	if f.Changed("width") {
		s.Width, _ = f.GetInt("width") //nolint:errcheck // flag name is hardcoded
	}
	if f.Changed("height") {
		s.Height, _ = f.GetInt("height") //nolint:errcheck // flag name is hardcoded
	}
	if f.Changed("color") {
		v, _ := f.GetString("color") //nolint:errcheck // flag name is hardcoded
		c, err := monitor.ParseColor(v)
		if err != nil {
			return app.Config{}, fmt.Errorf("--color: %w", err)
		}
		s.BarColor = c
	}
	if f.Changed("background") {
		v, _ := f.GetString("background") //nolint:errcheck // flag name is hardcoded
		c, err := monitor.ParseColor(v)
		if err != nil {
			return app.Config{}, fmt.Errorf("--background: %w", err)
		}
		s.BackgroundColor = c
	}
	if f.Changed("z-index") {
		s.ZIndex, _ = f.GetInt("z-index") //nolint:errcheck // flag name is hardcoded
	}
	if f.Changed("class-name") {
		s.ClassName, _ = f.GetString("class-name") //nolint:errcheck // flag name is hardcoded
	}
	if f.Changed("hud") {
		ac.HUD, _ = f.GetBool("hud") //nolint:errcheck // flag name is hardcoded
	}
	if s.Axis != "" && s.Axis != monitor.AxisX && s.Axis != monitor.AxisY {
		slog.Warn("unrecognized axis, recording the vertical wheel channel", "axis", s.Axis)
	}

	ac.Settings = s
	ac.Stdin, _ = f.GetBool("stdin")         //nolint:errcheck // flag name is hardcoded
	ac.Replay, _ = f.GetString("replay")     //nolint:errcheck // flag name is hardcoded
	ac.Record, _ = f.GetString("record")     //nolint:errcheck // flag name is hardcoded
	ac.Snapshot, _ = f.GetString("snapshot") //nolint:errcheck // flag name is hardcoded
	return ac, nil
}
