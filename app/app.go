package app

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"wheelmon/hal"
	"wheelmon/monitor"
)

const (
	VariantBuffer = "buffer"
	VariantCursor = "cursor"
)

// Config selects the chart and the input feeds around it.
type Config struct {
	Variant  string
	Settings monitor.Settings

	HUD      bool
	Stdin    bool
	Replay   string
	Record   string
	Snapshot string
}

// App owns one chart engine and the feeds that drive it.
type App struct {
	h   hal.HAL
	cfg Config
	log hal.Logger

	engine monitor.Engine
	wheel  hal.Wheel
	hud    *hud

	lines     <-chan string
	replay    []hal.WheelEvent
	replayPos int
	rec       *recorder
}

// New clears the display, builds the chart and opens the configured feeds.
func New(h hal.HAL, cfg Config) (*App, error) {
	a := &App{h: h, cfg: cfg, log: h.Logger()}
	if in := h.Input(); in != nil {
		a.wheel = in.Wheel()
	}

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	if fb != nil {
		fb.ClearRGB(0, 0, 0)
	}

	if cfg.Replay != "" {
		events, err := loadReplay(cfg.Replay)
		if err != nil {
			return nil, err
		}
		a.replay = events
		a.logf("app: replaying %d events from %s", len(events), cfg.Replay)
	}

	engine, err := newEngine(h, cfg)
	if err != nil {
		return nil, err
	}
	a.engine = engine

	if cfg.Record != "" {
		rec, err := startRecorder(cfg.Record, a.wheel)
		if err != nil {
			engine.Destroy()
			return nil, err
		}
		a.rec = rec
		a.logf("app: recording wheel events to %s", cfg.Record)
	}

	if cfg.HUD && fb != nil {
		a.hud = newHUD(fb, hudRect(engine.Settings()))
		a.hud.update(engine.Status())
	}

	if cfg.Stdin && h.Serial() != nil {
		a.lines = readLines(h.Serial(), a.log)
	}
	return a, nil
}

func newEngine(h hal.HAL, cfg Config) (monitor.Engine, error) {
	switch cfg.Variant {
	case "", VariantBuffer:
		return monitor.New(h.Logger(), h.Display(), h.Input(), cfg.Settings)
	case VariantCursor:
		return monitor.NewCursor(h.Logger(), h.Display(), h.Input(), cfg.Settings)
	default:
		return nil, fmt.Errorf("unknown variant %q (want %s or %s)", cfg.Variant, VariantBuffer, VariantCursor)
	}
}

// Engine returns the chart being driven.
func (a *App) Engine() monitor.Engine { return a.engine }

// Step feeds pending stdin lines and the next replay event, then refreshes
// the HUD.
func (a *App) Step() error {
	if err := a.drainLines(); err != nil {
		return err
	}

	if a.replayPos < len(a.replay) {
		ev := a.replay[a.replayPos]
		a.replayPos++
		if err := a.feed(ev); err != nil {
			return err
		}
		if a.replayPos == len(a.replay) {
			a.logf("app: replay finished")
		}
	}

	if a.hud != nil {
		a.hud.update(a.engine.Status())
	}
	return nil
}

func (a *App) drainLines() error {
	for a.lines != nil {
		select {
		case line, ok := <-a.lines:
			if !ok {
				a.lines = nil
				return nil
			}
			ev, ok, err := parseWheelLine(line)
			if err != nil {
				a.logf("app: skipping input %q: %v", line, err)
				continue
			}
			if !ok {
				continue
			}
			if err := a.feed(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// feed routes an event the way the chart expects it: manual charts get the
// axis component through Trigger, the others see it on the wheel bus.
func (a *App) feed(ev hal.WheelEvent) error {
	s := a.engine.Settings()
	if s.Manual {
		return a.engine.Trigger(s.Axis.Delta(ev))
	}
	if a.wheel != nil {
		a.wheel.Inject(ev)
	}
	return nil
}

// Close writes the snapshot, stops recording and destroys the chart.
func (a *App) Close() error {
	var errs []error
	if a.cfg.Snapshot != "" {
		if err := a.writeSnapshot(a.cfg.Snapshot); err != nil {
			errs = append(errs, err)
		} else {
			a.logf("app: wrote snapshot %s", a.cfg.Snapshot)
		}
	}
	if a.rec != nil {
		if err := a.rec.Close(); err != nil {
			errs = append(errs, err)
		}
		a.rec = nil
	}
	if a.engine != nil {
		a.engine.Destroy()
	}
	return errors.Join(errs...)
}

func (a *App) writeSnapshot(path string) error {
	var fb hal.Framebuffer
	if d := a.h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	img := hal.Snapshot(fb, nil)
	if img == nil {
		return fmt.Errorf("snapshot: %w", monitor.ErrSurfaceUnavailable)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return f.Close()
}

func (a *App) logf(format string, args ...any) {
	if a.log == nil {
		return
	}
	a.log.WriteLineString(fmt.Sprintf(format, args...))
}

// Layout returns the framebuffer size that fits the chart, its default
// margin and the HUD.
func Layout(cfg Config) (width, height int) {
	s := cfg.Settings
	outer, _ := monitor.Frame(s)
	r := outer
	if cfg.HUD {
		r = r.Union(hudRect(s))
	}
	margin := 0
	if s.ClassName == "" {
		margin = monitor.Inset
	}
	return r.Max.X + margin, r.Max.Y + margin
}

func hudRect(s monitor.Settings) image.Rectangle {
	outer, _ := monitor.Frame(s)
	top := outer.Max.Y + hudGap
	return image.Rect(outer.Min.X, top, outer.Max.X, top+hudHeight)
}
