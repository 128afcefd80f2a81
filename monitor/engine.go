package monitor

import (
	"fmt"

	"wheelmon/hal"
)

// BarWidth is the pixel width of one bar.
const BarWidth = 2

// Engine is the part shared by Monitor and Cursor that the app drives.
type Engine interface {
	Trigger(delta float64) error
	Destroy()
	Settings() Settings
	Status() Status
}

// Status summarizes what is currently on the chart.
type Status struct {
	Columns int
	Last    float64
	Factor  float64
	Events  uint64
}

// engine holds the state both chart variants share: surface, subscription
// and mode gating.
type engine struct {
	log      hal.Logger
	surf     Surface
	sub      hal.Subscription
	settings Settings
	centerY  int

	destroyed bool
	last      float64
	events    uint64
}

func (e *engine) init(log hal.Logger, surf Surface, wheel hal.Wheel, s Settings, ingest func(float64)) error {
	if surf == nil {
		return ErrSurfaceUnavailable
	}
	s = s.withDefaults()
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("size %dx%d: %w", s.Width, s.Height, ErrSurfaceUnavailable)
	}

	e.log = log
	e.surf = surf
	e.settings = s
	e.centerY = s.Height / 2

	if !s.Manual && wheel != nil {
		e.sub = wheel.Subscribe(func(ev hal.WheelEvent) {
			if e.settings.Manual || e.destroyed {
				return
			}
			ingest(e.settings.Axis.Delta(ev))
		})
		e.logf("monitor: listening on wheel axis %s", s.Axis)
	}
	return nil
}

func (e *engine) trigger(delta float64, ingest func(float64)) error {
	if !e.settings.Manual {
		return ErrInvalidMode
	}
	if e.destroyed {
		return nil
	}
	ingest(delta)
	return nil
}

func (e *engine) record(delta float64) {
	e.last = delta
	e.events++
}

func (e *engine) clearAll() {
	e.surf.ClearRect(0, 0, float64(e.settings.Width), float64(e.settings.Height))
}

func (e *engine) bar(col int, value float64) {
	e.surf.FillRect(float64(col), float64(e.centerY), BarWidth, -value, e.settings.BarColor)
}

func (e *engine) flush() {
	if err := e.surf.Flush(); err != nil {
		e.logf("monitor: present: %v", err)
	}
}

func (e *engine) destroy() bool {
	if e.destroyed {
		return false
	}
	e.destroyed = true
	if e.sub != nil {
		e.sub.Unsubscribe()
		e.sub = nil
	}
	e.surf.Release()
	return true
}

func (e *engine) logf(format string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.WriteLineString(fmt.Sprintf(format, args...))
}
