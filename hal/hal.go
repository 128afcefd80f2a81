package hal

import (
	"errors"
	"io"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// WheelEvent is one pointer-wheel interaction.
//
// Deltas follow DOM conventions: pixels, positive DeltaY scrolls down.
type WheelEvent struct {
	DeltaX float64
	DeltaY float64
}

// Subscription is the handle returned by Wheel.Subscribe.
type Subscription interface {
	Unsubscribe()
}

// Wheel is a broadcast channel of wheel events.
type Wheel interface {
	Subscribe(fn func(WheelEvent)) Subscription
	// Inject delivers a synthetic event to all subscribers.
	Inject(ev WheelEvent)
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Wheel() Wheel
}

// Serial is a byte stream to the controlling terminal.
type Serial interface {
	io.Reader
	io.Writer
}

// HAL provides the only contact point between the monitor and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Serial() Serial
}

// App is what the host runners drive: one Step per host tick, Close on exit.
type App interface {
	Step() error
	Close() error
}

// Options sizes the host devices.
type Options struct {
	Width  int
	Height int
	// WheelScale converts backend wheel offsets (lines) to pixels.
	WheelScale float64
}

const (
	defaultWidth      = 320
	defaultHeight     = 240
	defaultWheelScale = 100
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	if o.WheelScale == 0 {
		o.WheelScale = defaultWheelScale
	}
	return o
}
