package monitor

import "wheelmon/hal"

// Cursor draws each delta at a moving column without keeping a buffer. It
// never rescales. Once the column passes the chart width it wraps to 0 and
// the surface is cleared.
type Cursor struct {
	engine
	lastX int
}

// NewCursor opens a surface on d and, unless s.Manual is set, subscribes to
// the wheel of in.
func NewCursor(log hal.Logger, d hal.Display, in hal.Input, s Settings) (*Cursor, error) {
	surf, err := OpenSurface(d, s)
	if err != nil {
		return nil, err
	}
	c, err := NewCursorWithSurface(log, surf, wheelOf(in), s)
	if err != nil {
		surf.Release()
		return nil, err
	}
	return c, nil
}

// NewCursorWithSurface builds a Cursor drawing onto surf.
func NewCursorWithSurface(log hal.Logger, surf Surface, wheel hal.Wheel, s Settings) (*Cursor, error) {
	c := &Cursor{}
	if err := c.init(log, surf, wheel, s, c.draw); err != nil {
		return nil, err
	}
	return c, nil
}

// Trigger draws delta at the cursor. It fails with ErrInvalidMode unless the
// Cursor was built in manual mode.
func (c *Cursor) Trigger(delta float64) error {
	return c.trigger(delta, c.draw)
}

// Destroy detaches the wheel listener and releases the surface.
func (c *Cursor) Destroy() {
	if c.destroy() {
		c.logf("monitor: cursor destroyed")
	}
}

func (c *Cursor) Settings() Settings { return c.settings }

// Column returns the column the next bar is drawn at.
func (c *Cursor) Column() int { return c.lastX }

func (c *Cursor) Status() Status {
	return Status{Columns: c.lastX, Last: c.last, Factor: 1, Events: c.events}
}

func (c *Cursor) draw(delta float64) {
	c.record(delta)
	c.bar(c.lastX, delta)

	x := c.lastX
	c.lastX++
	if x > c.settings.Width {
		c.lastX = 0
		c.clearAll()
	}
	c.flush()
}
