package monitor

import "wheelmon/hal"

// Monitor charts every buffered delta as one bar per column and starts over
// once the buffer outgrows the chart width.
type Monitor struct {
	engine
	deltas []float64
	factor float64
}

// New opens a surface on d and, unless s.Manual is set, subscribes to the
// wheel of in.
func New(log hal.Logger, d hal.Display, in hal.Input, s Settings) (*Monitor, error) {
	surf, err := OpenSurface(d, s)
	if err != nil {
		return nil, err
	}
	m, err := NewWithSurface(log, surf, wheelOf(in), s)
	if err != nil {
		surf.Release()
		return nil, err
	}
	return m, nil
}

// NewWithSurface builds a Monitor drawing onto surf.
func NewWithSurface(log hal.Logger, surf Surface, wheel hal.Wheel, s Settings) (*Monitor, error) {
	m := &Monitor{factor: 1}
	if err := m.init(log, surf, wheel, s, m.ingest); err != nil {
		return nil, err
	}
	return m, nil
}

// Trigger records delta and redraws. It fails with ErrInvalidMode unless the
// Monitor was built in manual mode.
func (m *Monitor) Trigger(delta float64) error {
	return m.trigger(delta, m.ingest)
}

// Destroy detaches the wheel listener and releases the surface.
func (m *Monitor) Destroy() {
	if m.destroy() {
		m.deltas = nil
		m.logf("monitor: destroyed")
	}
}

// Settings returns the effective settings, defaults applied.
func (m *Monitor) Settings() Settings { return m.settings }

// Deltas returns a copy of the buffered deltas.
func (m *Monitor) Deltas() []float64 {
	return append([]float64(nil), m.deltas...)
}

// ScaleFactor returns the factor applied by the last render.
func (m *Monitor) ScaleFactor() float64 { return m.factor }

func (m *Monitor) Status() Status {
	return Status{Columns: len(m.deltas), Last: m.last, Factor: m.factor, Events: m.events}
}

func (m *Monitor) ingest(delta float64) {
	m.record(delta)
	m.deltas = append(m.deltas, delta)
	m.render()
}

func (m *Monitor) render() {
	m.clearAll()

	values := m.deltas
	m.factor = 1
	if m.settings.Scale {
		values, m.factor = Rescale(m.deltas, float64(m.settings.Height))
	}
	for i, v := range values {
		m.bar(i, v)
	}

	if len(values) > m.settings.Width {
		m.logf("monitor: %d columns exceed width %d, starting over", len(values), m.settings.Width)
		m.deltas = nil
		m.clearAll()
	}
	m.flush()
}

func wheelOf(in hal.Input) hal.Wheel {
	if in == nil {
		return nil
	}
	return in.Wheel()
}
