package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelmon/hal"
)

func TestCursorDrawsOneBarPerDelta(t *testing.T) {
	surf := &recordingSurface{}
	bus := hal.NewWheelBus()
	c, err := NewCursorWithSurface(nil, surf, bus, Settings{})
	require.NoError(t, err)

	dispatchY(bus, 6, 8, 160, -20)

	assert.Equal(t, []rectCall{
		{0, 50, 2, -6},
		{1, 50, 2, -8},
		{2, 50, 2, -160},
		{3, 50, 2, 20},
	}, surf.fills, "cursor never rescales or redraws history")
	assert.Equal(t, 4, c.Column())
	assert.Empty(t, surf.clears)
}

func TestCursorWrapsPastWidth(t *testing.T) {
	surf := &recordingSurface{}
	c, err := NewCursorWithSurface(nil, surf, nil, Settings{Manual: true, Width: 2})
	require.NoError(t, err)

	// Columns 0, 1, 2 fit; the bar at column 3 is drawn and then the
	// surface is cleared.
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Trigger(1))
	}
	assert.Equal(t, 3, c.Column())
	assert.Empty(t, surf.clears)

	require.NoError(t, c.Trigger(1))
	assert.Equal(t, 0, c.Column())
	assert.Equal(t, []rectCall{{0, 0, 2, 100}}, surf.clears)
	assert.Equal(t, rectCall{3, 50, 2, -1}, surf.fills[3])

	require.NoError(t, c.Trigger(7))
	assert.Equal(t, rectCall{0, 50, 2, -7}, surf.fills[4])
}

func TestCursorModeGating(t *testing.T) {
	bus := hal.NewWheelBus()

	auto, err := NewCursorWithSurface(nil, &recordingSurface{}, bus, Settings{})
	require.NoError(t, err)
	assert.ErrorIs(t, auto.Trigger(1), ErrInvalidMode)

	surf := &recordingSurface{}
	manual, err := NewCursorWithSurface(nil, surf, bus, Settings{Manual: true})
	require.NoError(t, err)
	dispatchY(bus, 5)
	assert.Equal(t, 0, manual.Column())
	assert.Empty(t, surf.fills)

	auto.Destroy()
	manual.Destroy()
	assert.Zero(t, bus.Len())
	assert.True(t, surf.released)
}

func TestCursorAxisX(t *testing.T) {
	surf := &recordingSurface{}
	bus := hal.NewWheelBus()
	_, err := NewCursorWithSurface(nil, surf, bus, Settings{Axis: AxisX})
	require.NoError(t, err)

	bus.Inject(hal.WheelEvent{DeltaX: 30, DeltaY: 20})

	assert.Equal(t, []rectCall{{0, 50, 2, -30}}, surf.fills)
}

func TestCursorStatus(t *testing.T) {
	c, err := NewCursorWithSurface(nil, &recordingSurface{}, nil, Settings{Manual: true})
	require.NoError(t, err)

	require.NoError(t, c.Trigger(3))
	require.NoError(t, c.Trigger(-9))

	assert.Equal(t, Status{Columns: 2, Last: -9, Factor: 1, Events: 2}, c.Status())
}

func TestEnginesSatisfyInterface(t *testing.T) {
	var _ Engine = (*Monitor)(nil)
	var _ Engine = (*Cursor)(nil)
}
