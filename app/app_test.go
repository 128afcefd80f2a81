package app

import (
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelmon/hal"
	"wheelmon/monitor"
)

func newTestHAL(cfg Config, stdin string) hal.HAL {
	w, h := Layout(cfg)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return hal.NewWithIO(hal.Options{Width: w, Height: h}, log, strings.NewReader(stdin), io.Discard)
}

func deltasOf(t *testing.T, a *App) []float64 {
	t.Helper()
	m, ok := a.Engine().(*monitor.Monitor)
	require.True(t, ok, "engine is %T", a.Engine())
	return m.Deltas()
}

// stepUntil steps a until the chart holds n deltas; stdin arrives asynchronously.
func stepUntil(t *testing.T, a *App, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(deltasOf(t, a)) < n {
		require.NoError(t, a.Step())
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d deltas, have %v", n, deltasOf(t, a))
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLayout(t *testing.T) {
	w, h := Layout(Config{Settings: monitor.Settings{Width: 200, Height: 100}})
	assert.Equal(t, 218, w)
	assert.Equal(t, 118, h)

	w, h = Layout(Config{Settings: monitor.Settings{Width: 200, Height: 100}, HUD: true})
	assert.Equal(t, 218, w)
	assert.Equal(t, 110+hudGap+hudHeight+monitor.Inset, h)

	w, h = Layout(Config{Settings: monitor.Settings{Width: 20, Height: 10, ClassName: "plain"}})
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}

func TestAppManualStdin(t *testing.T) {
	cfg := Config{Settings: monitor.Settings{Manual: true}, Stdin: true}
	a, err := New(newTestHAL(cfg, "6\n8\n# comment\n\nbogus\n30 160\n"), cfg)
	require.NoError(t, err)
	defer a.Close()

	stepUntil(t, a, 3)
	assert.Equal(t, []float64{6, 8, 160}, deltasOf(t, a))
}

func TestAppAutomaticStdinGoesThroughWheel(t *testing.T) {
	cfg := Config{Settings: monitor.Settings{Axis: monitor.AxisX}, Stdin: true}
	a, err := New(newTestHAL(cfg, "20\n30 20\n"), cfg)
	require.NoError(t, err)
	defer a.Close()

	stepUntil(t, a, 2)
	assert.Equal(t, []float64{0, 30}, deltasOf(t, a))
}

func TestAppReplayOneEventPerStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.txt")
	require.NoError(t, os.WriteFile(path, []byte("6\n8\n0 160\n"), 0o644))

	cfg := Config{Settings: monitor.Settings{Scale: true}, Replay: path}
	a, err := New(newTestHAL(cfg, ""), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Step())
	assert.Equal(t, []float64{6}, deltasOf(t, a))
	require.NoError(t, a.Step())
	require.NoError(t, a.Step())
	require.NoError(t, a.Step())
	assert.Equal(t, []float64{6, 8, 160}, deltasOf(t, a))
	assert.Equal(t, 0.625, a.Engine().Status().Factor)
}

func TestAppReplayBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.txt")
	require.NoError(t, os.WriteFile(path, []byte("6\n1 2 3\n"), 0o644))

	cfg := Config{Replay: path}
	_, err := New(newTestHAL(cfg, ""), cfg)
	assert.ErrorContains(t, err, "wheel.txt:2")
}

func TestAppRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.txt")
	cfg := Config{Record: path}
	h := newTestHAL(cfg, "")
	a, err := New(h, cfg)
	require.NoError(t, err)

	h.Input().Wheel().Inject(hal.WheelEvent{DeltaY: 6})
	h.Input().Wheel().Inject(hal.WheelEvent{DeltaX: -1.5, DeltaY: 100})
	require.NoError(t, a.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 6\n-1.5 100\n", string(data))

	events, err := loadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, []hal.WheelEvent{{DeltaY: 6}, {DeltaX: -1.5, DeltaY: 100}}, events)
}

func TestAppCursorVariant(t *testing.T) {
	cfg := Config{Variant: VariantCursor, Settings: monitor.Settings{Manual: true}}
	a, err := New(newTestHAL(cfg, ""), cfg)
	require.NoError(t, err)
	defer a.Close()

	c, ok := a.Engine().(*monitor.Cursor)
	require.True(t, ok)
	require.NoError(t, a.feed(hal.WheelEvent{DeltaY: 4}))
	assert.Equal(t, 1, c.Column())
}

func TestAppUnknownVariant(t *testing.T) {
	cfg := Config{Variant: "pie"}
	_, err := New(newTestHAL(cfg, ""), cfg)
	assert.ErrorContains(t, err, "unknown variant")
}

func TestAppSurfaceUnavailable(t *testing.T) {
	cfg := Config{Settings: monitor.Settings{Width: 200, Height: 100}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := hal.NewWithIO(hal.Options{Width: 4, Height: 4}, log, nil, io.Discard)

	_, err := New(h, cfg)
	assert.ErrorIs(t, err, monitor.ErrSurfaceUnavailable)
}

func TestAppSnapshotAndHUD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	cfg := Config{Settings: monitor.Settings{Manual: true}, HUD: true, Snapshot: path}
	h := newTestHAL(cfg, "")
	a, err := New(h, cfg)
	require.NoError(t, err)

	require.NoError(t, a.Engine().Trigger(40))
	require.NoError(t, a.Step())
	require.NoError(t, a.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	w, hgt := Layout(cfg)
	assert.Equal(t, image.Rect(0, 0, w, hgt), img.Bounds())

	_, inner := monitor.Frame(cfg.Settings)
	r, g, b, _ := img.At(inner.Min.X, inner.Min.Y+30).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xcdcd}, [3]uint32{r, g, b}, "bar pixel")

	hr := hudRect(cfg.Settings)
	var lit bool
	for x := hr.Min.X; x < hr.Max.X && !lit; x++ {
		for y := hr.Min.Y; y < hr.Max.Y; y++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0x8000 {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit, "HUD text drawn")
}

func TestParseWheelLine(t *testing.T) {
	tests := []struct {
		in   string
		want hal.WheelEvent
		ok   bool
		err  bool
	}{
		{"12.5", hal.WheelEvent{DeltaY: 12.5}, true, false},
		{" -3 4 ", hal.WheelEvent{DeltaX: -3, DeltaY: 4}, true, false},
		{"7 # note", hal.WheelEvent{DeltaY: 7}, true, false},
		{"", hal.WheelEvent{}, false, false},
		{"# only", hal.WheelEvent{}, false, false},
		{"x", hal.WheelEvent{}, false, true},
		{"1 y", hal.WheelEvent{}, false, true},
		{"1 2 3", hal.WheelEvent{}, false, true},
	}
	for _, tt := range tests {
		ev, ok, err := parseWheelLine(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, ev, tt.in)
	}
}

func TestFormatStatus(t *testing.T) {
	got := formatStatus(monitor.Status{Columns: 3, Last: -20, Factor: 0.625, Events: 5})
	assert.Equal(t, "n=5 col=3 last=-20 x0.625", got)
}
