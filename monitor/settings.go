package monitor

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"wheelmon/hal"
)

// Axis selects which wheel component is recorded.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Delta returns the component of ev recorded for this axis. Anything other
// than AxisX reads the vertical channel.
func (a Axis) Delta(ev hal.WheelEvent) float64 {
	if a == AxisX {
		return ev.DeltaX
	}
	return ev.DeltaY
}

const (
	DefaultWidth  = 200
	DefaultHeight = 100
	DefaultZIndex = 999999

	DefaultBarColor        = "#0000cc"
	DefaultBackgroundColor = "#fff"
)

// Inset is the default distance of the chart from the framebuffer corner.
const Inset = 8

// Settings configures a Monitor or Cursor. Zero fields take the defaults.
type Settings struct {
	Manual bool
	Scale  bool
	Axis   Axis

	Width  int
	Height int

	BarColor        color.RGBA
	BackgroundColor color.RGBA

	// ZIndex and ClassName are cosmetic. A non-empty ClassName drops the
	// default placement and border.
	ZIndex    int
	ClassName string
}

// DefaultSettings returns the settings used for unset fields.
func DefaultSettings() Settings {
	return Settings{}.withDefaults()
}

func (s Settings) withDefaults() Settings {
	if s.Axis == "" {
		s.Axis = AxisY
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.BarColor == (color.RGBA{}) {
		s.BarColor = mustParseColor(DefaultBarColor)
	}
	if s.BackgroundColor == (color.RGBA{}) {
		s.BackgroundColor = mustParseColor(DefaultBackgroundColor)
	}
	if s.ZIndex == 0 {
		s.ZIndex = DefaultZIndex
	}
	return s
}

// Styled reports whether the default placement and border apply.
func (s Settings) Styled() bool {
	return s.ClassName == ""
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"gray":   "#808080",
	"grey":   "#808080",
}

// ParseColor accepts #rgb, #rrggbb and a few CSS color names.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if len(v) == 4 && v[0] == '#' {
		v = string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func mustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
