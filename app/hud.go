package app

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"tinygo.org/x/tinyfont"

	"wheelmon/hal"
	"wheelmon/monitor"
)

const (
	hudGap    = 2
	hudHeight = 8
	// hudBaseline is the TomThumb baseline inside the HUD strip.
	hudBaseline = 6
)

var (
	colorHUDBG = color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xff}
	colorHUDFG = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// hud is the one-line status strip under the chart.
type hud struct {
	region *hal.Region
	last   monitor.Status
	drawn  bool
}

func newHUD(fb hal.Framebuffer, r image.Rectangle) *hud {
	region := hal.NewRegion(fb, r)
	if region == nil {
		return nil
	}
	return &hud{region: region}
}

func (h *hud) update(st monitor.Status) {
	if h == nil || (h.drawn && st == h.last) {
		return
	}
	h.last = st
	h.drawn = true

	h.region.Clear(colorHUDBG)
	tinyfont.WriteLine(h.region, &tinyfont.TomThumb, 1, hudBaseline, formatStatus(st), colorHUDFG)
	_ = h.region.Display()
}

func formatStatus(st monitor.Status) string {
	return fmt.Sprintf("n=%d col=%d last=%s x%s",
		st.Events, st.Columns,
		strconv.FormatFloat(st.Last, 'g', 4, 64),
		strconv.FormatFloat(st.Factor, 'g', 3, 64))
}
