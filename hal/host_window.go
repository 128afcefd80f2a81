//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"wheelmon/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards
// wheel input. It blocks until the window closes.
func RunWindow(newApp func(HAL) (App, error), opts Options) (err error) {
	h := New(opts).(*hostHAL)
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	g := &hostGame{h: h, app: app}
	ebiten.SetWindowTitle("wheelmon (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	app   App
	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	g.pollWheel()
	if g.app != nil {
		if err := g.app.Step(); err != nil {
			return err
		}
	}
	return nil
}

// pollWheel turns ebiten's line offsets into DOM-style pixel deltas.
func (g *hostGame) pollWheel() {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	scale := g.h.opts.WheelScale
	g.h.wheel.Inject(WheelEvent{DeltaX: -dx * scale, DeltaY: -dy * scale})
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil || g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.img = nil
		_ = fb.Present()
	}

	if fb.takeDirty() {
		g.img = Snapshot(fb, g.img)
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
