package main

import (
	"context"
	"fmt"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/renderer/core"
)

// grid is what the demo draws on. *session implements it.
type grid interface {
	Size() (width, height int)
	DrawCell(x, y int, cell core.Cell)
	DrawText(x, y int, text string, fg, bg core.Color)
	DrawTextAttr(x, y int, text string, fg, bg core.Color, attrs core.Attribute)
	Clear()
	Present() error
	FPS() int
	IsKeyPressed(k key.Key) bool
	IsKeyJustPressed(k key.Key) bool
	QuitRequested() bool
}

// demo moves a marker with the arrow keys or WASD over a color ramp.
type demo struct {
	x, y  int
	frame int
}

// runDemo draws until Q or Escape, a quit request, ctx is done, or maxFrames
// frames have been presented. maxFrames of 0 means no limit.
func runDemo(ctx context.Context, g grid, maxFrames int) error {
	w, h := g.Size()
	d := &demo{x: w / 2, y: h / 2}

	for maxFrames == 0 || d.frame < maxFrames {
		if ctx.Err() != nil {
			return nil
		}
		if g.IsKeyJustPressed(key.KeyQ) || g.IsKeyJustPressed(key.KeyEscape) {
			return nil
		}

		d.update(g, w, h)
		d.draw(g, w, h)
		if err := g.Present(); err != nil {
			return err
		}
		d.frame++
		if g.QuitRequested() {
			return nil
		}
	}
	return nil
}

func (d *demo) update(g grid, w, h int) {
	if g.IsKeyPressed(key.KeyLeft) || g.IsKeyPressed(key.KeyA) {
		d.x--
	}
	if g.IsKeyPressed(key.KeyRight) || g.IsKeyPressed(key.KeyD) {
		d.x++
	}
	if g.IsKeyPressed(key.KeyUp) || g.IsKeyPressed(key.KeyW) {
		d.y--
	}
	if g.IsKeyPressed(key.KeyDown) || g.IsKeyPressed(key.KeyS) {
		d.y++
	}
	d.x = clamp(d.x, 0, w-1)
	// top and bottom rows hold the banner and the ramp
	d.y = clamp(d.y, 1, max(1, h-2))
}

func (d *demo) draw(g grid, w, h int) {
	g.Clear()
	g.DrawTextAttr(0, 0, "wobl  arrows/wasd move  q quits", core.ColorYellow, core.ColorReset, core.AttrBold)

	for x := 0; x < w; x++ {
		t := 0.0
		if w > 1 {
			t = float64(x) / float64(w-1)
		}
		// scroll the ramp one column per frame
		shift := float64(d.frame%w) / float64(w)
		t += shift
		if t > 1 {
			t -= 1
		}
		bg := core.ColorRed.Blend(core.ColorBlue, t)
		g.DrawCell(x, h-1, core.NewCell(' ', core.ColorReset, bg, core.AttrNone))
	}

	if h > 3 {
		g.DrawText(0, h-2, fmt.Sprintf("frame %d  fps %d", d.frame+1, g.FPS()), core.ColorGrey, core.ColorReset)
	}
	g.DrawCell(d.x, d.y, core.NewCell('@', core.ColorGreen, core.ColorReset, core.AttrBold))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
