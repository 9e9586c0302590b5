package backend

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/wobl/internal/renderer/core"
)

// Canvas implements Backend as an in-memory pixel surface.
//
// Every glyph is rasterized into a fixed-size cell with a bitmap font.
// The surface is cleared at the end of each frame, so the canvas runs in
// ModeDirect and expects the whole grid to be redrawn before every flush.
// Keyboard state is polled from a KeySource once per frame.
type Canvas struct {
	frameInput
	mu sync.Mutex

	opts   Options
	face   font.Face
	cellW  int
	cellH  int
	ascent int

	title         string
	width, height int
	surface       *image.RGBA
	shown         *image.RGBA
	frames        int
	quit          bool
	initialized   bool
	closed        bool
}

// Colors used when a cell asks for the device default.
var (
	canvasDefaultFg = core.ColorGrey
	canvasDefaultBg = core.ColorBlack
)

// NewCanvas creates a canvas backend.
func NewCanvas(opts ...Option) *Canvas {
	o := buildOptions(opts)
	face := basicfont.Face7x13
	return &Canvas{
		frameInput: newFrameInput(o.Clock),
		opts:       o,
		face:       face,
		cellW:      face.Advance,
		cellH:      face.Height,
		ascent:     face.Ascent,
	}
}

// Init allocates a surface sized to the grid.
func (c *Canvas) Init(title string, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.initialized {
		return ErrAlreadyInitialized
	}
	bounds := image.Rect(0, 0, width*c.cellW, height*c.cellH)
	c.surface = image.NewRGBA(bounds)
	c.shown = image.NewRGBA(bounds)
	c.clear(c.surface)
	c.clear(c.shown)

	c.title = title
	c.width = width
	c.height = height
	c.initialized = true
	return nil
}

func (c *Canvas) clear(img *image.RGBA) {
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(canvasDefaultBg)), image.Point{}, draw.Src)
}

// Mode returns ModeDirect.
func (c *Canvas) Mode() Mode {
	return ModeDirect
}

// Title returns the title passed to Init.
func (c *Canvas) Title() string {
	return c.title
}

// CellSize returns the pixel size of one grid cell.
func (c *Canvas) CellSize() (width, height int) {
	return c.cellW, c.cellH
}

// DrawCell rasterizes a cell onto the surface. Positions outside the grid
// are ignored.
func (c *Canvas) DrawCell(x, y int, cell core.Cell) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.closed {
		return ErrNotInitialized
	}
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}

	fg, bg := cell.Fg, cell.Bg
	if fg.IsDefault() {
		fg = canvasDefaultFg
	}
	if bg.IsDefault() {
		bg = canvasDefaultBg
	}
	if cell.Attrs.Has(core.AttrReverse) {
		fg, bg = bg, fg
	}
	if cell.Attrs.Has(core.AttrDim) {
		fg = fg.Blend(bg, 0.5)
	}

	rect := image.Rect(x*c.cellW, y*c.cellH, (x+1)*c.cellW, (y+1)*c.cellH)
	dst := c.surface.SubImage(rect).(*image.RGBA)
	draw.Draw(dst, rect, image.NewUniform(rgba(bg)), image.Point{}, draw.Src)

	if cell.Attrs.Has(core.AttrHidden) {
		return nil
	}
	ink := image.NewUniform(rgba(fg))
	if cell.Grapheme != " " {
		d := font.Drawer{
			Dst:  dst,
			Src:  ink,
			Face: c.face,
			Dot:  fixed.P(rect.Min.X, rect.Min.Y+c.ascent),
		}
		d.DrawString(cell.Grapheme)
		if cell.Attrs.Has(core.AttrBold) {
			d.Dot = fixed.P(rect.Min.X+1, rect.Min.Y+c.ascent)
			d.DrawString(cell.Grapheme)
		}
	}
	if cell.Attrs.Has(core.AttrUnderline) {
		line := image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y)
		draw.Draw(dst, line, ink, image.Point{}, draw.Src)
	}
	if cell.Attrs.Has(core.AttrStrikethrough) {
		mid := rect.Min.Y + c.cellH/2
		line := image.Rect(rect.Min.X, mid, rect.Max.X, mid+1)
		draw.Draw(dst, line, ink, image.Point{}, draw.Src)
	}
	return nil
}

// Flush presents the surface and writes the snapshot if one is configured.
func (c *Canvas) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.closed {
		return ErrNotInitialized
	}
	draw.Draw(c.shown, c.shown.Bounds(), c.surface, image.Point{}, draw.Src)
	c.frames++
	if c.opts.Snapshot == "" {
		return nil
	}
	return c.writeSnapshot()
}

func (c *Canvas) writeSnapshot() error {
	var img image.Image = c.shown
	if c.opts.Scale > 1 {
		b := c.shown.Bounds()
		scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*c.opts.Scale, b.Dy()*c.opts.Scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), c.shown, b, draw.Src, nil)
		img = scaled
	}

	tmp := c.opts.Snapshot + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}
	return os.Rename(tmp, c.opts.Snapshot)
}

// WaitFrame clears the surface, polls the key source and paces the frame.
func (c *Canvas) WaitFrame() error {
	c.mu.Lock()
	if !c.initialized || c.closed {
		c.mu.Unlock()
		return ErrNotInitialized
	}
	c.clear(c.surface)
	if c.opts.Keys != nil {
		c.keys.Poll(c.opts.Keys.KeysDown())
	} else {
		c.keys.Begin()
	}
	c.mu.Unlock()

	c.pacer.Wait()
	return nil
}

// Image returns a copy of the last presented frame.
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shown == nil {
		return nil
	}
	out := image.NewRGBA(c.shown.Bounds())
	draw.Draw(out, out.Bounds(), c.shown, image.Point{}, draw.Src)
	return out
}

// Frames returns the number of presented frames.
func (c *Canvas) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// RequestQuit marks the canvas as asked to close.
func (c *Canvas) RequestQuit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quit = true
}

// QuitRequested reports whether RequestQuit was called.
func (c *Canvas) QuitRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quit
}

// Close releases the surface.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
