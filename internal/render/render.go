// Package render draws grid snapshots into PNG images.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	DefaultScale = 4
	MaxPixels    = 1 << 26

	captionHeight = 18
	fontSize      = 12.0
)

var (
	ErrEmpty    = errors.New("render: nothing to draw")
	ErrTooLarge = errors.New("render: image too large")
)

// Image records the latest grid snapshot and paints it on demand. It
// implements the engine's Surface and RenderContext.
type Image struct {
	Scale   int
	Alive   color.Color
	Dead    color.Color
	Caption string

	w, h  int
	cells []uint8
}

type Option func(*Image)

func WithScale(px int) Option {
	return func(i *Image) {
		if px > 0 {
			i.Scale = px
		}
	}
}

func WithColors(alive, dead color.Color) Option {
	return func(i *Image) {
		i.Alive = alive
		i.Dead = dead
	}
}

func New(opts ...Option) *Image {
	img := &Image{
		Scale: DefaultScale,
		Alive: color.White,
		Dead:  color.Black,
	}
	for _, o := range opts {
		o(img)
	}
	return img
}

func (i *Image) SetSize(w, h int) {
	i.w, i.h = max(w, 0), max(h, 0)
	i.cells = make([]uint8, i.w*i.h)
}

func (i *Image) PutCells(w, h int, cells []uint8) {
	if w != i.w || h != i.h {
		i.SetSize(w, h)
	}
	copy(i.cells, cells)
}

// Size reports the image dimensions in pixels.
func (i *Image) Size() (w, h int) {
	w, h = i.w*i.Scale, i.h*i.Scale
	if i.Caption != "" {
		h += captionHeight
	}
	return w, h
}

// Context paints the snapshot into a fresh gg context.
func (i *Image) Context() (*gg.Context, error) {
	if i.w == 0 || i.h == 0 {
		return nil, ErrEmpty
	}
	w, h := i.Size()
	if int64(w)*int64(h) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(i.Dead)
	dc.Clear()

	s := float64(i.Scale)
	dc.SetColor(i.Alive)
	for y := 0; y < i.h; y++ {
		for x := 0; x < i.w; x++ {
			if i.cells[y*i.w+x] != 0 {
				dc.DrawRectangle(float64(x)*s, float64(y)*s, s, s)
			}
		}
	}
	dc.Fill()

	if i.Caption != "" {
		if err := i.drawCaption(dc, float64(i.h)*s); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func (i *Image) drawCaption(dc *gg.Context, top float64) error {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("render: parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	dc.SetColor(i.Alive)
	dc.DrawStringAnchored(i.Caption, 4, top+captionHeight/2, 0, 0.5)
	return nil
}

func (i *Image) SavePNG(path string) error {
	dc, err := i.Context()
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func (i *Image) Encode(w io.Writer) error {
	dc, err := i.Context()
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}
