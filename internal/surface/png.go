package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/verte-zerg/statsview/internal/render"
)

// Image is a raster surface backed by a gg context.
type Image struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewImage returns a width x height raster filled with background. A nil
// background leaves the image transparent.
func NewImage(width, height int, background color.Color) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc := gg.NewContext(width, height)
	if background != nil {
		dc.SetColor(background)
		dc.Clear()
	}
	return &Image{dc: dc, font: ttf, faces: make(map[float64]font.Face)}, nil
}

// Draw paints commands in order.
func (im *Image) Draw(cmds []render.Command) error {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case render.Circle:
			im.stroke(c.Color, c.Stroke)
			im.dc.DrawCircle(c.CenterX, c.CenterY, c.Radius)
			im.dc.Stroke()
		case render.Arc:
			if c.SweepAngle == 0 {
				continue
			}
			cx, cy, r := arcCircle(c)
			im.stroke(c.Color, c.Stroke)
			im.dc.NewSubPath()
			im.dc.DrawArc(cx, cy, r, gg.Radians(c.StartAngle), gg.Radians(c.StartAngle+c.SweepAngle))
			im.dc.Stroke()
		case render.Text:
			if c.Style.Size <= 0 {
				continue
			}
			im.dc.SetFontFace(im.face(c.Style.Size))
			im.dc.SetColor(c.Style.Color)
			im.dc.DrawStringAnchored(c.Content, c.X, c.Y, anchorX(c.Style.Align), 0)
		}
	}
	return nil
}

// Image returns the rendered raster.
func (im *Image) Image() image.Image {
	return im.dc.Image()
}

// EncodePNG writes the raster as PNG.
func (im *Image) EncodePNG(w io.Writer) error {
	if err := im.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func (im *Image) stroke(c color.Color, s render.Stroke) {
	im.dc.SetColor(c)
	im.dc.SetLineWidth(s.Width)
	if s.Round {
		im.dc.SetLineCapRound()
	} else {
		im.dc.SetLineCapButt()
	}
}

func (im *Image) face(size float64) font.Face {
	if f, ok := im.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(im.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	im.faces[size] = f
	return f
}
