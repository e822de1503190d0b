// Package render draws stamp designs onto a fixed 200x200 canvas.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	CanvasSize = 200

	borderInset  = 10
	borderStroke = 5
	accentStroke = 3
	starStroke   = 5
)

var (
	MinValue = decimal.RequireFromString("0.01")
	MaxValue = decimal.RequireFromString("10.00")
)

// Fixed text anchors (top-left of the first glyph).
var (
	labelOrigin = image.Pt(20, 20)
	valueOrigin = image.Pt(20, 160)
)

var starVertices = []image.Point{
	{100, 20}, {120, 80}, {180, 80}, {130, 120}, {150, 180},
	{100, 140}, {50, 180}, {70, 120}, {20, 80}, {80, 80},
}

// Input is one stamp face to draw.
type Input struct {
	Design models.Design   `json:"design" validate:"design"`
	Label  string          `json:"label" validate:"notblank,max=20"`
	Color  models.Color    `json:"color"`
	Value  decimal.Decimal `json:"value"`
}

// Renderer turns an Input into PNG bytes under a fresh id.
type Renderer struct {
	face  font.Face
	newId func() string
}

func NewRenderer() *Renderer {
	return &Renderer{
		face:  basicfont.Face7x13,
		newId: uuid.NewString,
	}
}

// Render validates the input, draws it and encodes it as PNG. Every call
// returns a new id, even for identical input.
func (r *Renderer) Render(design models.Design, label string, c models.Color, value decimal.Decimal) (string, []byte, error) {
	in := Input{Design: design, Label: strings.TrimSpace(label), Color: c, Value: value}
	if err := Validate(in); err != nil {
		return "", nil, err
	}

	img := r.Draw(in)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", nil, fmt.Errorf("failed to encode stamp png: %w", err)
	}

	return r.newId(), buf.Bytes(), nil
}

// Validate checks the label, design and face value rules.
func Validate(in Input) error {
	in.Label = strings.TrimSpace(in.Label)
	if err := validation.Struct(in); err != nil {
		return err
	}
	return ValidateValue(in.Value)
}

// ValidateValue enforces 0.01 <= value <= 10.00 with at most two decimals.
func ValidateValue(value decimal.Decimal) error {
	if value.LessThan(MinValue) || value.GreaterThan(MaxValue) {
		return models.NewValidationError("value", fmt.Sprintf("must be between %s and %s", MinValue.StringFixed(2), MaxValue.StringFixed(2)))
	}
	if !value.Equal(value.Round(2)) {
		return models.NewValidationError("value", "must have at most two decimal places")
	}
	return nil
}

// FaceValueText is the denomination line printed on every stamp.
func FaceValueText(value decimal.Decimal) string {
	return "USPS $" + value.StringFixed(2)
}

// Draw renders an already validated Input.
func (r *Renderer) Draw(in Input) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	ink := color.RGBA{R: in.Color.R, G: in.Color.G, B: in.Color.B, A: 0xff}

	switch in.Design {
	case models.DesignClassic:
		drawBorder(img, ink)
	case models.DesignWavy:
		drawBorder(img, ink)
		strokeLine(img, image.Pt(20, 20), image.Pt(180, 20), accentStroke, ink)
		strokeLine(img, image.Pt(20, 180), image.Pt(180, 180), accentStroke, ink)
	case models.DesignStar:
		for i, p := range starVertices {
			strokeLine(img, p, starVertices[(i+1)%len(starVertices)], starStroke, ink)
		}
	}

	r.drawText(img, valueOrigin, FaceValueText(in.Value), ink)
	r.drawText(img, labelOrigin, strings.ToUpper(strings.TrimSpace(in.Label)), ink)

	return img
}

// drawBorder strokes the inset rectangle inward from its outer edge.
func drawBorder(img *image.RGBA, c color.RGBA) {
	lo, hi := borderInset, CanvasSize-borderInset
	fillRect(img, lo, lo, hi, lo+borderStroke-1, c)
	fillRect(img, lo, hi-borderStroke+1, hi, hi, c)
	fillRect(img, lo, lo, lo+borderStroke-1, hi, c)
	fillRect(img, hi-borderStroke+1, lo, hi, hi, c)
}

// fillRect paints the inclusive box (x0,y0)-(x1,y1).
func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(img.Bounds())
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeLine walks the segment with Bresenham and stamps a width x width
// square at each step.
func strokeLine(img *image.RGBA, p0, p1 image.Point, width int, c color.RGBA) {
	half := width / 2
	dx, dy := abs(p1.X-p0.X), -abs(p1.Y-p0.Y)
	sx, sy := sign(p1.X-p0.X), sign(p1.Y-p0.Y)
	e := dx + dy
	x, y := p0.X, p0.Y
	for {
		fillRect(img, x-half, y-half, x-half+width-1, y-half+width-1, c)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func (r *Renderer) drawText(img *image.RGBA, origin image.Point, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(origin.X, origin.Y+r.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
