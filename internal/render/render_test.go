package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"digital-stamp-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blue = models.Color{B: 0xff}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func isInk(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0xffff
}

func isWhite(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestRender_ProducesPNGAndUniqueIds(t *testing.T) {
	r := NewRenderer()

	for _, design := range models.Designs() {
		t.Run(string(design), func(t *testing.T) {
			id1, data1, err := r.Render(design, "Forever", blue, decimal.RequireFromString("0.55"))
			require.NoError(t, err)
			id2, data2, err := r.Render(design, "Forever", blue, decimal.RequireFromString("0.55"))
			require.NoError(t, err)

			assert.NotEmpty(t, data1)
			assert.NotEmpty(t, id1)
			assert.NotEqual(t, id1, id2)
			assert.Equal(t, data1, data2, "identical input should draw identical pixels")

			img := decodePNG(t, data1)
			assert.Equal(t, image.Rect(0, 0, CanvasSize, CanvasSize), img.Bounds())
		})
	}
}

func TestRender_Validation(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name      string
		design    models.Design
		label     string
		value     string
		wantField string
	}{
		{name: "empty label", design: models.DesignClassic, label: "", value: "0.55", wantField: "label"},
		{name: "blank label", design: models.DesignClassic, label: "   ", value: "0.55", wantField: "label"},
		{name: "label too long", design: models.DesignClassic, label: "THIS LABEL IS TOO LONG", value: "0.55", wantField: "label"},
		{name: "zero value", design: models.DesignClassic, label: "Forever", value: "0.00", wantField: "value"},
		{name: "value above max", design: models.DesignClassic, label: "Forever", value: "10.01", wantField: "value"},
		{name: "three decimals", design: models.DesignClassic, label: "Forever", value: "0.555", wantField: "value"},
		{name: "unknown design", design: "Heart", label: "Forever", value: "0.55", wantField: "design"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, data, err := r.Render(tt.design, tt.label, blue, decimal.RequireFromString(tt.value))
			require.Error(t, err)
			assert.Empty(t, id)
			assert.Nil(t, data)

			var ve *models.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestRender_BoundaryValues(t *testing.T) {
	r := NewRenderer()

	for _, v := range []string{"0.01", "10.00", "10"} {
		_, _, err := r.Render(models.DesignWavy, "x", blue, decimal.RequireFromString(v))
		assert.NoError(t, err, v)
	}
}

func TestDraw_Classic(t *testing.T) {
	img := NewRenderer().Draw(Input{Design: models.DesignClassic, Label: "a", Color: blue, Value: decimal.RequireFromString("1")})

	// 5px border drawn inward from the 10px inset.
	assert.True(t, isInk(img, 10, 100))
	assert.True(t, isInk(img, 14, 100))
	assert.True(t, isWhite(img, 15, 100))
	assert.True(t, isInk(img, 190, 100))
	assert.True(t, isInk(img, 186, 100))
	assert.True(t, isWhite(img, 185, 100))
	assert.True(t, isWhite(img, 9, 100))
	assert.True(t, isWhite(img, 191, 100))

	// No accent line on Classic.
	assert.True(t, isWhite(img, 100, 180))
}

func TestDraw_Wavy(t *testing.T) {
	img := NewRenderer().Draw(Input{Design: models.DesignWavy, Label: "a", Color: blue, Value: decimal.RequireFromString("1")})

	assert.True(t, isInk(img, 10, 100), "border")
	assert.True(t, isInk(img, 100, 180), "bottom accent")
	assert.True(t, isInk(img, 100, 179))
	assert.True(t, isInk(img, 100, 181))
	assert.True(t, isWhite(img, 100, 183))
	assert.True(t, isInk(img, 100, 20), "top accent")
}

func TestDraw_Star(t *testing.T) {
	img := NewRenderer().Draw(Input{Design: models.DesignStar, Label: "a", Color: blue, Value: decimal.RequireFromString("1")})

	assert.True(t, isWhite(img, 10, 100), "star has no border")
	for _, v := range starVertices {
		assert.True(t, isInk(img, v.X, v.Y), "vertex %v", v)
	}
	assert.True(t, isInk(img, 150, 80), "edge (120,80)-(180,80)")
	assert.True(t, isWhite(img, 100, 100), "outline only")
}

func TestDraw_TextOverlay(t *testing.T) {
	r := NewRenderer()
	img := r.Draw(Input{Design: models.DesignClassic, Label: "forever", Color: blue, Value: decimal.RequireFromString("0.55")})

	countInk := func(rect image.Rectangle) int {
		n := 0
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				if isInk(img, x, y) {
					n++
				}
			}
		}
		return n
	}

	// Text sits inside the border, away from its strokes.
	assert.Greater(t, countInk(image.Rect(20, 22, 20+7*7, 33)), 0, "label glyphs")
	assert.Greater(t, countInk(image.Rect(20, 162, 20+7*10, 173)), 0, "face value glyphs")
	assert.Zero(t, countInk(image.Rect(100, 60, 180, 140)), "centre stays blank")
}

func TestDraw_UsesColor(t *testing.T) {
	red := models.Color{R: 0xff}
	img := NewRenderer().Draw(Input{Design: models.DesignClassic, Label: "a", Color: red, Value: decimal.RequireFromString("1")})
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(12, 100))
}

func TestFaceValueText(t *testing.T) {
	assert.Equal(t, "USPS $0.55", FaceValueText(decimal.RequireFromString("0.55")))
	assert.Equal(t, "USPS $10.00", FaceValueText(decimal.RequireFromString("10")))
}
