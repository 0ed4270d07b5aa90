// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package canvas

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"brandstudio/internal/models"
)

// Export settings.
const (
	Multiplier  = 2
	FontSize    = 24
	JPEGQuality = 90

	placeholderText = "Text"
)

// Format is a raster export format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("canvas: unknown export format")

// ParseFormat accepts "png", "jpg" and "jpeg". Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type of the encoded image.
func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension is the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return "png"
}

// ImageLoader fetches the bitmap behind an image element's src.
type ImageLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	fontErr    error
)

func textFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("canvas: parse font: %w", fontErr)
	}
	return opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render paints the document at Multiplier times the canvas size on a white
// background. Images that fail to load are skipped, as are image elements
// without a src.
func (d *Document) Render(ctx context.Context, loader ImageLoader) (*image.NRGBA, error) {
	w, h := Width*Multiplier, Height*Multiplier
	dst := imaging.New(w, h, color.White)

	face, err := textFace(FontSize * Multiplier)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	for _, el := range d.elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		box := pixelBox(el, w, h)

		switch el.Type {
		case models.ElementText:
			drawText(dst, face, el, box)

		case models.ElementImage:
			if el.Src == "" || loader == nil {
				continue
			}
			src, err := loader.Load(ctx, el.Src)
			if err != nil {
				slog.Warn("canvas image load failed, skipping element", "src", el.Src, "error", err)
				continue
			}
			if box.Dx() < 1 || box.Dy() < 1 {
				continue
			}
			scaled := imaging.Resize(src, box.Dx(), box.Dy(), imaging.Lanczos)
			dst = imaging.Overlay(dst, scaled, box.Min, 1.0)

		case models.ElementShape:
			if box.Dx() < 1 || box.Dy() < 1 {
				continue
			}
			fill := parseColor(el.Color, parseColor(d.brand.Colors.Accent, color.NRGBA{R: 204, G: 204, B: 204, A: 255}))
			dst = imaging.Overlay(dst, imaging.New(box.Dx(), box.Dy(), fill), box.Min, 1.0)
		}
	}
	return dst, nil
}

// Export renders the document and encodes it to out.
func (d *Document) Export(ctx context.Context, out io.Writer, format Format, loader ImageLoader) error {
	img, err := d.Render(ctx, loader)
	if err != nil {
		return err
	}
	if format == FormatJPEG {
		return imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	}
	return imaging.Encode(out, img, imaging.PNG)
}

// pixelBox converts an element's percent box to pixels on a w×h surface.
func pixelBox(el models.DesignElement, w, h int) image.Rectangle {
	x0 := int(el.X / 100 * float64(w))
	y0 := int(el.Y / 100 * float64(h))
	x1 := int((el.X + el.Width) / 100 * float64(w))
	y1 := int((el.Y + el.Height) / 100 * float64(h))
	return image.Rect(x0, y0, x1, y1)
}

// drawText wraps the element's text to its box width (or the canvas edge
// when the box has no width) and draws it from the box origin.
func drawText(dst *image.NRGBA, face font.Face, el models.DesignElement, box image.Rectangle) {
	text := el.Text
	if text == "" {
		text = placeholderText
	}

	maxWidth := box.Dx()
	if maxWidth <= 0 {
		maxWidth = dst.Bounds().Dx() - box.Min.X
	}

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(parseColor(el.Color, color.Black)),
		Face: face,
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	y := box.Min.Y + metrics.Ascent.Ceil()

	for _, line := range wrap(drawer, text, maxWidth) {
		drawer.Dot = fixed.P(box.Min.X, y)
		drawer.DrawString(line)
		y += lineHeight
	}
}

// wrap breaks text into lines no wider than maxWidth pixels. A single word
// wider than maxWidth gets a line of its own.
func wrap(drawer *font.Drawer, text string, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if drawer.MeasureString(candidate).Ceil() > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// parseColor reads #rgb, #rrggbb and #rrggbbaa. Anything else yields fallback.
func parseColor(s string, fallback color.Color) color.Color {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
