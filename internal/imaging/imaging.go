// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging validates and normalises brand image uploads before they
// are stored. Every upload is decoded, so non-images are rejected even when
// the client lies about the content type. Oversized images are downscaled
// so the vision model and the canvas never receive huge originals.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder
)

// MaxDimension is the longest side an upload may keep.
const MaxDimension = 2048

// MaxPixels caps the decoded size of an image. The header is checked
// before any pixel data is decoded.
const MaxPixels = 100_000_000

// JPEGQuality is used when an upload has to be re-encoded as JPEG.
const JPEGQuality = 85

// ErrNotImage is returned when the data cannot be decoded as an image.
var ErrNotImage = errors.New("imaging: not a supported image")

// ErrTooLarge is returned when an image declares more than MaxPixels.
var ErrTooLarge = errors.New("imaging: image dimensions too large")

// CheckConfig rejects image headers whose pixel count exceeds MaxPixels.
func CheckConfig(cfg image.Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: empty %dx%d", ErrNotImage, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	return nil
}

// Upload is an image ready to be stored.
type Upload struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// Prepare decodes data and downscales it when either side exceeds
// MaxDimension. Images that already fit are returned byte-for-byte.
// Resized PNGs stay PNG to keep transparency; everything else becomes JPEG.
func Prepare(data []byte) (*Upload, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if err := CheckConfig(cfg); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	if cfg.Width <= MaxDimension && cfg.Height <= MaxDimension {
		return &Upload{
			Data:        data,
			ContentType: contentTypeFor(format),
			Width:       cfg.Width,
			Height:      cfg.Height,
		}, nil
	}

	resized := imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)

	var (
		buf bytes.Buffer
		ct  string
	)
	if format == "png" {
		err = imaging.Encode(&buf, resized, imaging.PNG)
		ct = "image/png"
	} else {
		err = imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
		ct = "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}

	b := resized.Bounds()
	slog.Debug("upload downscaled",
		"from", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"to", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"bytes", buf.Len(),
	)

	return &Upload{
		Data:        buf.Bytes(),
		ContentType: ct,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Resized:     true,
	}, nil
}

func contentTypeFor(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
