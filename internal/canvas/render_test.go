// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package canvas

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font"

	brandimg "brandstudio/internal/imaging"
	"brandstudio/internal/models"
)

// solidLoader returns a solid blue image for every src and records calls.
type solidLoader struct {
	calls []string
	err   error
}

func (l *solidLoader) Load(_ context.Context, src string) (image.Image, error) {
	l.calls = append(l.calls, src)
	if l.err != nil {
		return nil, l.err
	}
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	return img, nil
}

func rgba(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("err = %v, want ErrUnknownFormat", err)
		}
	}
	if FormatJPEG.ContentType() != "image/jpeg" || FormatPNG.Extension() != "png" {
		t.Error("format metadata mismatch")
	}
}

func TestParseColor(t *testing.T) {
	fallback := color.NRGBA{1, 2, 3, 255}
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"#0f0", color.NRGBA{0, 255, 0, 255}},
		{"0000ff80", color.NRGBA{0, 0, 255, 128}},
		{"", fallback},
		{"red", fallback},
		{"#zzzzzz", fallback},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in, fallback); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	doc := NewDocument(models.Design{
		Elements: []models.DesignElement{
			{ID: "image", Type: "image", X: 50, Y: 50, Width: 50, Height: 50, Src: "https://cdn/a.png"},
			{ID: "placeholder", Type: "image", X: 0, Y: 0, Width: 10, Height: 10},
			{ID: "bar", Type: "shape", X: 0, Y: 90, Width: 10, Height: 10},
			{ID: "headline", Type: "text", X: 0, Y: 0, Width: 100, Height: 20, Text: "HELLO", Color: "#ff0000"},
		},
		Brand: models.BrandSnapshot{Colors: models.BrandColors{Accent: "#00ff00"}},
	})
	loader := &solidLoader{}

	img, err := doc.Render(context.Background(), loader)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if b := img.Bounds(); b.Dx() != Width*Multiplier || b.Dy() != Height*Multiplier {
		t.Fatalf("bounds = %v", b)
	}
	if len(loader.calls) != 1 {
		t.Errorf("loader calls = %v, image without src must be skipped", loader.calls)
	}

	if r, g, b := rgba(img.At(10, 500)); r != 255 || g != 255 || b != 255 {
		t.Errorf("background = %d,%d,%d, want white", r, g, b)
	}
	if r, g, b := rgba(img.At(750, 750)); r != 0 || g != 0 || b != 255 {
		t.Errorf("image area = %d,%d,%d, want blue", r, g, b)
	}
	if r, g, b := rgba(img.At(50, 950)); r != 0 || g != 255 || b != 0 {
		t.Errorf("shape = %d,%d,%d, want brand accent", r, g, b)
	}

	red := 0
	for x := 0; x < 300; x++ {
		for y := 0; y < 100; y++ {
			if r, g, b := rgba(img.At(x, y)); r > 200 && g < 80 && b < 80 {
				red++
			}
		}
	}
	if red == 0 {
		t.Error("headline text was not drawn in its color")
	}
}

func TestRender_SkipsFailedImages(t *testing.T) {
	doc := NewDocument(models.Design{Elements: []models.DesignElement{
		{ID: "image", Type: "image", Width: 100, Height: 100, Src: "https://cdn/broken.png"},
	}})
	img, err := doc.Render(context.Background(), &solidLoader{err: errors.New("404")})
	if err != nil {
		t.Fatalf("a broken image should not fail the export: %v", err)
	}
	if r, g, b := rgba(img.At(500, 500)); r != 255 || g != 255 || b != 255 {
		t.Errorf("pixel = %d,%d,%d, want white", r, g, b)
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := NewDocument(testDesign())
	if _, err := doc.Render(ctx, &solidLoader{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestExport(t *testing.T) {
	doc := NewDocument(testDesign())
	for _, f := range []Format{FormatPNG, FormatJPEG} {
		var buf bytes.Buffer
		if err := doc.Export(context.Background(), &buf, f, &solidLoader{}); err != nil {
			t.Fatalf("Export(%s): %v", f, err)
		}
		cfg, format, err := image.DecodeConfig(&buf)
		if err != nil {
			t.Fatalf("decode %s: %v", f, err)
		}
		if string(f) != format || cfg.Width != 1000 || cfg.Height != 1000 {
			t.Errorf("%s export = %s %dx%d", f, format, cfg.Width, cfg.Height)
		}
	}
}

func TestWrap(t *testing.T) {
	face, err := textFace(FontSize)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()
	drawer := &font.Drawer{Face: face}

	tests := []struct {
		name     string
		text     string
		width    int
		minLines int
		maxLines int
	}{
		{"fits", "short", 1000, 1, 1},
		{"narrow box", "one two three four five six seven eight", 80, 3, 8},
		{"explicit newline", "a\nb", 1000, 2, 2},
		{"long word alone", "supercalifragilistic", 10, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(wrap(drawer, tt.text, tt.width))
			if n < tt.minLines || n > tt.maxLines {
				t.Errorf("lines = %d, want %d..%d", n, tt.minLines, tt.maxLines)
			}
		})
	}
}

func TestHTTPLoader(t *testing.T) {
	var pngData bytes.Buffer
	png.Encode(&pngData, image.NewNRGBA(image.Rect(0, 0, 4, 3)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngData.Bytes())
	}))
	defer srv.Close()

	// httptest listens on loopback, so use a loader without the address check.
	l := newHTTPLoader(nil)
	img, err := l.Load(context.Background(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v", b)
	}
	if _, err := l.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestHTTPLoader_RefusesInternalTargets(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	l := NewHTTPLoader()
	if _, err := l.Load(context.Background(), srv.URL+"/latest/meta-data/iam"); !errors.Is(err, ErrBlockedAddress) {
		t.Errorf("loopback err = %v, want ErrBlockedAddress", err)
	}
	for _, src := range []string{"file:///etc/passwd", "ftp://example.com/a.png", "gopher://x"} {
		if _, err := l.Load(context.Background(), src); err == nil {
			t.Errorf("Load(%q) should fail", src)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("internal server hit %d times, want 0", n)
	}
}

func TestPublicOnly(t *testing.T) {
	tests := []struct {
		addr    string
		blocked bool
	}{
		{"93.184.216.34:443", false},
		{"[2606:4700::1111]:443", false},
		{"127.0.0.1:80", true},
		{"10.1.2.3:80", true},
		{"172.16.0.1:80", true},
		{"192.168.1.1:80", true},
		{"169.254.169.254:80", true},
		{"100.64.0.1:80", true},
		{"0.0.0.0:80", true},
		{"[::1]:80", true},
		{"[fe80::1]:80", true},
		{"[fd00::1]:80", true},
		{"[::ffff:127.0.0.1]:80", true},
	}
	for _, tt := range tests {
		err := publicOnly("tcp", tt.addr, nil)
		if got := errors.Is(err, ErrBlockedAddress); got != tt.blocked {
			t.Errorf("publicOnly(%s) blocked = %v, want %v", tt.addr, got, tt.blocked)
		}
	}
}

// hugePNGHeader declares w x h grayscale pixels without any pixel data.
func hugePNGHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8
	chunk := append([]byte("IHDR"), ihdr...)
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestStorageLoader_RejectsHugeImages(t *testing.T) {
	store := &fakeStore{data: hugePNGHeader(50000, 50000)}
	l := &StorageLoader{Store: store}

	_, err := l.Load(context.Background(), "https://bucket.example.com/generated/bomb.png")
	if !errors.Is(err, brandimg.ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

type fakeStore struct {
	data       []byte
	downloaded string
}

func (f *fakeStore) ExtractKey(rawURL string) (string, bool) {
	const prefix = "https://bucket.example.com/"
	if len(rawURL) > len(prefix) && rawURL[:len(prefix)] == prefix {
		return rawURL[len(prefix):], true
	}
	return "", false
}

func (f *fakeStore) Download(_ context.Context, key string) ([]byte, string, error) {
	f.downloaded = key
	return f.data, "image/png", nil
}

func TestStorageLoader(t *testing.T) {
	var pngData bytes.Buffer
	png.Encode(&pngData, image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	store := &fakeStore{data: pngData.Bytes()}
	fallback := &solidLoader{}
	l := &StorageLoader{Store: store, Fallback: fallback}

	if _, err := l.Load(context.Background(), "https://bucket.example.com/generated/x.png"); err != nil {
		t.Fatalf("Load own: %v", err)
	}
	if store.downloaded != "generated/x.png" || len(fallback.calls) != 0 {
		t.Errorf("own URL should be read from the store, downloaded=%q", store.downloaded)
	}

	if _, err := l.Load(context.Background(), "https://elsewhere.example.com/y.png"); err != nil {
		t.Fatalf("Load foreign: %v", err)
	}
	if len(fallback.calls) != 1 {
		t.Error("foreign URL should use the fallback loader")
	}

	if _, err := (&StorageLoader{}).Load(context.Background(), "https://x/y.png"); err == nil {
		t.Error("expected error without store or fallback")
	}
}
