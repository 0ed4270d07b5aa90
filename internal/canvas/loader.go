// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package canvas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder

	brandimg "brandstudio/internal/imaging"
)

// maxImageBytes caps a single fetched image.
const maxImageBytes = 20 << 20

// ErrBlockedAddress is returned when an image URL resolves to an address
// the server must not reach (loopback, private ranges, link-local...).
var ErrBlockedAddress = errors.New("canvas: blocked image address")

// sharedAddressSpace is the carrier-grade NAT range (RFC 6598).
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// HTTPLoader fetches images over HTTP(S). Design sources come from the
// client, so every connection, redirects included, is checked against
// publicOnly before it is opened.
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader creates a loader with a 30s timeout that only connects to
// public addresses.
func NewHTTPLoader() *HTTPLoader {
	return newHTTPLoader(publicOnly)
}

func newHTTPLoader(control func(network, address string, c syscall.RawConn) error) *HTTPLoader {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: control,
	}
	transport := &http.Transport{
		// No proxy: the dialer must see the real destination.
		Proxy:               nil,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPLoader{client: &http.Client{Timeout: 30 * time.Second, Transport: transport}}
}

// publicOnly is a net.Dialer Control hook. address is already resolved,
// so DNS names pointing at internal hosts are caught too.
func publicOnly(network, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip := ap.Addr().Unmap()
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() ||
		sharedAddressSpace.Contains(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ip)
	}
	return nil
}

// Load downloads and decodes src. Only http and https URLs are fetched.
func (l *HTTPLoader) Load(ctx context.Context, src string) (image.Image, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("canvas: parse %q: %w", src, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("canvas: unsupported image scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("canvas: build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canvas: fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("canvas: fetch %s: status %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("canvas: read %s: %w", src, err)
	}
	return decode(data)
}

// ObjectStore is the part of blob storage the StorageLoader reads from.
type ObjectStore interface {
	ExtractKey(rawURL string) (string, bool)
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// StorageLoader reads images that live in our own bucket straight from the
// store and hands every other URL to Fallback.
type StorageLoader struct {
	Store    ObjectStore
	Fallback ImageLoader
}

// Load resolves src through the store when it belongs to it.
func (l *StorageLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if l.Store != nil {
		if key, ok := l.Store.ExtractKey(src); ok {
			data, _, err := l.Store.Download(ctx, key)
			if err != nil {
				return nil, err
			}
			return decode(data)
		}
	}
	if l.Fallback == nil {
		return nil, fmt.Errorf("canvas: no loader for %s", src)
	}
	return l.Fallback.Load(ctx, src)
}

// decode checks the header against the pixel cap before decoding.
func decode(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("canvas: decode image: %w", err)
	}
	if err := brandimg.CheckConfig(cfg); err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("canvas: decode image: %w", err)
	}
	return img, nil
}
