// Package export turns rendered documents into self-contained SVG, data
// URIs and raster images.
package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrRasterize is returned when the vector form cannot be decoded into an image.
	ErrRasterize = errors.New("svg could not be rasterized")
	// ErrSurfaceUnavailable is returned when no pixel surface of the requested size can be made.
	ErrSurfaceUnavailable = errors.New("raster surface unavailable")
	// ErrUnsupportedFormat is returned for an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrLogoFetch wraps failures to load a logo for inlining.
	ErrLogoFetch = errors.New("logo fetch failed")
)

const svgURIPrefix = "data:image/svg+xml,"

// SVGDataURI wraps markup in a URL-escaped SVG data URI.
func SVGDataURI(markup string) string {
	return svgURIPrefix + url.PathEscape(markup)
}

// SVGMarkup recovers raw markup from a data URI made by SVGDataURI.
func SVGMarkup(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, svgURIPrefix)
	if !ok {
		return "", fmt.Errorf("not an svg data uri: %.32q", uri)
	}
	return url.PathUnescape(rest)
}

// DataURI base64-encodes data under the given media type.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeDataURI splits a data URI into its media type and payload.
func decodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri has no payload")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if mime == "" {
		mime = "text/plain"
	}
	if isBase64 {
		b, err := base64.StdEncoding.DecodeString(payload)
		return mime, b, err
	}
	s, err := url.PathUnescape(payload)
	return mime, []byte(s), err
}
