package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/cristianadrielbraun/qrframe/internal/assets"
)

// maxLogoBytes caps how much of a logo is read.
const maxLogoBytes = 4 << 20

// Fetcher loads logo references: data URIs, built-in assets, http(s) URLs
// and files under AssetDir.
type Fetcher struct {
	Client   *http.Client
	AssetDir string
}

// Fetch returns the bytes behind src and their detected media type.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, string, error) {
	data, err := f.load(ctx, src)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrLogoFetch, shorten(src), err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: %s: empty body", ErrLogoFetch, shorten(src))
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") && !mt.Is("image/svg+xml") {
		return nil, "", fmt.Errorf("%w: %s: not an image (%s)", ErrLogoFetch, shorten(src), mt.String())
	}
	// drop parameters such as "; charset=utf-8"
	mime, _, _ := strings.Cut(mt.String(), ";")
	return data, mime, nil
}

// Inline returns src as a base64 data URI.
func (f *Fetcher) Inline(ctx context.Context, src string) (string, error) {
	data, mime, err := f.Fetch(ctx, src)
	if err != nil {
		return "", err
	}
	return DataURI(mime, data), nil
}

func (f *Fetcher) load(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		_, data, err := decodeDataURI(src)
		return data, err
	case strings.HasPrefix(src, "builtin:"):
		data, ok := assets.Lookup(src)
		if !ok {
			return nil, fmt.Errorf("no built-in asset")
		}
		return data, nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return f.get(ctx, src)
	default:
		return f.file(src)
	}
}

func (f *Fetcher) get(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
}

func (f *Fetcher) file(src string) ([]byte, error) {
	if f.AssetDir == "" {
		return nil, fmt.Errorf("local logos are disabled")
	}
	name := filepath.Clean("/" + strings.TrimPrefix(src, "/"))
	p := filepath.Join(f.AssetDir, name)
	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxLogoBytes))
}

func shorten(s string) string {
	if len(s) > 64 {
		return s[:61] + "..."
	}
	return s
}
