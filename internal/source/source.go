// Package source opens the byte sources a Buffer is filled from: stdin,
// local files and http(s) URLs, decompressing .gz, .zst and .br on the fly.
package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/Alfex4936/textsplit/internal/log"
	"github.com/Alfex4936/textsplit/internal/net"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// Compression is a supported transparent decompression.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	Brotli
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Brotli:
		return "brotli"
	default:
		return "none"
	}
}

// Detect picks the decompression from name's extension. For URLs only the
// path counts, not the query.
func Detect(name string) Compression {
	p := name
	if IsURL(name) {
		if u, err := url.Parse(name); err == nil {
			p = u.Path
		}
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".br":
		return Brotli
	default:
		return None
	}
}

// IsURL reports whether name is fetched over HTTP.
func IsURL(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open returns a reader over the decompressed contents of name. Closing it
// closes every layer.
func Open(ctx context.Context, name string) (io.ReadCloser, error) {
	logger := log.FromContextOrDefault(ctx).With("source", name)

	var raw io.ReadCloser
	switch {
	case name == Stdin:
		raw = io.NopCloser(os.Stdin)
	case IsURL(name):
		body, err := net.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		raw = body
	default:
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		raw = f
	}

	c := Detect(name)
	logger.Debugw("opened source", "compression", c.String())
	rc, err := Decompress(raw, c)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("source: %s: %w", name, err)
	}
	return rc, nil
}

// Decompress layers the decoder for c over rc.
func Decompress(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &stack{Reader: zr, closers: []io.Closer{rc, zr}}, nil
	case Zstd:
		zr, err := zstd.NewReader(rc)
		if err != nil {
			return nil, err
		}
		dec := zr.IOReadCloser()
		return &stack{Reader: dec, closers: []io.Closer{rc, dec}}, nil
	case Brotli:
		return &stack{Reader: brotli.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

// stack reads from the outermost decoder and closes layers inside-out.
type stack struct {
	io.Reader
	closers []io.Closer
}

func (s *stack) Close() error {
	var merr *multierror.Error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
