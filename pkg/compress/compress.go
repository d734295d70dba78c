// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var extensions = []struct {
	ext      string
	encoding string
}{
	{".zst", "zstd"},
	{".gz", "gzip"},
	{".deflate", "deflate"},
}

// ForFilename returns the encoding implied by name's extension and name with
// that extension removed. Names without a known extension return an empty
// encoding and name unchanged.
func ForFilename(name string) (encoding, stripped string) {
	for _, e := range extensions {
		if base, ok := strings.CutSuffix(name, e.ext); ok && base != "" {
			return e.encoding, base
		}
	}
	return "", name
}

// NewReader returns a reader that decompresses r using encoding. Closing it
// releases the decompressor but not r.
func NewReader(r io.Reader, encoding string) (io.ReadCloser, error) {
	var (
		reader io.ReadCloser
		err    error
	)
	switch encoding {
	case "gzip":
		reader, err = gzip.NewReader(r)
	case "deflate":
		reader = flate.NewReader(r)
	case "zstd":
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(r)
		if err == nil {
			reader = zr.IOReadCloser()
		}
	default:
		// Unsupported or identity encoding - leave data as is
		return io.NopCloser(r), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor for %s: %w", encoding, err)
	}
	return reader, nil
}

// NewWriter returns a writer that compresses into w using encoding. The
// caller must Close it to flush the compressed stream; w is not closed.
func NewWriter(w io.Writer, encoding string) (io.WriteCloser, error) {
	var (
		writer io.WriteCloser
		err    error
	)
	switch encoding {
	case "zstd":
		writer, err = zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	case "gzip":
		writer = gzip.NewWriter(w)
	case "deflate":
		writer, err = flate.NewWriter(w, flate.DefaultCompression)
	default:
		return nopWriteCloser{w}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor for %s: %w", encoding, err)
	}
	return writer, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// ReadCloser pairs a decompressing reader with the source it reads from so
// that closing it closes both.
func ReadCloser(r io.ReadCloser, src io.Closer) io.ReadCloser {
	return &closeWrapper{ReadCloser: r, onClose: src.Close}
}

// closeWrapper wraps an io.ReadCloser and calls an additional function on Close.
type closeWrapper struct {
	io.ReadCloser
	onClose func() error
}

func (cw *closeWrapper) Close() error {
	err1 := cw.ReadCloser.Close()
	err2 := cw.onClose()
	return errors.Join(err1, err2)
}
