// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestForFilename(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		stripped string
	}{
		{"dmflags-1.2.0.zst", "zstd", "dmflags-1.2.0"},
		{"plugin.jar.gz", "gzip", "plugin.jar"},
		{"data.deflate", "deflate", "data"},
		{"plain.bin", "", "plain.bin"},
		{".zst", "", ".zst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, stripped := ForFilename(tt.name)
			if enc != tt.encoding || stripped != tt.stripped {
				t.Errorf("ForFilename(%q) = %q, %q, want %q, %q", tt.name, enc, stripped, tt.encoding, tt.stripped)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	payload := strings.Repeat("/set --server ui.theme dark\n", 64)
	for _, enc := range []string{"zstd", "gzip", "deflate", ""} {
		t.Run(enc, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, enc)
			if err != nil {
				t.Fatalf("NewWriter error: %v", err)
			}
			if _, err := io.WriteString(w, payload); err != nil {
				t.Fatalf("Write error: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close error: %v", err)
			}
			if enc != "" && buf.Len() >= len(payload) {
				t.Errorf("compressed size %d not below %d", buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, enc)
			if err != nil {
				t.Fatalf("NewReader error: %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll error: %v", err)
			}
			if string(got) != payload {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}

func TestNewReaderBadGzip(t *testing.T) {
	if _, err := NewReader(strings.NewReader("not gzip"), "gzip"); err == nil {
		t.Fatal("expected error for invalid gzip header")
	}
}

type closeRecorder struct {
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

func TestReadCloser(t *testing.T) {
	src := &closeRecorder{err: errors.New("source close failed")}
	rc := ReadCloser(io.NopCloser(strings.NewReader("x")), src)
	err := rc.Close()
	if !src.closed {
		t.Error("source not closed")
	}
	if !errors.Is(err, src.err) {
		t.Errorf("Close error = %v, want %v", err, src.err)
	}
}
