// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updater

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmdirc/dmflags/pkg/fileutil"
	"github.com/google/uuid"
)

// FileRetriever stages updates published as local files or file:// URLs.
type FileRetriever struct {
	stagingDir string
}

// NewFileRetriever returns a retriever that copies payloads into stagingDir.
func NewFileRetriever(stagingDir string) *FileRetriever {
	return &FileRetriever{stagingDir: stagingDir}
}

func (fr *FileRetriever) CanHandle(r CheckResult) bool {
	_, ok := localPath(r.URL)
	return ok
}

func (fr *FileRetriever) Retrieve(ctx context.Context, r CheckResult, progress func(float64)) (RetrievalResult, error) {
	src, ok := localPath(r.URL)
	if !ok {
		return RetrievalResult{}, fmt.Errorf("%w: %s", ErrNoStrategy, r.URL)
	}
	if err := ctx.Err(); err != nil {
		return RetrievalResult{}, err
	}
	if err := os.MkdirAll(fr.stagingDir, 0o755); err != nil {
		return RetrievalResult{}, fmt.Errorf("failed to create staging dir: %w", err)
	}
	dst := filepath.Join(fr.stagingDir, uuid.New().String()+"-"+filepath.Base(src))
	progress(0)
	if err := fileutil.CopyFile(src, dst); err != nil {
		return RetrievalResult{}, fmt.Errorf("failed to stage %s: %w", src, err)
	}
	progress(100)
	return RetrievalResult{Check: r, Path: dst}, nil
}

// localPath returns the filesystem path for a file:// URL or a plain path.
func localPath(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if !strings.Contains(s, "://") {
		return s, true
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return u.Path, true
}
