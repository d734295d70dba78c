// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updater

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dmdirc/dmflags/pkg/compress"
	"github.com/dmdirc/dmflags/pkg/fileutil"
)

// FileInstaller installs a staged payload as installDir/<component name>,
// decompressing it first when its name carries a known compression suffix.
type FileInstaller struct {
	installDir string
}

// NewFileInstaller returns an installer writing into installDir.
func NewFileInstaller(installDir string) *FileInstaller {
	return &FileInstaller{installDir: installDir}
}

func (fi *FileInstaller) CanHandle(r RetrievalResult) bool {
	return r.Path != "" && r.Check.Component != nil
}

// Target returns where the component is installed.
func (fi *FileInstaller) Target(c *Component) string {
	return filepath.Join(fi.installDir, c.Name)
}

func (fi *FileInstaller) Install(ctx context.Context, r RetrievalResult, progress func(float64)) error {
	defer func() {
		if err := os.Remove(r.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove staged update %s: %v", r.Path, err)
		}
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	progress(0)
	payload, err := fi.decompress(r.Path)
	if err != nil {
		return err
	}
	if payload != r.Path {
		defer os.Remove(payload)
	}
	progress(50)

	dst := fi.Target(r.Check.Component)
	same, err := fileutil.Identical(payload, dst)
	if err == nil && same {
		log.Printf("%s is already up to date", dst)
		progress(100)
		return nil
	}
	if err := os.MkdirAll(fi.installDir, 0o755); err != nil {
		return fmt.Errorf("failed to create install dir: %w", err)
	}
	if err := fileutil.CopyFile(payload, dst); err != nil {
		return fmt.Errorf("failed to install %s: %w", r.Check.Component.Name, err)
	}
	progress(100)
	return nil
}

// decompress returns the path of the decompressed payload, which is path
// itself when it is not compressed.
func (fi *FileInstaller) decompress(path string) (string, error) {
	enc, _ := compress.ForFilename(path)
	if enc == "" {
		return path, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	rc, err := compress.NewReader(f, enc)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("failed to read %s payload: %w", enc, err)
	}
	rc = compress.ReadCloser(rc, f)
	defer rc.Close()

	out := path + ".payload"
	if err := fileutil.CopyReader(rc, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return out, nil
}
