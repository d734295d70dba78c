// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fileutil holds small helpers for writing files in place safely.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes data to path by writing a temporary file next to it and
// renaming it into place, so readers never observe a partial file. Missing
// parent directories are created.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// CopyFile copies a file from src to dst. It is able to overwrite existing
// files that are in use. It does this by writing to a temporary file and then
// moving it into place.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcStat, err := srcFile.Stat()
	if err != nil {
		return err
	}
	return CopyReader(srcFile, dst, srcStat.Mode())
}

// CopyReader writes everything read from r to dst, replacing dst atomically.
func CopyReader(r io.Reader, dst string, perm os.FileMode) error {
	return writeAtomic(dst, perm, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}

func writeAtomic(dst string, perm os.FileMode, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	// We write to a temporary file and then move it into place to avoid issues
	// with the destination file already existing / being in use.
	tempDst := dst + ".tmp"
	dstFile, err := os.OpenFile(tempDst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			dstFile.Close()
			os.Remove(tempDst)
		}
	}()

	if err = write(dstFile); err != nil {
		return err
	}
	if err = dstFile.Sync(); err != nil {
		return err
	}
	if err = dstFile.Close(); err != nil {
		return err
	}
	return os.Rename(tempDst, dst)
}

// Identical reports whether the contents of two files are identical.
func Identical(file1, file2 string) (bool, error) {
	f1, err := os.Open(file1)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open file1: %w", err)
	}
	defer f1.Close()

	f2, err := os.Open(file2)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open file2: %w", err)
	}
	defer f2.Close()

	hasher1 := sha256.New()
	hasher2 := sha256.New()
	if _, err := io.Copy(hasher1, f1); err != nil {
		return false, fmt.Errorf("failed to hash file1: %w", err)
	}
	if _, err := io.Copy(hasher2, f2); err != nil {
		return false, fmt.Errorf("failed to hash file2: %w", err)
	}

	return bytes.Equal(hasher1.Sum(nil), hasher2.Sum(nil)), nil
}
