// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "settings.toml")

	if err := WriteFile(path, []byte("first"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if err := WriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("WriteFile overwrite error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestCopyFileAndIdentical(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "out", "dst")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	same, err := Identical(src, dst)
	if err != nil {
		t.Fatalf("Identical error: %v", err)
	}
	if same {
		t.Error("Identical reported true for a missing file")
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	same, err = Identical(src, dst)
	if err != nil {
		t.Fatalf("Identical error: %v", err)
	}
	if !same {
		t.Error("Identical reported false after copy")
	}

	if err := os.WriteFile(dst, []byte("changed"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if same, _ := Identical(src, dst); same {
		t.Error("Identical reported true for different contents")
	}

	if err := CopyFile(filepath.Join(dir, "missing"), dst); !os.IsNotExist(err) {
		t.Errorf("CopyFile(missing) error = %v, want not-exist", err)
	}
}
