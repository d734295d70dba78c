// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autocmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmdirc/dmflags/pkg/fileutil"
	"gopkg.in/yaml.v3"
)

// YAMLStore keeps auto-commands in a YAML file.
type YAMLStore struct {
	path string
}

type yamlDoc struct {
	AutoCommands []AutoCommand `yaml:"autocommands"`
}

// NewYAMLStore returns a store backed by the file at path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// ReadAll returns the stored auto-commands. A missing file holds none.
func (s *YAMLStore) ReadAll() ([]AutoCommand, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return doc.AutoCommands, nil
}

// WriteAll replaces the stored auto-commands.
func (s *YAMLStore) WriteAll(cmds []AutoCommand) error {
	content, err := yaml.Marshal(yamlDoc{AutoCommands: cmds})
	if err != nil {
		return err
	}
	return fileutil.WriteFile(s.path, content, 0o600)
}
