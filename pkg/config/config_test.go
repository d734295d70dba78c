// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dmdirc/dmflags/pkg/cmdargs"
	"github.com/google/go-cmp/cmp"
)

func TestProviderSetUnset(t *testing.T) {
	p := NewProvider("test")
	p.SetOption("ui", "theme", "dark")
	p.SetOption("ui", "font", "mono")
	p.SetOption("general", "quitmessage", "bye")

	if v, ok := p.Option("ui", "theme"); !ok || v != "dark" {
		t.Errorf("Option(ui, theme) = %q, %v, want dark, true", v, ok)
	}
	if got, want := p.Domains(), []string{"general", "ui"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Domains() = %v, want %v", got, want)
	}

	p.UnsetOption("general", "quitmessage")
	p.UnsetOption("missing", "option")
	if got, want := p.Domains(), []string{"ui"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Domains() after unset = %v, want %v", got, want)
	}

	opts := p.Options("ui")
	opts["theme"] = "changed"
	if v, _ := p.Option("ui", "theme"); v != "dark" {
		t.Errorf("Options returned a live map: theme = %q", v)
	}
}

func TestProviderSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global.toml")
	p, err := LoadProvider("global", path)
	if err != nil {
		t.Fatalf("LoadProvider(missing) error: %v", err)
	}
	if len(p.Domains()) != 0 {
		t.Fatalf("missing file loaded domains %v", p.Domains())
	}
	p.SetOption("ui", "theme", "dark")
	p.SetOption("plugin.logging", "dir.path", "/tmp/logs")
	if err := p.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := LoadProvider("global", path)
	if err != nil {
		t.Fatalf("LoadProvider error: %v", err)
	}
	if v, ok := loaded.Option("plugin.logging", "dir.path"); !ok || v != "/tmp/logs" {
		t.Errorf("Option(plugin.logging, dir.path) = %q, %v", v, ok)
	}
	if v, ok := loaded.Option("ui", "theme"); !ok || v != "dark" {
		t.Errorf("Option(ui, theme) = %q, %v", v, ok)
	}
}

func TestLoadProviderInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := LoadProvider("bad", path); err == nil {
		t.Fatal("LoadProvider succeeded on invalid toml")
	}
}

func TestAggregate(t *testing.T) {
	channel := NewProvider("channel")
	server := NewProvider("server")
	global := NewProvider("global")
	channel.SetOption("ui", "theme", "channel")
	server.SetOption("ui", "theme", "server")
	server.SetOption("ui", "font", "server")
	global.SetOption("general", "nick", "global")

	a := NewAggregate(channel, server, global)
	if v, _ := a.Option("ui", "theme"); v != "channel" {
		t.Errorf("Option(ui, theme) = %q, want channel", v)
	}
	if v, _ := a.Option("ui", "font"); v != "server" {
		t.Errorf("Option(ui, font) = %q, want server", v)
	}
	if _, ok := a.Option("ui", "missing"); ok {
		t.Error("Option(ui, missing) found")
	}
	if diff := cmp.Diff([]string{"general", "ui"}, a.Domains()); diff != "" {
		t.Errorf("Domains() mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"theme": "channel", "font": "server"}
	if diff := cmp.Diff(want, a.Options("ui")); diff != "" {
		t.Errorf("Options(ui) mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentities(t *testing.T) {
	dir := t.TempDir()
	ids, err := OpenIdentities(dir, map[string]map[string]string{
		"ui": {"theme": "default", "font": "default"},
	})
	if err != nil {
		t.Fatalf("OpenIdentities error: %v", err)
	}
	ids.Global().SetOption("ui", "theme", "global")
	server, err := ids.Server("libera")
	if err != nil {
		t.Fatalf("Server error: %v", err)
	}
	server.SetOption("ui", "font", "server")
	channel, err := ids.Channel("libera", "#dmdirc")
	if err != nil {
		t.Fatalf("Channel error: %v", err)
	}
	channel.SetOption("ui", "theme", "channel")

	if again, _ := ids.Server("libera"); again != server {
		t.Error("Server returned a different provider on second call")
	}

	view, err := ids.View("libera", "#dmdirc")
	if err != nil {
		t.Fatalf("View error: %v", err)
	}
	want := map[string]string{"theme": "channel", "font": "server"}
	if diff := cmp.Diff(want, view.Options("ui")); diff != "" {
		t.Errorf("channel view mismatch (-want +got):\n%s", diff)
	}
	view, err = ids.View("", "")
	if err != nil {
		t.Fatalf("View error: %v", err)
	}
	want = map[string]string{"theme": "global", "font": "default"}
	if diff := cmp.Diff(want, view.Options("ui")); diff != "" {
		t.Errorf("global view mismatch (-want +got):\n%s", diff)
	}

	if err := ids.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	reopened, err := OpenIdentities(dir, nil)
	if err != nil {
		t.Fatalf("OpenIdentities error: %v", err)
	}
	view, err = reopened.View("libera", "#dmdirc")
	if err != nil {
		t.Fatalf("View error: %v", err)
	}
	want = map[string]string{"theme": "channel", "font": "server"}
	if diff := cmp.Diff(want, view.Options("ui")); diff != "" {
		t.Errorf("reloaded view mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "channels", "libera", "%23dmdirc.toml")); err != nil {
		t.Errorf("channel file not written: %v", err)
	}
	if _, ok := reopened.Defaults().Option("ui", "theme"); ok {
		t.Error("defaults were persisted")
	}
}

func TestIdentitiesInMemory(t *testing.T) {
	ids, err := OpenIdentities("", nil)
	if err != nil {
		t.Fatalf("OpenIdentities error: %v", err)
	}
	ids.Global().SetOption("a", "b", "c")
	if err := ids.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := ids.Server(""); err == nil {
		t.Error("Server(\"\") succeeded")
	}
	if _, err := ids.Channel("net", ""); err == nil {
		t.Error("Channel(net, \"\") succeeded")
	}
}

func TestLoadClient(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	c, err := LoadClient(path)
	if err != nil {
		t.Fatalf("LoadClient(missing) error: %v", err)
	}
	chars, err := c.Chars()
	if err != nil {
		t.Fatalf("Chars error: %v", err)
	}
	if chars != cmdargs.DefaultChars {
		t.Errorf("Chars() = %+v, want defaults", chars)
	}
	if c.Updates.Channel != "none" {
		t.Errorf("Updates.Channel = %q, want none", c.Updates.Channel)
	}
	if c.AutoCommands != filepath.Join(dir, "autocommands.yaml") {
		t.Errorf("AutoCommands = %q", c.AutoCommands)
	}

	content := strings.Join([]string{
		`command_char = "!"`,
		`silence_char = "~"`,
		`autocommands = "/etc/dmflags/auto.yaml"`,
		`[updates]`,
		`channel = "stable"`,
		`manifest = "manifest.toml"`,
		`disabled = ["plugin-foo"]`,
		`[defaults.ui]`,
		`theme = "dark"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	c, err = LoadClient(path)
	if err != nil {
		t.Fatalf("LoadClient error: %v", err)
	}
	chars, _ = c.Chars()
	if chars.Command != '!' || chars.Silence != '~' {
		t.Errorf("Chars() = %+v", chars)
	}
	if c.AutoCommands != "/etc/dmflags/auto.yaml" {
		t.Errorf("AutoCommands = %q", c.AutoCommands)
	}
	if c.Updates.Manifest != filepath.Join(dir, "manifest.toml") {
		t.Errorf("Updates.Manifest = %q", c.Updates.Manifest)
	}
	if diff := cmp.Diff([]string{"plugin-foo"}, c.Updates.Disabled); diff != "" {
		t.Errorf("Updates.Disabled mismatch (-want +got):\n%s", diff)
	}
	if c.Defaults["ui"]["theme"] != "dark" {
		t.Errorf("Defaults = %v", c.Defaults)
	}

	out := filepath.Join(dir, "saved", "config.toml")
	if err := c.Save(out); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	saved, err := LoadClient(out)
	if err != nil {
		t.Fatalf("LoadClient(saved) error: %v", err)
	}
	if saved.Updates.Channel != "stable" || saved.CommandChar != "!" {
		t.Errorf("saved config = %+v", saved)
	}
}

func TestLoadClientInvalidChars(t *testing.T) {
	tests := []string{
		`command_char = "//"`,
		`command_char = "."`,
	}
	for _, content := range tests {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}
		if _, err := LoadClient(path); err == nil {
			t.Errorf("LoadClient(%q) succeeded, want error", content)
		}
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfig, "/custom/config.toml")
	if got := DefaultPath(); got != "/custom/config.toml" {
		t.Errorf("DefaultPath() = %q", got)
	}
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", "/home/user")
	if got, want := DefaultPath(), filepath.Join("/home/user", ".dmflags", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
