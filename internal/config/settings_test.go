package config

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/gertty/internal/paths"
)

func TestInit_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	Init()

	opts := SettingsOptions()
	if opts.Path != paths.DefaultConfigPath {
		t.Errorf("Path = %q, want %q", opts.Path, paths.DefaultConfigPath)
	}
	if opts.Server != "" || opts.Palette != "" || opts.Keymap != "" {
		t.Errorf("expected empty selections, got %+v", opts)
	}
	if got := viper.GetString(KeyLogFormat); got != "text" {
		t.Errorf("log-format = %q, want text", got)
	}
}

func TestInit_Environment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("GERTTY_CONFIG", "/etc/gertty.yaml")
	t.Setenv("GERTTY_SERVER", "staging")
	t.Setenv("GERTTY_PALETTE", "light")
	t.Setenv("GERTTY_KEYMAP", "vi")
	t.Setenv("GERTTY_LOG_FORMAT", "json")

	Init()

	opts := SettingsOptions()
	if opts.Path != "/etc/gertty.yaml" {
		t.Errorf("Path = %q", opts.Path)
	}
	if opts.Server != "staging" {
		t.Errorf("Server = %q", opts.Server)
	}
	if opts.Palette != "light" || opts.Keymap != "vi" {
		t.Errorf("Palette/Keymap = %q/%q", opts.Palette, opts.Keymap)
	}
	if got := viper.GetString(KeyLogFormat); got != "json" {
		t.Errorf("log-format = %q, want json", got)
	}
}

func TestOptions_DocumentPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := Options{}.DocumentPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := home + "/.gertty.yaml"; got != want {
		t.Errorf("DocumentPath() = %q, want %q", got, want)
	}

	got, err = Options{Path: "/srv/gertty.yaml"}.DocumentPath()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/srv/gertty.yaml" {
		t.Errorf("DocumentPath() = %q", got)
	}
}
