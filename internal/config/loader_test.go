package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// envMap returns a lookup backed by a map instead of the process env.
func envMap(m map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	l := NewLoader(WithDotEnv(""), WithLookup(envMap(nil)))
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wobl.toml", `
title = "toml demo"
width = 80
fps = 30
release_timeout = "250ms"

[canvas]
snapshot = "frame.png"
scale = 2
`)
	cfg, err := NewLoader(WithFile(path), WithDotEnv(""), WithLookup(envMap(nil))).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Title != "toml demo" || cfg.Width != 80 || cfg.FPS != 30 {
		t.Errorf("top-level values not applied: %+v", cfg)
	}
	if cfg.Height != 25 {
		t.Errorf("unset height should keep default, got %d", cfg.Height)
	}
	if cfg.ReleaseTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms release timeout, got %v", cfg.ReleaseTimeout)
	}
	if cfg.Canvas.Snapshot != "frame.png" || cfg.Canvas.Scale != 2 {
		t.Errorf("canvas table not applied: %+v", cfg.Canvas)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wobl.yaml", `
backend: canvas
height: 10
log_level: debug
canvas:
  scale: 3
`)
	cfg, err := NewLoader(WithFile(path), WithDotEnv(""), WithLookup(envMap(nil))).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendCanvas || cfg.Height != 10 || cfg.LogLevel != "debug" {
		t.Errorf("values not applied: %+v", cfg)
	}
	if cfg.Canvas.Scale != 3 {
		t.Errorf("expected scale 3, got %d", cfg.Canvas.Scale)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	load := func(path string) error {
		_, err := NewLoader(WithFile(path), WithDotEnv(""), WithLookup(envMap(nil))).Load()
		return err
	}

	if err := load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	ini := writeFile(t, dir, "wobl.ini", "fps=1")
	if err := load(ini); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	broken := writeFile(t, dir, "broken.toml", "fps = = 3")
	var pe *ParseError
	if err := load(broken); !errors.As(err, &pe) {
		t.Errorf("expected ParseError, got %v", err)
	} else if pe.Path != broken {
		t.Errorf("expected path %s, got %s", broken, pe.Path)
	}

	unknown := writeFile(t, dir, "unknown.toml", "colour = \"red\"")
	if err := load(unknown); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}

	invalid := writeFile(t, dir, "invalid.toml", "width = 0")
	var ve *ValidationError
	if err := load(invalid); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestLoadEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wobl.toml", "fps = 30\ntitle = \"file\"\n")
	env := map[string]string{
		"WOBL_FPS":          "45",
		"WOBL_CANVAS_SCALE": "4",
		"OTHER_FPS":         "1",
	}
	cfg, err := NewLoader(WithFile(path), WithDotEnv(""), WithLookup(envMap(env))).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FPS != 45 {
		t.Errorf("environment should override file, got fps %d", cfg.FPS)
	}
	if cfg.Title != "file" {
		t.Errorf("file value should survive, got %q", cfg.Title)
	}
	if cfg.Canvas.Scale != 4 {
		t.Errorf("expected scale 4, got %d", cfg.Canvas.Scale)
	}

	env["WOBL_WIDTH"] = "wide"
	_, err = NewLoader(WithDotEnv(""), WithLookup(envMap(env))).Load()
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "width" {
		t.Errorf("expected width ValidationError, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := writeFile(t, dir, ".env", "WOBL_TITLE=dotenv\nWOBL_FPS=12\n")
	env := map[string]string{"WOBL_FPS": "24"}

	cfg, err := NewLoader(WithDotEnv(dotenv), WithLookup(envMap(env))).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Title != "dotenv" {
		t.Errorf("expected title from .env, got %q", cfg.Title)
	}
	if cfg.FPS != 24 {
		t.Errorf("real environment should win over .env, got %d", cfg.FPS)
	}

	missing := filepath.Join(dir, "nope.env")
	if _, err := NewLoader(WithDotEnv(missing), WithLookup(envMap(nil))).Load(); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestEnvName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"fps", "WOBL_FPS"},
		{"log_level", "WOBL_LOG_LEVEL"},
		{"canvas.snapshot", "WOBL_CANVAS_SNAPSHOT"},
	}
	for _, tt := range tests {
		if got := EnvName(DefaultEnvPrefix, tt.key); got != tt.want {
			t.Errorf("EnvName(%s) = %s, want %s", tt.key, got, tt.want)
		}
	}
	if got := EnvName("APP_", "fps"); got != "APP_FPS" {
		t.Errorf("expected custom prefix, got %s", got)
	}
}
