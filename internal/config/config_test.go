package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Width != 60 || c.Height != 25 {
		t.Errorf("expected 60x25, got %dx%d", c.Width, c.Height)
	}
	if c.FPS != 60 {
		t.Errorf("expected fps 60, got %d", c.FPS)
	}
	if c.Backend != BackendTerminal {
		t.Errorf("expected terminal backend, got %q", c.Backend)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width"},
		{"negative height", func(c *Config) { c.Height = -1 }, "height"},
		{"negative fps", func(c *Config) { c.FPS = -5 }, "fps"},
		{"bad backend", func(c *Config) { c.Backend = "gl" }, "backend"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"zero timeout", func(c *Config) { c.ReleaseTimeout = 0 }, "release_timeout"},
		{"zero scale", func(c *Config) { c.Canvas.Scale = 0 }, "canvas.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			err := c.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ve.Field)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	c := Default()
	c.Width = 0
	c.Height = 0
	err := c.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("expected 2 errors, got %d", n)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key   string
		value any
		check func(Config) bool
	}{
		{"title", "demo", func(c Config) bool { return c.Title == "demo" }},
		{"width", int64(80), func(c Config) bool { return c.Width == 80 }},
		{"height", "40", func(c Config) bool { return c.Height == 40 }},
		{"fps", 30, func(c Config) bool { return c.FPS == 30 }},
		{"fps", float64(15), func(c Config) bool { return c.FPS == 15 }},
		{"backend", "canvas", func(c Config) bool { return c.Backend == BackendCanvas }},
		{"release_timeout", "250ms", func(c Config) bool { return c.ReleaseTimeout == 250*time.Millisecond }},
		{"release_timeout", int64(750), func(c Config) bool { return c.ReleaseTimeout == 750*time.Millisecond }},
		{"canvas.snapshot", "out.png", func(c Config) bool { return c.Canvas.Snapshot == "out.png" }},
		{"canvas.scale", uint64(3), func(c Config) bool { return c.Canvas.Scale == 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := Default()
			if err := c.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%s) failed: %v", tt.key, err)
			}
			if !tt.check(c) {
				t.Errorf("Set(%s, %v) not applied: %+v", tt.key, tt.value, c)
			}
		})
	}
}

func TestSetErrors(t *testing.T) {
	c := Default()
	if err := c.Set("colour", "red"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}

	bad := []struct {
		key   string
		value any
	}{
		{"width", "wide"},
		{"fps", 1.5},
		{"title", 42},
		{"release_timeout", "soon"},
		{"canvas.scale", true},
	}
	for _, tt := range bad {
		var ve *ValidationError
		if err := c.Set(tt.key, tt.value); !errors.As(err, &ve) {
			t.Errorf("Set(%s, %v): expected ValidationError, got %v", tt.key, tt.value, err)
		} else if ve.Field != tt.key {
			t.Errorf("expected field %s, got %s", tt.key, ve.Field)
		}
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 10 {
		t.Errorf("expected 10 keys, got %d", len(keys))
	}
	for _, k := range keys {
		if _, ok := lookupSetting(k); !ok {
			t.Errorf("key %s has no setting", k)
		}
	}
}

func TestFlatten(t *testing.T) {
	out := make(map[string]any)
	flatten("", map[string]any{
		"fps": 30,
		"canvas": map[string]any{
			"scale": 2,
		},
	}, out)
	if out["fps"] != 30 || out["canvas.scale"] != 2 {
		t.Errorf("unexpected flattened map %v", out)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 keys, got %d", len(out))
	}
}

func TestRestart(t *testing.T) {
	a := Default()
	b := a
	b.FPS = 30
	if keys := a.Restart(b); len(keys) != 0 {
		t.Errorf("fps change should not need a restart, got %v", keys)
	}

	b.Width = 100
	b.Canvas.Scale = 2
	keys := a.Restart(b)
	if len(keys) != 2 || keys[0] != "width" || keys[1] != "canvas.scale" {
		t.Errorf("expected [width canvas.scale], got %v", keys)
	}
}

func TestErrorMessages(t *testing.T) {
	ve := &ValidationError{Field: "fps", Reason: "must not be negative"}
	if ve.Error() != "invalid fps: must not be negative" {
		t.Errorf("unexpected message %q", ve.Error())
	}
	inner := errors.New("boom")
	pe := &ParseError{Path: "wobl.toml", Err: inner}
	if !errors.Is(pe, inner) {
		t.Error("ParseError should unwrap")
	}
}
