package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// setting binds a dotted key to a Config field.
type setting struct {
	key   string
	apply func(c *Config, v any) error
}

var settings = []setting{
	{"title", stringSetting(func(c *Config) *string { return &c.Title })},
	{"width", intSetting(func(c *Config) *int { return &c.Width })},
	{"height", intSetting(func(c *Config) *int { return &c.Height })},
	{"fps", intSetting(func(c *Config) *int { return &c.FPS })},
	{"backend", stringSetting(func(c *Config) *string { return &c.Backend })},
	{"log_level", stringSetting(func(c *Config) *string { return &c.LogLevel })},
	{"log_file", stringSetting(func(c *Config) *string { return &c.LogFile })},
	{"release_timeout", durationSetting(func(c *Config) *time.Duration { return &c.ReleaseTimeout })},
	{"canvas.snapshot", stringSetting(func(c *Config) *string { return &c.Canvas.Snapshot })},
	{"canvas.scale", intSetting(func(c *Config) *int { return &c.Canvas.Scale })},
}

func lookupSetting(key string) (setting, bool) {
	for _, s := range settings {
		if s.key == key {
			return s, true
		}
	}
	return setting{}, false
}

// Keys returns every setting key in declaration order.
func Keys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.key
	}
	return keys
}

// Set assigns a value to the setting named by key. Strings are parsed
// for numeric and duration settings.
func (c *Config) Set(key string, v any) error {
	s, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := s.apply(c, v); err != nil {
		return &ValidationError{Field: key, Reason: err.Error()}
	}
	return nil
}

// apply sets every key of a flattened map, in sorted order so errors are
// reported deterministically.
func (c *Config) apply(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// flatten turns nested tables into dotted keys.
func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

func stringSetting(field func(*Config) *string) func(*Config, any) error {
	return func(c *Config, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		*field(c) = s
		return nil
	}
}

func intSetting(field func(*Config) *int) func(*Config, any) error {
	return func(c *Config, v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// durationSetting accepts Go duration strings ("250ms") or integer
// milliseconds.
func durationSetting(field func(*Config) *time.Duration) func(*Config, any) error {
	return func(c *Config, v any) error {
		if s, ok := v.(string); ok {
			d, err := time.ParseDuration(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			*field(c) = d
			return nil
		}
		n, err := toInt(v)
		if err != nil {
			return err
		}
		*field(c) = time.Duration(n) * time.Millisecond
		return nil
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%d out of range", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
