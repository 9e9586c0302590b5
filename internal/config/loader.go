package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix prefixes environment variables read by the loader.
const DefaultEnvPrefix = "WOBL_"

// Loader builds a Config from defaults, a config file, a .env file and
// the environment.
type Loader struct {
	path   string
	dotenv string
	prefix string
	lookup func(string) (string, bool)

	debounce time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFile sets the config file. The format follows the extension:
// .toml, or .yaml / .yml. An empty path skips the file layer.
func WithFile(path string) LoaderOption {
	return func(l *Loader) {
		l.path = path
	}
}

// WithDotEnv sets the .env file. A missing file is not an error.
// An empty path skips the layer.
func WithDotEnv(path string) LoaderOption {
	return func(l *Loader) {
		l.dotenv = path
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithLookup replaces os.LookupEnv, mainly for tests.
func WithLookup(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.lookup = fn
		}
	}
}

// WithDebounce sets how long Watch waits for writes to settle before
// reloading.
func WithDebounce(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.debounce = d
		}
	}
}

// NewLoader creates a loader that reads .env from the working directory
// and WOBL_* variables from the process environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		dotenv:   ".env",
		prefix:   DefaultEnvPrefix,
		lookup:   os.LookupEnv,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the config file path.
func (l *Loader) Path() string {
	return l.path
}

// Load applies every layer over the defaults and validates the result.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	if l.path != "" {
		values, err := ReadFile(l.path)
		if err != nil {
			return cfg, err
		}
		if err := cfg.apply(values); err != nil {
			return cfg, fmt.Errorf("%s: %w", l.path, err)
		}
	}

	lookup, err := l.envLookup()
	if err != nil {
		return cfg, err
	}
	for _, key := range Keys() {
		name := EnvName(l.prefix, key)
		if v, ok := lookup(name); ok {
			if err := cfg.Set(key, v); err != nil {
				return cfg, fmt.Errorf("%s: %w", name, err)
			}
		}
	}

	return cfg, cfg.Validate()
}

// envLookup layers the .env file under the real environment.
func (l *Loader) envLookup() (func(string) (string, bool), error) {
	if l.dotenv == "" {
		return l.lookup, nil
	}
	dot, err := godotenv.Read(l.dotenv)
	if err != nil {
		if os.IsNotExist(err) {
			return l.lookup, nil
		}
		return nil, &ParseError{Path: l.dotenv, Err: err}
	}
	return func(name string) (string, bool) {
		if v, ok := l.lookup(name); ok {
			return v, true
		}
		v, ok := dot[name]
		return v, ok
	}, nil
}

// EnvName returns the environment variable for a setting key,
// e.g. "canvas.scale" becomes WOBL_CANVAS_SCALE.
func EnvName(prefix, key string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ReadFile parses a TOML or YAML config file into flattened dotted keys.
func ReadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	values := make(map[string]any, len(raw))
	flatten("", raw, values)
	return values, nil
}
