package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is appended to catalog paths given without one
const DefaultExtension = ".yml"

type loadConfig struct {
	extension   string
	searchPaths []string
	loaderOpts  []Option
}

// LoadOption configures Load and Resolve
type LoadOption func(*loadConfig)

// WithDefaultExtension overrides the extension appended to bare paths
func WithDefaultExtension(ext string) LoadOption {
	return func(c *loadConfig) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.extension = ext
	}
}

// WithSearchPaths adds directories relative catalog paths are looked up in
// when they do not exist relative to the working directory
func WithSearchPaths(dirs ...string) LoadOption {
	return func(c *loadConfig) {
		c.searchPaths = append(c.searchPaths, dirs...)
	}
}

// WithLoaderOptions passes options through to the Loader
func WithLoaderOptions(opts ...Option) LoadOption {
	return func(c *loadConfig) {
		c.loaderOpts = append(c.loaderOpts, opts...)
	}
}

func newLoadConfig(opts []LoadOption) *loadConfig {
	cfg := &loadConfig{extension: DefaultExtension}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Resolve turns a catalog reference into a file path: the default
// extension is appended when the path has none, and relative paths that do
// not exist are looked up in the search paths in order
func Resolve(path string, opts ...LoadOption) string {
	return newLoadConfig(opts).resolve(path)
}

func (c *loadConfig) resolve(path string) string {
	if filepath.Ext(path) == "" {
		path += c.extension
	}

	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}

	for _, dir := range c.searchPaths {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return path
}

// Load reads a catalog file and builds every item in it
func Load(path string, opts ...LoadOption) (*Catalog, error) {
	cfg := newLoadConfig(opts)
	resolved := cfg.resolve(path)

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	cat, err := LoadBytes(data, cfg.loaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resolved, err)
	}
	return cat, nil
}

// LoadBytes decodes YAML catalog source and builds every item in it
func LoadBytes(data []byte, opts ...Option) (*Catalog, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NewLoader(opts...).Parse(doc)
}
