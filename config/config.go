// Package config provides the run configuration for telegraph2pdf.
// A Config is built once before the run (defaults, optional YAML file,
// environment, then command-line flags) and passed to the pipeline.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aimerneige/telegraph2pdf/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSlugs          = errors.New("at least one article slug is required")
	ErrInvalidBaseURL   = errors.New("base_url must be an absolute http(s) URL")
	ErrMissingCacheDir  = errors.New("cache_dir is required")
	ErrMissingOutputDir = errors.New("output_dir is required")
	ErrInvalidDPI       = errors.New("dpi must be positive")
	ErrInvalidTimeout   = errors.New("timeout must be positive")
	ErrInvalidLogLevel  = errors.New("log_level must be one of: debug, info, warn, error")
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "TELEGRAPH2PDF_"

// Config is the complete run configuration.
type Config struct {
	BaseURL    string        `yaml:"base_url"`
	CacheDir   string        `yaml:"cache_dir"`
	OutputDir  string        `yaml:"output_dir"`
	SidecarDir string        `yaml:"sidecar_dir"`
	Slugs      []string      `yaml:"slugs"`
	ClearCache bool          `yaml:"clear_cache"`
	HashNames  bool          `yaml:"hash_names"`
	Markdown   bool          `yaml:"markdown"`
	DPI        float64       `yaml:"dpi"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	LogLevel   string        `yaml:"log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		BaseURL:   "https://telegra.ph",
		CacheDir:  "./cache",
		OutputDir: ".",
		DPI:       100,
		Timeout:   30 * time.Second,
		LogLevel:  "info",
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file into the process environment if one exists.
// Variables that are already set win.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides fields from TELEGRAPH2PDF_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := lookup("CACHE_DIR"); ok {
		c.CacheDir = v
	}
	if v, ok := lookup("OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := lookup("SIDECAR_DIR"); ok {
		c.SidecarDir = v
	}
	if v, ok := lookup("SLUGS"); ok {
		c.Slugs = splitList(v)
	}
	if v, ok := lookup("USER_AGENT"); ok {
		c.UserAgent = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}

	for name, dst := range map[string]*bool{
		"CLEAR_CACHE": &c.ClearCache,
		"HASH_NAMES":  &c.HashNames,
		"MARKDOWN":    &c.Markdown,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}

	if v, ok := lookup("DPI"); ok {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sDPI: %w", EnvPrefix, err)
		}
		c.DPI = dpi
	}
	if v, ok := lookup("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if c.CacheDir == "" {
		return ErrMissingCacheDir
	}
	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}
	if len(c.Slugs) == 0 {
		return ErrNoSlugs
	}
	if c.DPI <= 0 {
		return ErrInvalidDPI
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// ArticleURL returns the page URL of slug.
func (c *Config) ArticleURL(slug string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(slug, "/")
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
