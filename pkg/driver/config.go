package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the run configuration looked up next to programs.
const ConfigFileName = "calc.yml"

// ErrConfigNotFound is returned when no calc.yml exists up the directory tree.
var ErrConfigNotFound = errors.New("calc.yml not found")

var variableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config represents the parsed contents of calc.yml.
type Config struct {
	Path         string
	Name         string
	Entry        string
	Globals      map[string]float64
	Strict       bool
	MaxCallDepth int
	LogLevel     zerolog.Level
}

type configFile struct {
	Name         string             `yaml:"name"`
	Entry        string             `yaml:"entry"`
	Globals      map[string]float64 `yaml:"globals"`
	Strict       bool               `yaml:"strict"`
	MaxCallDepth int                `yaml:"max_call_depth"`
	LogLevel     string             `yaml:"log_level"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is used when no calc.yml is present.
func DefaultConfig() *Config {
	return &Config{
		Globals:  map[string]float64{},
		LogLevel: zerolog.WarnLevel,
	}
}

// LoadConfig parses calc.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return raw.toConfig(absPath)
}

func (raw configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Name = strings.TrimSpace(raw.Name)
	cfg.Entry = strings.TrimSpace(raw.Entry)
	cfg.Strict = raw.Strict
	cfg.MaxCallDepth = raw.MaxCallDepth
	for name, value := range raw.Globals {
		cfg.Globals[name] = value
	}

	var errs ValidationError
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q is not a known level", level))
		} else {
			cfg.LogLevel = parsed
		}
	}
	if cfg.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "max_call_depth must not be negative")
	}
	names := make([]string, 0, len(cfg.Globals))
	for name := range cfg.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !variableNamePattern.MatchString(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("globals.%s: not a valid variable name", name))
		}
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// EntryPath resolves the configured entry relative to the config file.
func (c *Config) EntryPath() string {
	if c == nil || c.Entry == "" {
		return ""
	}
	if filepath.IsAbs(c.Entry) || c.Path == "" {
		return c.Entry
	}
	return filepath.Join(filepath.Dir(c.Path), c.Entry)
}

// GlobalNames returns the seeded global names in sorted order.
func (c *Config) GlobalNames() []string {
	names := make([]string, 0, len(c.Globals))
	for name := range c.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindConfig walks up from start looking for calc.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}
