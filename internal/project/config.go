package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ddd/internal/render"
)

// Config is the decoded project file.
type Config struct {
	Project   ProjectConfig    `toml:"project" yaml:"project"`
	DSL       DSLConfig        `toml:"dsl" yaml:"dsl"`
	Templates render.Templates `toml:"templates" yaml:"templates"`
	Log       LogConfig        `toml:"log" yaml:"log"`
	Watch     WatchConfig      `toml:"watch" yaml:"watch"`
}

type ProjectConfig struct {
	// Include and Exclude are doublestar patterns relative to the project root.
	Include []string `toml:"include" yaml:"include"`
	Exclude []string `toml:"exclude" yaml:"exclude"`
	// OutputExt replaces the source extension of generated files.
	OutputExt string `toml:"output_ext" yaml:"output_ext"`
	// Companions are written once per output directory next to generated files.
	Companions []Companion `toml:"companions" yaml:"companions"`
}

type Companion struct {
	Name    string `toml:"name" yaml:"name"`
	Content string `toml:"content" yaml:"content"`
}

type DSLConfig struct {
	// Keywords start message declarations.
	Keywords []string `toml:"keywords" yaml:"keywords"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

type WatchConfig struct {
	Debounce time.Duration `toml:"debounce" yaml:"debounce"`
}

const isExternalInit = `// Required for init-only setters on target frameworks older than net5.0.
namespace System.Runtime.CompilerServices
{
    internal static class IsExternalInit {}
}
`

// DefaultConfig matches the behaviour of a project without a manifest.
func DefaultConfig() Config {
	return Config{
		Project: ProjectConfig{
			Include:   []string{"**/*.ddd"},
			OutputExt: ".cs",
			Companions: []Companion{
				{Name: "IsExternalInit.cs", Content: isExternalInit},
			},
		},
		DSL: DSLConfig{
			Keywords: []string{"command", "event"},
		},
		Templates: render.DefaultTemplates(),
		Log:       LogConfig{Level: "normal"},
		Watch:     WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// Load decodes path, choosing the format by extension. Keys absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loadTOML(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format", path)
	}
}

func loadTOML(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("project", "output_ext") && strings.TrimSpace(cfg.Project.OutputExt) == "" {
		return Config{}, fmt.Errorf("%s: [project].output_ext must not be empty", path)
	}
	if meta.IsDefined("dsl", "keywords") && len(cfg.DSL.Keywords) == 0 {
		return Config{}, fmt.Errorf("%s: [dsl].keywords must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func loadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that decoding alone cannot reject.
func (c *Config) Validate() error {
	if len(c.Project.Include) == 0 {
		return errors.New("project.include must list at least one pattern")
	}
	if !strings.HasPrefix(c.Project.OutputExt, ".") {
		return fmt.Errorf("project.output_ext %q must start with '.'", c.Project.OutputExt)
	}
	if len(c.DSL.Keywords) == 0 {
		return errors.New("dsl.keywords must not be empty")
	}
	for _, kw := range c.DSL.Keywords {
		if !isIdentifier(kw) {
			return fmt.Errorf("dsl.keywords: %q is not an identifier", kw)
		}
	}
	for _, comp := range c.Project.Companions {
		if comp.Name == "" || comp.Name != filepath.Base(comp.Name) {
			return fmt.Errorf("project.companions: invalid file name %q", comp.Name)
		}
	}
	switch c.Log.Level {
	case "none", "normal", "debug":
	default:
		return fmt.Errorf("log.level %q must be one of none, normal, debug", c.Log.Level)
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce must not be negative")
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Encode writes cfg as TOML, the format `ddd init` produces.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault creates dir/ddd.toml with the default configuration.
// An existing manifest is never overwritten.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, ManifestNames[0])
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	data, err := Encode(DefaultConfig())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
