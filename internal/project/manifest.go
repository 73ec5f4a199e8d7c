// Package project loads the orbit.toml (or orbit.yaml) manifest that
// configures sessions and builds for a directory tree.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"orbit/internal/session"
)

// Manifest file names, in lookup order.
const (
	TomlName = "orbit.toml"
	YamlName = "orbit.yaml"
	YmlName  = "orbit.yml"
)

var manifestNames = []string{TomlName, YamlName, YmlName}

type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package" yaml:"package"`
	Session SessionConfig `toml:"session" yaml:"session"`
	Build   BuildConfig   `toml:"build" yaml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name" yaml:"name"`
}

type SessionConfig struct {
	ModulePaths       []string `toml:"module_paths" yaml:"module_paths"`
	CallingConvention string   `toml:"calling_convention" yaml:"calling_convention"`
}

type BuildConfig struct {
	Sources  []string `toml:"sources" yaml:"sources"`
	Jobs     int      `toml:"jobs" yaml:"jobs"`
	Cache    bool     `toml:"cache" yaml:"cache"`
	CacheDir string   `toml:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
}

// Default returns the configuration `orbit init` writes.
func Default(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Session: SessionConfig{
			ModulePaths:       []string{"mods"},
			CallingConvention: session.OrbitConvention{}.Name(),
		},
		Build: BuildConfig{
			Sources: []string{"src"},
			Cache:   true,
		},
	}
}

// Find walks up from startDir to locate a manifest.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range manifestNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadFrom finds and loads the manifest governing startDir. ok is false
// when there is none.
func LoadFrom(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load reads and validates the manifest at path. The format follows the
// file extension.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yaml", ".yml":
		cfg, err = loadYAML(abs)
	default:
		cfg, err = loadTOML(abs)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(abs); err != nil {
		return nil, err
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func loadTOML(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("build", "cache") {
		cfg.Build.Cache = true
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}

func loadYAML(path string) (Config, error) {
	// #nosec G304 -- manifest path comes from Find or the user
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%s: missing package", path)
		}
		return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	// cache defaults to on unless the key is present
	var probe struct {
		Build struct {
			Cache *bool `yaml:"cache"`
		} `yaml:"build"`
	}
	if err := yaml.Unmarshal(data, &probe); err == nil && probe.Build.Cache == nil {
		cfg.Build.Cache = true
	}
	return cfg, nil
}

func (c Config) validate(path string) error {
	if strings.TrimSpace(c.Package.Name) == "" {
		return fmt.Errorf("%s: missing [package].name", path)
	}
	if name := c.Session.CallingConvention; name != "" {
		if _, ok := session.LookupConvention(name); !ok {
			return fmt.Errorf("%s: unknown calling convention %q (known: %s)",
				path, name, strings.Join(session.ConventionNames(), ", "))
		}
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	return nil
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}

// ModulePaths returns the configured module paths made absolute against
// the manifest root.
func (m *Manifest) ModulePaths() []string {
	out := make([]string, 0, len(m.Config.Session.ModulePaths))
	for _, p := range m.Config.Session.ModulePaths {
		out = append(out, m.resolve(p))
	}
	return out
}

// Sources returns the configured source paths made absolute.
func (m *Manifest) Sources() []string {
	out := make([]string, 0, len(m.Config.Build.Sources))
	for _, p := range m.Config.Build.Sources {
		out = append(out, m.resolve(p))
	}
	return out
}

// CacheDir returns the configured cache directory, or "" for the user cache.
func (m *Manifest) CacheDir() string {
	if m.Config.Build.CacheDir == "" {
		return ""
	}
	return m.resolve(m.Config.Build.CacheDir)
}

// Convention returns the configured calling convention; the plain one when
// none is set.
func (m *Manifest) Convention() session.Convention {
	if c, ok := session.LookupConvention(m.Config.Session.CallingConvention); ok {
		return c
	}
	return session.PlainConvention{}
}

// NewSession creates a session rooted at the manifest directory.
func (m *Manifest) NewSession() *session.Session {
	sess := session.New(m.Convention(), m.ModulePaths()...)
	sess.SetWorkDir(m.Root)
	return sess
}

// WriteTOML encodes cfg as an orbit.toml document.
func WriteTOML(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
