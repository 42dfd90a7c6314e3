package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the on-disk tool configuration. The first run writes the
// default config so users have a file to edit.
type Config struct {
	Verbose         bool                      `toml:"verbose"`
	CompilerFlags   map[string]string         `toml:"compiler_flags"`
	IgnorePatterns  []string                  `toml:"ignore_patterns"`
	IncludePatterns []string                  `toml:"include_patterns"`
	Languages       map[string]LanguageConfig `toml:"languages"`
}

// LanguageConfig is a per-language override block.
type LanguageConfig struct {
	Enabled       bool     `toml:"enabled"`
	CompilerPath  string   `toml:"compiler_path"`
	CompilerFlags []string `toml:"compiler_flags"`
}

func defaultConfig() *Config {
	return &Config{
		CompilerFlags: map[string]string{
			"c":    "-Wall -Wextra -std=c99",
			"cpp":  "-Wall -Wextra -std=c++17",
			"rust": "--release",
			"go":   "-ldflags=-s -ldflags=-w",
		},
		IgnorePatterns: []string{
			"*.o", "*.obj", "*.exe", "*.dll", "*.so", "*.dylib",
			"*.a", "*.lib",
			"target/", "build/", "dist/", "node_modules/",
			".git/", ".svn/", ".hg/",
		},
		Languages: map[string]LanguageConfig{
			"c":    {Enabled: true, CompilerFlags: []string{"-Wall", "-Wextra", "-std=c99"}},
			"cpp":  {Enabled: true, CompilerFlags: []string{"-Wall", "-Wextra", "-std=c++17"}},
			"rust": {Enabled: true, CompilerFlags: []string{"--release"}},
			"go":   {Enabled: true, CompilerFlags: []string{"-ldflags=-s", "-ldflags=-w"}},
		},
	}
}

// defaultConfigPath returns the per-user config file location.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error locating user config dir: %w", err)
	}
	return filepath.Join(dir, "polyc", "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is replaced with the written-out
// defaults.
func loadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := cfg.save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// enabled reports whether a language should be considered at all.
// Languages without a config block default to enabled.
func (c *Config) enabled(lang Language) bool {
	lc, ok := c.Languages[string(lang)]
	if !ok {
		return true
	}
	return lc.Enabled
}

// compilerPath returns the configured toolchain override for a language,
// or "" for the default.
func (c *Config) compilerPath(lang Language) string {
	return c.Languages[string(lang)].CompilerPath
}

// flagsFor returns the configured compiler flag string for a language.
// A per-language block takes precedence over the top-level map.
func (c *Config) flagsFor(lang Language) string {
	if lc, ok := c.Languages[string(lang)]; ok && len(lc.CompilerFlags) > 0 {
		return strings.Join(lc.CompilerFlags, " ")
	}
	return c.CompilerFlags[string(lang)]
}

// ignored applies the ignore patterns only. Directories are tested with
// this so that include patterns never prune a subtree above a matching
// file.
func (c *Config) ignored(path string) bool {
	for _, pattern := range c.IgnorePatterns {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

// shouldIgnore applies ignore patterns, then include patterns: when any
// include patterns are set a file must match one of them to survive.
func (c *Config) shouldIgnore(path string) bool {
	if c.ignored(path) {
		return true
	}
	if len(c.IncludePatterns) > 0 {
		for _, pattern := range c.IncludePatterns {
			if matchesPattern(path, pattern) {
				return false
			}
		}
		return true
	}
	return false
}

// matchesPattern matches a slash-relative path against a single pattern.
// "dir/" matches the directory and everything under it, globs match both
// the whole path and its basename, anything else matches as a substring.
func matchesPattern(path, pattern string) bool {
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern) || path == pattern[:len(pattern)-1]
	}
	if strings.ContainsAny(pattern, "*?[") {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		return false
	}
	return strings.Contains(path, pattern)
}
