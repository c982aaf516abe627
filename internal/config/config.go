// Package config loads caret's settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/caret/buffer"
	"github.com/iw2rmb/caret/editor"
	"github.com/iw2rmb/caret/internal/logging"
	"github.com/iw2rmb/caret/layout"
	"github.com/iw2rmb/caret/textpos"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the on-disk configuration. String enums are kept as written and
// parsed on use so that files stay readable.
type Config struct {
	LogLevel string `yaml:"log_level" toml:"log_level"`

	Editor EditorConfig `yaml:"editor" toml:"editor"`
	Buffer BufferConfig `yaml:"buffer" toml:"buffer"`
}

type EditorConfig struct {
	// Width caps the wrap width in cells; zero uses the terminal width.
	Width        int    `yaml:"width" toml:"width"`
	TabWidth     int    `yaml:"tab_width" toml:"tab_width"`
	Wrap         string `yaml:"wrap" toml:"wrap"`
	ShowLineNums bool   `yaml:"line_numbers" toml:"line_numbers"`
}

type BufferConfig struct {
	HistoryLimit                   int    `yaml:"history_limit" toml:"history_limit"`
	ReadOnly                       bool   `yaml:"read_only" toml:"read_only"`
	ReplaceParagraphsWithLineFeeds bool   `yaml:"replace_paragraphs_with_line_feeds" toml:"replace_paragraphs_with_line_feeds"`
	Words                          string `yaml:"words" toml:"words"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Editor: EditorConfig{
			TabWidth:     4,
			Wrap:         layout.WrapWord.String(),
			ShowLineNums: true,
		},
		Buffer: BufferConfig{
			HistoryLimit: 1000,
			Words:        textpos.WordsUnicode.String(),
		},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .toml is TOML, .yaml/.yml is YAML, anything else is tried as YAML then
// TOML. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if err := autoDetectAndParse(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func autoDetectAndParse(data []byte, cfg *Config) error {
	yamlCfg := *cfg
	if err := yaml.Unmarshal(data, &yamlCfg); err == nil {
		*cfg = yamlCfg
		return nil
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return errors.New("unable to parse as YAML or TOML")
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel))
	}
	if c.Editor.Width < 0 {
		errs = append(errs, fmt.Errorf("%w: editor.width %d is negative", ErrInvalid, c.Editor.Width))
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("%w: editor.tab_width %d outside 1..16", ErrInvalid, c.Editor.TabWidth))
	}
	if _, err := layout.ParseWrapMode(c.Editor.Wrap); err != nil {
		errs = append(errs, fmt.Errorf("%w: editor.wrap: %w", ErrInvalid, err))
	}
	if _, err := textpos.ParseWordPolicy(c.Buffer.Words); err != nil {
		errs = append(errs, fmt.Errorf("%w: buffer.words: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// BufferOptions converts the buffer section. The config must be valid.
func (c *Config) BufferOptions() buffer.Options {
	words, _ := textpos.ParseWordPolicy(c.Buffer.Words)
	return buffer.Options{
		HistoryLimit:                   c.Buffer.HistoryLimit,
		ReadOnly:                       c.Buffer.ReadOnly,
		ReplaceParagraphsWithLineFeeds: c.Buffer.ReplaceParagraphsWithLineFeeds,
		WordPolicy:                     words,
	}
}

// EditorOptions converts the config to an editor configuration with the
// default style and key map. The config must be valid.
func (c *Config) EditorOptions() editor.Config {
	wrap, _ := layout.ParseWrapMode(c.Editor.Wrap)
	opt := c.BufferOptions()
	return editor.Config{
		HistoryLimit:                   opt.HistoryLimit,
		ReadOnly:                       opt.ReadOnly,
		ReplaceParagraphsWithLineFeeds: opt.ReplaceParagraphsWithLineFeeds,
		WordPolicy:                     opt.WordPolicy,
		Wrap:                           wrap,
		TabWidth:                       c.Editor.TabWidth,
		ShowLineNums:                   c.Editor.ShowLineNums,
		Style:                          editor.DefaultStyle(),
		KeyMap:                         editor.DefaultKeyMap(),
	}
}

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
