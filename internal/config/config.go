package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// SubtitleSettings holds all subtitle formatting parameters.
type SubtitleSettings struct {
	MaxCharsPerLine int     `toml:"max_chars_per_line"`
	MaxLines        int     `toml:"max_lines"`
	ExtendDuration  float64 `toml:"extend_duration"`
	WordTimestamps  bool    `toml:"word_timestamps"`
}

// MaxSubtitleChars is the character budget of a whole cue.
func (s SubtitleSettings) MaxSubtitleChars() int {
	return s.MaxCharsPerLine * s.MaxLines
}

// Batch holds options for converting several transcripts in one run.
type Batch struct {
	MaxConcurrent int  `toml:"max_concurrent"`
	NoAsync       bool `toml:"no_async"`
}

// Config holds the full application configuration.
type Config struct {
	Subtitles SubtitleSettings `toml:"subtitles"`
	Batch     Batch            `toml:"batch"`
}

// Default returns a Config with hardcoded defaults.
func Default() *Config {
	return &Config{
		Subtitles: SubtitleSettings{
			MaxCharsPerLine: 40,
			MaxLines:        2,
			ExtendDuration:  1.2,
			WordTimestamps:  true,
		},
		Batch: Batch{
			MaxConcurrent: 3,
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/final-whisper/config.toml")
}

// SampleConfig returns the commented sample configuration written by `config init`.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. A missing file is not an
// error; defaults are returned and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return cfg, resolvedPath, exists, nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteSample writes the sample configuration to path, refusing to overwrite.
func WriteSample(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(expanded); err == nil {
		return "", fmt.Errorf("config already exists: %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return expanded, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path is a directory: %s", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("final-whisper.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
