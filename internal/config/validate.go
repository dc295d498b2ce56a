package config

import (
	"errors"
	"fmt"
)

// Formatting limits accepted from users. The subtitle engine itself does not
// re-check them.
const (
	MinCharsPerLine = 30
	MaxCharsPerLine = 50
	MinLines        = 1
	MaxLines        = 3
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.Subtitles.Validate(); err != nil {
		return err
	}
	if c.Batch.MaxConcurrent < 1 {
		return errors.New("batch.max_concurrent must be at least 1")
	}
	return nil
}

// Validate checks the formatting limits.
func (s SubtitleSettings) Validate() error {
	if s.MaxCharsPerLine < MinCharsPerLine || s.MaxCharsPerLine > MaxCharsPerLine {
		return fmt.Errorf("subtitles.max_chars_per_line must be between %d and %d, got %d",
			MinCharsPerLine, MaxCharsPerLine, s.MaxCharsPerLine)
	}
	if s.MaxLines < MinLines || s.MaxLines > MaxLines {
		return fmt.Errorf("subtitles.max_lines must be between %d and %d, got %d",
			MinLines, MaxLines, s.MaxLines)
	}
	if s.ExtendDuration < 0 {
		return errors.New("subtitles.extend_duration must not be negative")
	}
	return nil
}
