package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Gerlif/final-whisper/internal/config"
)

// ErrWriteOutput marks a failure to write the finished subtitle file.
var ErrWriteOutput = errors.New("write subtitle output")

// BuildCues runs the timing stages: segment splitting, fragment merging and
// duration extension.
func BuildCues(segments []Segment, settings *config.SubtitleSettings) []Cue {
	budget := settings.MaxSubtitleChars()

	splitter := NewSegmentSplitter(budget, settings.WordTimestamps)
	cues := splitter.SplitAll(segments)
	slog.Debug("segments split", "segments", len(segments), "cues", len(cues))

	cues = NewCueMerger(budget).Merge(cues)
	slog.Debug("short cues merged", "cues", len(cues))

	return ExtendDurations(cues, settings.ExtendDuration)
}

// FormatCues wraps every cue into display lines.
func FormatCues(cues []Cue, settings *config.SubtitleSettings, orphans *OrphanClassifier) []Block {
	balancer := NewLineBalancer(settings.MaxCharsPerLine, settings.MaxLines, orphans)

	blocks := make([]Block, 0, len(cues))
	for _, cue := range cues {
		lines := balancer.Format(cue.Text)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, Block{Start: cue.Start, End: cue.End, Lines: lines})
	}
	return blocks
}

// Process runs the full subtitle pipeline over segments and returns the SRT
// content string. Each call works on its own copies of the data.
func Process(segments []Segment, settings *config.SubtitleSettings) string {
	return ProcessWith(segments, settings, DefaultOrphanClassifier())
}

// ProcessWith is Process with an explicit orphan word classifier.
func ProcessWith(segments []Segment, settings *config.SubtitleSettings, orphans *OrphanClassifier) string {
	cues := BuildCues(segments, settings)
	if len(cues) == 0 {
		return ""
	}
	return generateSRT(FormatCues(cues, settings, orphans))
}

// WriteFile writes finished SRT content to a temp file next to path and
// renames it into place, so path holds either the old or the new content.
func WriteFile(path, content string) error {
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s-%d.tmp", filepath.Base(path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
