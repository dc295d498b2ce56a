package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Gerlif/final-whisper/internal/config"
	"github.com/Gerlif/final-whisper/internal/pipeline"
	"github.com/Gerlif/final-whisper/internal/transcript"
)

// ErrNoSubtitles is returned when a transcript produced no cues at all.
var ErrNoSubtitles = errors.New("no subtitles generated")

// Options configures a batch conversion.
type Options struct {
	Inputs        []string
	OutputPath    string
	NoAsync       bool
	MaxConcurrent int
	Settings      *config.SubtitleSettings
}

// Result describes the outcome for one input file.
type Result struct {
	Input  string
	Output string
	Cues   int
	Err    error
}

// Run converts every input transcript to an SRT file. Failures of individual
// files do not stop the others; they are joined into the returned error.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if len(opts.Inputs) == 0 {
		return nil, errors.New("no input files")
	}
	if opts.OutputPath != "" && len(opts.Inputs) > 1 {
		return nil, errors.New("--output requires a single input file")
	}
	if opts.Settings == nil {
		opts.Settings = &config.Default().Subtitles
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}

	var results []Result
	var err error
	if !opts.NoAsync && len(opts.Inputs) > 1 {
		results, err = processConcurrent(ctx, opts)
	} else {
		results, err = processSequential(ctx, opts)
	}
	if err != nil {
		return results, err
	}

	var errs []error
	converted := 0
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		converted++
	}
	slog.Info("conversion finished", "converted", converted, "failed", len(errs), "total", len(opts.Inputs))
	return results, errors.Join(errs...)
}

// OutputPathFor returns the default SRT path for an input transcript.
func OutputPathFor(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".srt"
}

func (o Options) outputFor(input string) string {
	if o.OutputPath != "" {
		return o.OutputPath
	}
	return OutputPathFor(input)
}

// convertFile loads one transcript, runs the subtitle pipeline and writes the
// result.
func convertFile(input, output string, settings *config.SubtitleSettings) Result {
	res := Result{Input: input, Output: output}

	slog.Info("converting transcript", "input", filepath.Base(input))
	t, err := transcript.Load(input)
	if err != nil {
		res.Err = fmt.Errorf("load transcript: %w", err)
		return res
	}

	s := *settings
	if s.WordTimestamps && !t.HasWordTimestamps() {
		slog.Warn("transcript has no word timestamps, using proportional timing",
			"input", filepath.Base(input))
		s.WordTimestamps = false
	}

	content := pipeline.Process(t.Segments, &s)
	if content == "" {
		res.Err = fmt.Errorf("%s: %w", input, ErrNoSubtitles)
		return res
	}
	res.Cues = strings.Count(content, " --> ")

	if err := pipeline.WriteFile(output, content); err != nil {
		res.Err = err
		return res
	}

	slog.Info("SRT file saved", "path", output, "cues", res.Cues)
	return res
}
