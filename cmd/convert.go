package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Gerlif/final-whisper/internal/config"
	"github.com/Gerlif/final-whisper/internal/worker"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <transcript.json>...",
	Short: "Convert transcription JSON files to SRT subtitles",
	Long: `Convert one or more transcription JSON files into SRT subtitle files.
Each input is written next to itself as <input>.srt unless --output is given
for a single input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var (
	output         string
	maxChars       int
	maxLines       int
	extend         float64
	wordTimestamps bool
	noAsync        bool
	maxConcurrent  int
)

func init() {
	defaults := config.Default()

	convertCmd.Flags().StringVarP(&output, "output", "o", "", "output SRT path (default: <input>.srt)")
	convertCmd.Flags().IntVar(&maxChars, "max-chars", defaults.Subtitles.MaxCharsPerLine, "max characters per line (30-50)")
	convertCmd.Flags().IntVar(&maxLines, "max-lines", defaults.Subtitles.MaxLines, "max lines per subtitle (1-3)")
	convertCmd.Flags().Float64Var(&extend, "extend", defaults.Subtitles.ExtendDuration, "seconds to extend each subtitle, capped at the next start")
	convertCmd.Flags().BoolVar(&wordTimestamps, "word-timestamps", defaults.Subtitles.WordTimestamps, "split long segments on word timing")
	convertCmd.Flags().BoolVar(&noAsync, "no-async", false, "convert files one at a time")
	convertCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", defaults.Batch.MaxConcurrent, "max files converted in parallel")

	rootCmd.AddCommand(convertCmd)
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-chars") {
		cfg.Subtitles.MaxCharsPerLine = maxChars
	}
	if flags.Changed("max-lines") {
		cfg.Subtitles.MaxLines = maxLines
	}
	if flags.Changed("extend") {
		cfg.Subtitles.ExtendDuration = extend
	}
	if flags.Changed("word-timestamps") {
		cfg.Subtitles.WordTimestamps = wordTimestamps
	}
	if flags.Changed("no-async") {
		cfg.Batch.NoAsync = noAsync
	}
	if flags.Changed("max-concurrent") {
		cfg.Batch.MaxConcurrent = maxConcurrent
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, path, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if exists {
		slog.Debug("config loaded", "path", path)
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		absPath, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", arg)
		}
		inputs = append(inputs, absPath)
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		Inputs:        inputs,
		OutputPath:    output,
		NoAsync:       cfg.Batch.NoAsync,
		MaxConcurrent: cfg.Batch.MaxConcurrent,
		Settings:      &cfg.Subtitles,
	}

	if _, err := worker.Run(ctx, opts); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
