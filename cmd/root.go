package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "final-whisper",
	Short: "Turn speech transcriptions into readable SRT subtitles",
	Long: `final-whisper converts time-stamped transcription JSON (Whisper segments or
flat word lists) into SRT subtitle files. Long segments are split on word
timing, short fragments merged, cue durations extended and every cue balanced
over at most two lines without leaving short function words dangling.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/final-whisper/config.toml)")
}
