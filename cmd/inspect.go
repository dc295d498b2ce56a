package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Gerlif/final-whisper/internal/pipeline"
)

const previewWidth = 48

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.srt>",
	Short: "Show the cues of an SRT file as a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read subtitles: %w", err)
	}
	blocks, err := pipeline.ParseSRT(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if len(blocks) == 0 {
		fmt.Fprintln(out, "No cues found")
		return nil
	}

	rows := make([]table.Row, 0, len(blocks))
	total := 0.0
	for i, block := range blocks {
		duration := block.End - block.Start
		total += duration
		rows = append(rows, table.Row{
			i + 1,
			pipeline.FormatTimestamp(block.Start),
			pipeline.FormatTimestamp(block.End),
			fmt.Sprintf("%.3fs", duration),
			len(block.Lines),
			longestLine(block.Lines),
			text.Trim(strings.Join(block.Lines, " / "), previewWidth),
		})
	}

	fmt.Fprintln(out, renderCueTable(rows, isTerminal(out)))
	fmt.Fprintf(out, "%d cues, %.1fs on screen\n", len(blocks), total)
	return nil
}

func renderCueTable(rows []table.Row, fancy bool) string {
	tw := table.NewWriter()
	if fancy {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"#", "Start", "End", "Duration", "Lines", "Max len", "Text"})
	tw.AppendRows(rows)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func longestLine(lines []string) int {
	longest := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	return longest
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
