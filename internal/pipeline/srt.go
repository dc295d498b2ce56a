package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteSRT writes blocks in SRT format. Blocks without text are skipped and do
// not consume an index. Every block is terminated by a blank line.
func WriteSRT(w io.Writer, blocks []Block) error {
	index := 0
	for _, block := range blocks {
		lines := nonEmptyLines(block.Lines)
		if len(lines) == 0 {
			continue
		}
		index++
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			index, FormatTimestamp(block.Start), FormatTimestamp(block.End), strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	return nil
}

// generateSRT renders blocks to a string.
func generateSRT(blocks []Block) string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteSRT(&sb, blocks)
	return sb.String()
}

// ParseSRT reads SRT content back into blocks. Indices must be numeric but
// need not be sequential. Blocks without a valid timing line are rejected.
func ParseSRT(data []byte) ([]Block, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	var blocks []Block
	for n, raw := range strings.Split(content, "\n\n") {
		raw = strings.Trim(raw, "\n")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines := strings.Split(raw, "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("block %d: missing timing line", n+1)
		}
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			return nil, fmt.Errorf("block %d: invalid index %q", n+1, lines[0])
		}
		start, end, err := parseTiming(lines[1])
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", n+1, err)
		}
		blocks = append(blocks, Block{
			Start: start,
			End:   end,
			Lines: nonEmptyLines(lines[2:]),
		})
	}
	return blocks, nil
}

func parseTiming(line string) (float64, float64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func nonEmptyLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
