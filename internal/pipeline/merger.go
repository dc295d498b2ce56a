package pipeline

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	// maxMergePasses bounds the number of left-to-right merge sweeps.
	maxMergePasses = 5
	// mergeOverflow is the tolerance applied to the cue budget when merging.
	mergeOverflow = 1.2
)

// CueMerger folds cues too short to read comfortably into a neighbour.
type CueMerger struct {
	MaxSubtitleChars int
}

// NewCueMerger creates a merger for a cue budget of maxSubtitleChars.
func NewCueMerger(maxSubtitleChars int) *CueMerger {
	return &CueMerger{MaxSubtitleChars: maxSubtitleChars}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func isCompleteSentence(text string) bool {
	return wordCount(text) > 2 && IsSentenceEnd(text)
}

// shouldMerge reports whether a cue is a fragment. One and two word cues are
// always fragments; three and four word cues only when they are not a
// finished sentence.
func shouldMerge(text string) bool {
	n := wordCount(text)
	if n <= 2 {
		return true
	}
	if n <= 4 {
		return !isCompleteSentence(text)
	}
	return false
}

func (m *CueMerger) fits(text string) bool {
	return float64(utf8.RuneCountInString(text)) <= float64(m.MaxSubtitleChars)*mergeOverflow
}

// Merge repeats merge passes until nothing changes or the pass limit is hit.
func (m *CueMerger) Merge(cues []Cue) []Cue {
	if len(cues) <= 1 {
		return cues
	}

	merged := cues
	for pass := 1; pass <= maxMergePasses; pass++ {
		var changed bool
		merged, changed = m.mergePass(merged)
		slog.Debug("merge pass", "pass", pass, "cues", len(merged), "changed", changed)
		if !changed {
			break
		}
	}
	return merged
}

// mergePass tries the previous output cue first, then the next input cue.
func (m *CueMerger) mergePass(cues []Cue) ([]Cue, bool) {
	out := make([]Cue, 0, len(cues))
	changed := false

	i := 0
	for i < len(cues) {
		current := cues[i]

		if shouldMerge(current.Text) {
			if len(out) > 0 {
				prev := &out[len(out)-1]
				combined := prev.Text + " " + current.Text
				if m.fits(combined) {
					prev.Text = combined
					prev.End = current.End
					changed = true
					i++
					continue
				}
			}

			if i+1 < len(cues) {
				next := cues[i+1]
				combined := current.Text + " " + next.Text
				if m.fits(combined) {
					out = append(out, Cue{Start: current.Start, End: next.End, Text: combined})
					changed = true
					i += 2
					continue
				}
			}
		}

		out = append(out, current)
		i++
	}

	return out, changed
}
