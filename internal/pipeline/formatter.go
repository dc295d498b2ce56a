package pipeline

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// overflowPenalty is charged per character a candidate line runs over.
	overflowPenalty = 10.0
	// bottomHeavyPenalty breaks ties in favour of a longer top line.
	bottomHeavyPenalty = 0.5
)

// LineBalancer wraps cue text into at most two display lines.
type LineBalancer struct {
	MaxCharsPerLine int
	MaxLines        int
	orphans         *OrphanClassifier
}

// NewLineBalancer creates a balancer. MaxLines above two is accepted but
// output is still capped at two lines.
func NewLineBalancer(maxCharsPerLine, maxLines int, orphans *OrphanClassifier) *LineBalancer {
	return &LineBalancer{
		MaxCharsPerLine: maxCharsPerLine,
		MaxLines:        maxLines,
		orphans:         orphans,
	}
}

// Format balances text and then fixes a stranded orphan word.
func (b *LineBalancer) Format(text string) []string {
	return b.FixOrphans(b.Balance(text))
}

// Balance splits text into one or two lines.
func (b *LineBalancer) Balance(text string) []string {
	text = collapseSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= b.MaxCharsPerLine || b.MaxLines == 1 {
		return []string{text}
	}

	words := strings.Fields(text)
	if split := b.bestSplit(words); split > 0 {
		return []string{
			strings.Join(words[:split], " "),
			strings.Join(words[split:], " "),
		}
	}
	return b.greedySplit(words)
}

// bestSplit scores every word boundary and returns the index of the first
// word on line two, or 0 if there is no boundary to split on.
func (b *LineBalancer) bestSplit(words []string) int {
	lengths := make([]int, len(words))
	total := -1
	for i, w := range words {
		lengths[i] = utf8.RuneCountInString(w)
		total += lengths[i] + 1
	}

	best := 0
	bestScore := math.Inf(1)
	len1 := -1
	for i := 1; i < len(words); i++ {
		len1 += lengths[i-1] + 1
		len2 := total - len1 - 1

		score := math.Abs(float64(len1 - len2))
		if len2 > len1 {
			score += bottomHeavyPenalty
		}
		over := max(0, len1-b.MaxCharsPerLine) + max(0, len2-b.MaxCharsPerLine)
		score += overflowPenalty * float64(over)

		if score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// greedySplit fills line one up to the budget and puts the rest on line two.
// If not even the first word fits, the split falls after the first word.
func (b *LineBalancer) greedySplit(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	split := 0
	length := -1
	for i, w := range words {
		length += utf8.RuneCountInString(w) + 1
		if length > b.MaxCharsPerLine {
			break
		}
		split = i + 1
	}
	if split == 0 {
		split = 1
	}
	if split >= len(words) {
		return []string{strings.Join(words, " ")}
	}
	return []string{
		strings.Join(words[:split], " "),
		strings.Join(words[split:], " "),
	}
}

// FixOrphans moves an orphan word ending line one to the start of line two,
// provided line one keeps a word and line two still fits. At most one word
// moves.
func (b *LineBalancer) FixOrphans(lines []string) []string {
	if len(lines) != 2 || b.orphans == nil {
		return lines
	}
	words := strings.Fields(lines[0])
	if len(words) < 2 {
		return lines
	}
	last := words[len(words)-1]
	if !b.orphans.IsOrphan(last) {
		return lines
	}
	next := last + " " + lines[1]
	if utf8.RuneCountInString(next) > b.MaxCharsPerLine {
		return lines
	}
	return []string{strings.Join(words[:len(words)-1], " "), next}
}
