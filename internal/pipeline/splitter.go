package pipeline

import (
	"strings"
	"unicode/utf8"
)

// SegmentSplitter breaks speech segments into cues that fit the cue budget.
type SegmentSplitter struct {
	MaxSubtitleChars int
	WordTimestamps   bool
}

// NewSegmentSplitter creates a splitter for a cue budget of maxSubtitleChars.
// When wordTimestamps is set, segments are split on their word timing and a
// segment without words is treated as silence.
func NewSegmentSplitter(maxSubtitleChars int, wordTimestamps bool) *SegmentSplitter {
	return &SegmentSplitter{
		MaxSubtitleChars: maxSubtitleChars,
		WordTimestamps:   wordTimestamps,
	}
}

// Split converts a single segment into zero or more cues.
func (s *SegmentSplitter) Split(seg Segment) []Cue {
	text := collapseSpace(seg.Text)
	if text == "" {
		return nil
	}

	var words []Word
	if s.WordTimestamps {
		words = cleanWords(seg.Words)
		if len(words) == 0 {
			return nil
		}
	}

	if utf8.RuneCountInString(text) <= s.MaxSubtitleChars {
		return []Cue{{Start: seg.Start, End: seg.End, Text: text}}
	}

	if s.WordTimestamps {
		return s.splitTimedWords(words)
	}
	return s.splitProportional(seg, strings.Fields(text))
}

// collapseSpace trims text and folds every internal whitespace run, line
// breaks included, into a single space.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitAll runs Split over every segment in order.
func (s *SegmentSplitter) SplitAll(segments []Segment) []Cue {
	var cues []Cue
	for _, seg := range segments {
		cues = append(cues, s.Split(seg)...)
	}
	return cues
}

// splitTimedWords closes a cue whenever the next word would overflow the
// budget. Cue timing comes from the first and last word it holds.
func (s *SegmentSplitter) splitTimedWords(words []Word) []Cue {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}

	var cues []Cue
	for _, chunk := range s.chunkTokens(texts) {
		first := words[chunk.from]
		last := words[chunk.to-1]
		cues = append(cues, Cue{
			Start: first.Start,
			End:   last.End,
			Text:  strings.Join(texts[chunk.from:chunk.to], " "),
		})
	}
	return cues
}

// splitProportional chunks whitespace tokens the same way and shares the
// segment duration out by word count.
func (s *SegmentSplitter) splitProportional(seg Segment, tokens []string) []Cue {
	if len(tokens) == 0 {
		return nil
	}

	chunks := s.chunkTokens(tokens)
	total := seg.End - seg.Start
	start := seg.Start

	cues := make([]Cue, 0, len(chunks))
	for i, chunk := range chunks {
		n := chunk.to - chunk.from
		end := start + total*float64(n)/float64(len(tokens))
		if i == len(chunks)-1 {
			end = seg.End
		}
		cues = append(cues, Cue{
			Start: start,
			End:   end,
			Text:  strings.Join(tokens[chunk.from:chunk.to], " "),
		})
		start = end
	}
	return cues
}

type tokenSpan struct {
	from, to int
}

// chunkTokens greedily packs tokens into spans whose space-joined length stays
// within the budget. A token longer than the budget gets a span of its own.
func (s *SegmentSplitter) chunkTokens(tokens []string) []tokenSpan {
	var spans []tokenSpan
	from := 0
	length := 0
	for i, tok := range tokens {
		n := utf8.RuneCountInString(tok)
		if i > from && length+1+n > s.MaxSubtitleChars {
			spans = append(spans, tokenSpan{from: from, to: i})
			from = i
			length = n
			continue
		}
		if i > from {
			length++
		}
		length += n
	}
	if from < len(tokens) {
		spans = append(spans, tokenSpan{from: from, to: len(tokens)})
	}
	return spans
}

func cleanWords(words []Word) []Word {
	cleaned := make([]Word, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		w.Text = text
		cleaned = append(cleaned, w)
	}
	return cleaned
}
