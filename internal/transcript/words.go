package transcript

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Gerlif/final-whisper/internal/pipeline"
)

func isWord(w rawWord) bool {
	return w.Type == "" || w.Type == "word"
}

// preprocessWords drops audio events, folds spacing tokens into a trailing
// space on the previous word and merges standalone CJK punctuation into the
// preceding word. The second return value reports whether the stream is
// typed; typed streams carry their own spacing and are concatenated verbatim.
func preprocessWords(raw []rawWord) ([]rawWord, bool) {
	var words []rawWord
	typed := false
	dropped := 0

	for _, w := range raw {
		w.Text = w.text()
		w.Word = ""
		if w.Type != "" {
			typed = true
		}

		switch {
		case w.Type == "audio_event":
			dropped++
			continue
		case w.Type == "spacing":
			if len(words) > 0 &&
				strings.TrimSpace(w.Text) == "" &&
				!strings.HasSuffix(words[len(words)-1].Text, " ") {
				words[len(words)-1].Text += " "
			}
			continue
		case !isWord(w):
			continue
		}

		runes := []rune(w.Text)
		if len(runes) == 1 && len(words) > 0 {
			if _, ok := cjkMergePunctuation[runes[0]]; ok {
				prev := &words[len(words)-1]
				last, _ := utf8.DecodeLastRuneInString(prev.Text)
				if _, isPunct := cjkMergePunctuation[last]; prev.Text != "" && !isPunct {
					prev.Text += w.Text
					prev.End = w.End
					continue
				}
			}
		}

		words = append(words, w)
	}

	if dropped > 0 {
		slog.Debug("audio events dropped", "count", dropped)
	}
	return words, typed
}

// shouldSplitAfter decides whether a segment ends after word, given the words
// already accumulated before it.
func shouldSplitAfter(word rawWord, accumulated []rawWord) bool {
	switch punctuationPriority(word.Text) {
	case priorityHigh:
		return true
	case priorityMedium:
		return len(accumulated) >= 3
	case priorityLow:
		if len(accumulated) < 5 {
			return false
		}
		total := 0
		for _, w := range accumulated {
			total += utf8.RuneCountInString(w.Text)
		}
		return total >= 15
	}
	return false
}

func groupWords(words []rawWord) [][]rawWord {
	var groups [][]rawWord
	var current []rawWord

	for _, word := range words {
		current = append(current, word)
		if shouldSplitAfter(word, current[:len(current)-1]) {
			groups = append(groups, current)
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// segmentsFromWords turns a flat word stream into punctuation-delimited
// segments carrying word timing.
func segmentsFromWords(raw []rawWord) []pipeline.Segment {
	words, typed := preprocessWords(raw)

	var segments []pipeline.Segment
	for _, group := range groupWords(words) {
		var b strings.Builder
		for i, w := range group {
			if !typed && i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.Text)
		}
		text := normalize(b.String())
		if text == "" {
			continue
		}

		segWords := convertWords(group)
		if len(segWords) == 0 {
			continue
		}
		segments = append(segments, pipeline.Segment{
			Start: segWords[0].Start,
			End:   segWords[len(segWords)-1].End,
			Text:  text,
			Words: segWords,
		})
	}
	return segments
}
