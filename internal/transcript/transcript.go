// Package transcript decodes transcription JSON into pipeline segments.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Gerlif/final-whisper/internal/pipeline"
)

var (
	// ErrEmpty is returned for a transcript without any speech.
	ErrEmpty = errors.New("transcript is empty")
	// ErrUnknownFormat is returned when the JSON has neither segments nor words.
	ErrUnknownFormat = errors.New("unrecognized transcript format")
)

// Transcript is a decoded transcription ready for the subtitle pipeline.
type Transcript struct {
	Language string
	Text     string
	Segments []pipeline.Segment
}

// HasWordTimestamps reports whether any segment carries word timing.
func (t *Transcript) HasWordTimestamps() bool {
	for _, seg := range t.Segments {
		if len(seg.Words) > 0 {
			return true
		}
	}
	return false
}

// rawWord accepts both the Whisper ("word") and the flat word-list ("text")
// spelling of a word.
type rawWord struct {
	Word  string  `json:"word"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type"` // "word", "spacing", "audio_event"
}

func (w rawWord) text() string {
	if w.Word != "" {
		return w.Word
	}
	return w.Text
}

type rawSegment struct {
	Start float64   `json:"start"`
	End   float64   `json:"end"`
	Text  string    `json:"text"`
	Words []rawWord `json:"words"`
}

type rawTranscript struct {
	Language     string       `json:"language"`
	LanguageCode string       `json:"language_code"`
	Text         string       `json:"text"`
	Segments     []rawSegment `json:"segments"`
	Words        []rawWord    `json:"words"`
}

// Load reads and decodes a transcript JSON file.
func Load(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode reads a Whisper style segment transcript or a flat word-list
// transcript from r.
func Decode(r io.Reader) (*Transcript, error) {
	var raw rawTranscript
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	t := &Transcript{
		Language: raw.Language,
		Text:     normalize(raw.Text),
	}
	if t.Language == "" {
		t.Language = raw.LanguageCode
	}

	switch {
	case raw.Segments != nil:
		t.Segments = convertSegments(raw.Segments, raw.Words)
	case raw.Words != nil:
		t.Segments = segmentsFromWords(raw.Words)
	default:
		return nil, ErrUnknownFormat
	}

	if len(t.Segments) == 0 {
		return nil, ErrEmpty
	}
	slog.Debug("transcript decoded",
		"language", t.Language,
		"segments", len(t.Segments),
		"word_timestamps", t.HasWordTimestamps())
	return t, nil
}

// convertSegments maps Whisper segments. When words are only given at the top
// level, as OpenAI does, they are attached to the segment they start in.
func convertSegments(raw []rawSegment, topWords []rawWord) []pipeline.Segment {
	segments := make([]pipeline.Segment, 0, len(raw))
	for _, rs := range raw {
		segments = append(segments, pipeline.Segment{
			Start: rs.Start,
			End:   rs.End,
			Text:  normalize(rs.Text),
			Words: convertWords(rs.Words),
		})
	}

	if len(topWords) > 0 && !hasWords(segments) {
		attachWords(segments, convertWords(topWords))
	}
	return segments
}

func attachWords(segments []pipeline.Segment, words []pipeline.Word) {
	seg := 0
	for _, w := range words {
		for seg+1 < len(segments) && w.Start >= segments[seg+1].Start {
			seg++
		}
		if seg < len(segments) {
			segments[seg].Words = append(segments[seg].Words, w)
		}
	}
}

func hasWords(segments []pipeline.Segment) bool {
	for _, seg := range segments {
		if len(seg.Words) > 0 {
			return true
		}
	}
	return false
}

func convertWords(raw []rawWord) []pipeline.Word {
	var words []pipeline.Word
	for _, rw := range raw {
		if rw.Type != "" && rw.Type != "word" {
			continue
		}
		text := normalize(rw.text())
		if text == "" {
			continue
		}
		end := rw.End
		if end < rw.Start {
			end = rw.Start
		}
		words = append(words, pipeline.Word{Text: text, Start: rw.Start, End: end})
	}
	return words
}

func normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
