package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// orphanTrim is stripped from the end of a word before the stop-word lookup.
const orphanTrim = ".,!?:;"

// Danish and English conjunctions, articles, prepositions, pronouns and
// auxiliaries that read badly at the end of a subtitle line.
var defaultOrphanWords = []string{
	// Danish
	"og", "eller", "men", "for", "så", "at", "som", "der", "den", "det",
	"de", "en", "et", "i", "på", "til", "med", "af", "om", "fra", "ved",
	"har", "er", "var", "vil", "kan", "skal", "må", "hvis", "når", "hvor",
	"denne", "dette", "disse", "min", "din", "sin", "vores", "jeres", "deres",
	"jeg", "du", "han", "hun", "vi", "dem", "sig", "os", "mig", "dig",
	"ikke", "også", "bare", "kun", "jo", "da", "nu", "her",
	"bliver", "blive", "blev", "været", "være", "havde", "have",
	"ville", "kunne", "skulle", "måtte", "burde",
	"meget", "mere", "mest", "nogle", "noget", "nogen", "ingen", "alle",
	"efter", "før", "under", "over", "mellem", "igennem", "gennem",
	"fordi", "siden", "mens", "indtil", "uden", "inden",
	// English
	"the", "a", "an", "and", "or", "but", "if", "to", "of", "in", "on",
	"is", "are", "was", "were", "be", "been", "has", "had",
	"with", "that", "this", "these", "those", "my", "your", "his", "her",
	"you", "he", "she", "we", "they", "it", "me", "him", "us", "them",
	"not", "also", "just", "only", "so", "then", "now", "here", "there",
	"will", "would", "could", "should", "can", "may", "might", "must",
	"very", "more", "most", "some", "any", "no", "all", "each", "every",
	"by", "from", "into", "through", "during", "before", "after",
	"above", "below", "between", "about", "against",
}

// OrphanClassifier decides whether a word should not be left stranded at the
// end of a line. The word set is fixed at construction.
type OrphanClassifier struct {
	words map[string]struct{}
}

// NewOrphanClassifier builds a classifier over the given stop words.
func NewOrphanClassifier(words []string) *OrphanClassifier {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if key := orphanKey(w); key != "" {
			set[key] = struct{}{}
		}
	}
	return &OrphanClassifier{words: set}
}

// DefaultOrphanClassifier returns a classifier over the built-in Danish and
// English stop-word table.
func DefaultOrphanClassifier() *OrphanClassifier {
	return NewOrphanClassifier(defaultOrphanWords)
}

func (c *OrphanClassifier) size() int {
	return len(c.words)
}

// IsOrphan reports whether word is a stop word, ignoring case and trailing
// punctuation.
func (c *OrphanClassifier) IsOrphan(word string) bool {
	key := orphanKey(word)
	if key == "" {
		return false
	}
	_, ok := c.words[key]
	return ok
}

func orphanKey(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	word = strings.TrimRight(word, orphanTrim)
	return norm.NFC.String(word)
}

// IsSentenceEnd reports whether text ends a sentence.
func IsSentenceEnd(text string) bool {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	return strings.HasSuffix(text, ".") || strings.HasSuffix(text, "?") || strings.HasSuffix(text, "!")
}
