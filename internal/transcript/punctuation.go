package transcript

import (
	"strings"
	"unicode/utf8"
)

// Punctuation priority levels used when grouping a flat word stream into
// segments.
const (
	priorityHigh   = 0
	priorityMedium = 1
	priorityLow    = 2
	priorityNone   = -1
)

var highPriority = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'\u3002': {}, '\uff01': {}, '\uff1f': {}, // 。！？
}

var mediumPriority = map[rune]struct{}{
	';': {}, ':': {}, ')': {}, ']': {}, '}': {},
	'\uff1b': {}, '\uff1a': {}, '\u300b': {}, '\u300d': {}, '\u3011': {}, '\uff09': {}, // ；：》」】）
}

var lowPriority = map[rune]struct{}{
	',': {}, '(': {}, '[': {}, '{': {}, '-': {}, '\u2026': {},
	'\uff0c': {}, '\u3001': {}, '\u300a': {}, '\u300c': {}, '\u3010': {}, '\uff08': {}, // ，、《「【（
}

// punctuationPriority returns the break priority of the last rune of text.
func punctuationPriority(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return priorityNone
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	if _, ok := highPriority[r]; ok {
		return priorityHigh
	}
	if _, ok := mediumPriority[r]; ok {
		return priorityMedium
	}
	if _, ok := lowPriority[r]; ok {
		return priorityLow
	}
	return priorityNone
}

// cjkMergePunctuation is the set of standalone CJK punctuation that is folded
// into the preceding word.
var cjkMergePunctuation = map[rune]struct{}{
	'\u3002': {}, // 。
	'\uff1f': {}, // ？
	'\uff01': {}, // ！
	'\u300d': {}, // 」
	'\u300c': {}, // 「
	'\u3001': {}, // 、
	'\u30fb': {}, // ・
	'\uff0c': {}, // ，
}
