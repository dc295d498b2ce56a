package pipeline

import (
	"testing"
)

func TestOrphanClassifier_Default(t *testing.T) {
	c := DefaultOrphanClassifier()

	tests := []struct {
		word string
		want bool
	}{
		{"the", true},
		{"The", true},
		{"and,", true},
		{"to.", true},
		{"  of  ", true},
		{"og", true},
		{"på", true},
		{"PÅ", true},
		{"pa\u030a", true}, // decomposed å
		{"også?", true},
		{"house", false},
		{"go", false},
		{"", false},
		{"...", false},
	}
	for _, tt := range tests {
		if got := c.IsOrphan(tt.word); got != tt.want {
			t.Errorf("IsOrphan(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestOrphanClassifier_TableSize(t *testing.T) {
	c := DefaultOrphanClassifier()
	if c.size() != len(defaultOrphanWords)-1 { // "her" is both Danish and English
		t.Errorf("default table has %d distinct words, want %d", c.size(), len(defaultOrphanWords)-1)
	}
}

func TestOrphanClassifier_Injected(t *testing.T) {
	c := NewOrphanClassifier([]string{"der", "die", "das"})
	if !c.IsOrphan("Das") {
		t.Error("expected injected word to classify as orphan")
	}
	if c.IsOrphan("the") {
		t.Error("default table should not leak into an injected classifier")
	}
}

func TestIsSentenceEnd(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Hello.", true},
		{"Really?", true},
		{"Wow!  ", true},
		{"Hello,", false},
		{"Hello", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSentenceEnd(tt.text); got != tt.want {
			t.Errorf("IsSentenceEnd(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
