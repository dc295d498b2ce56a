package pipeline

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSRT_Format(t *testing.T) {
	blocks := []Block{
		{Start: 0, End: 3.2, Lines: []string{"Hi."}},
		{Start: 3.5, End: 6.25, Lines: []string{"Two lines", "of text"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSRT(&buf, blocks))

	want := "1\n00:00:00,000 --> 00:00:03,200\nHi.\n\n" +
		"2\n00:00:03,500 --> 00:00:06,250\nTwo lines\nof text\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSRT_SkipsEmptyBlocks(t *testing.T) {
	blocks := []Block{
		{Start: 0, End: 1, Lines: nil},
		{Start: 1, End: 2, Lines: []string{"  "}},
		{Start: 2, End: 3, Lines: []string{"Kept"}},
	}

	out := generateSRT(blocks)
	assert.True(t, strings.HasPrefix(out, "1\n00:00:02,000"), "first non-empty block must be numbered 1: %q", out)
	assert.Equal(t, 1, strings.Count(out, "-->"))
}

func TestWriteSRT_Empty(t *testing.T) {
	assert.Equal(t, "", generateSRT(nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteSRT_PropagatesWriterError(t *testing.T) {
	err := WriteSRT(failingWriter{}, []Block{{Start: 0, End: 1, Lines: []string{"x"}}})
	assert.EqualError(t, err, "disk full")
}

func TestParseSRT(t *testing.T) {
	data := "\ufeff1\r\n00:00:01,000 --> 00:00:02,500\r\nHello\r\nthere\r\n\r\n" +
		"7\r\n00:00:03.000 --> 00:00:04,000\r\nAgain\r\n"

	blocks, err := ParseSRT([]byte(data))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 1.0, blocks[0].Start)
	assert.Equal(t, 2.5, blocks[0].End)
	assert.Equal(t, []string{"Hello", "there"}, blocks[0].Lines)
	assert.Equal(t, []string{"Again"}, blocks[1].Lines)
}

func TestParseSRT_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing timing": "1\n",
		"bad index":      "one\n00:00:01,000 --> 00:00:02,000\nx\n",
		"bad arrow":      "1\n00:00:01,000 -> 00:00:02,000\nx\n",
		"bad timestamp":  "1\n00:00:01 --> 00:00:02,000\nx\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSRT([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestParseSRT_Empty(t *testing.T) {
	blocks, err := ParseSRT([]byte("  \n\n "))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestSRTIdempotence(t *testing.T) {
	text := "This is a rather long sentence that keeps going well past the character budget of a single subtitle cue. " +
		"Yes. No. Okay, let's continue now. We will go to the store and buy a few things for dinner tonight."
	tokens := strings.Fields(text)
	segments := []Segment{{Start: 0.123, End: 27.777, Text: text, Words: timedWords(0.123, 0.71, tokens...)}}

	first := Process(segments, testSettings())
	require.NotEmpty(t, first)

	blocks, err := ParseSRT([]byte(first))
	require.NoError(t, err)
	second := generateSRT(blocks)
	assert.Equal(t, first, second)

	blocks, err = ParseSRT([]byte(second))
	require.NoError(t, err)
	assert.Equal(t, second, generateSRT(blocks))
}
