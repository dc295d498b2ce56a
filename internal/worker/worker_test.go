package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerlif/final-whisper/internal/config"
	"github.com/Gerlif/final-whisper/internal/transcript"
)

const hiTranscript = `{"segments": [{"start": 0, "end": 2, "text": "Hi.",
	"words": [{"word": "Hi.", "start": 0, "end": 2}]}]}`

func writeInput(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func settings() *config.SubtitleSettings {
	s := config.Default().Subtitles
	return &s
}

func TestOutputPathFor(t *testing.T) {
	tests := map[string]string{
		"talk.json":          "talk.srt",
		"/tmp/a/b.json":      "/tmp/a/b.srt",
		"noext":              "noext.srt",
		"dir.v2/episode.txt": "dir.v2/episode.srt",
	}
	for in, want := range tests {
		assert.Equal(t, want, OutputPathFor(in), "OutputPathFor(%q)", in)
	}
}

func TestRun_SingleFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "talk.json", hiTranscript)

	results, err := Run(context.Background(), Options{Inputs: []string{input}, Settings: settings(), MaxConcurrent: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Cues)

	data, err := os.ReadFile(filepath.Join(dir, "talk.srt"))
	require.NoError(t, err)
	assert.Equal(t, "1\n00:00:00,000 --> 00:00:03,200\nHi.\n\n", string(data))
}

func TestRun_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "talk.json", hiTranscript)
	output := filepath.Join(dir, "custom.srt")

	_, err := Run(context.Background(), Options{Inputs: []string{input}, OutputPath: output, Settings: settings()})
	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.NoFileExists(t, filepath.Join(dir, "talk.srt"))
}

func TestRun_OutputWithManyInputs(t *testing.T) {
	_, err := Run(context.Background(), Options{Inputs: []string{"a.json", "b.json"}, OutputPath: "x.srt"})
	assert.Error(t, err)
}

func TestRun_NoInputs(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	assert.Error(t, err)
}

func TestRun_ConcurrentKeepsOrderAndIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeInput(t, dir, "one.json", hiTranscript),
		writeInput(t, dir, "bad.json", `{"text": "no timing"}`),
		writeInput(t, dir, "three.json", hiTranscript),
	}

	results, err := Run(context.Background(), Options{Inputs: inputs, MaxConcurrent: 2, Settings: settings()})
	require.Error(t, err)
	assert.ErrorIs(t, err, transcript.ErrUnknownFormat)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, inputs[i], r.Input)
	}
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.FileExists(t, filepath.Join(dir, "one.srt"))
	assert.FileExists(t, filepath.Join(dir, "three.srt"))
	assert.NoFileExists(t, filepath.Join(dir, "bad.srt"))
}

func TestRun_Sequential(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeInput(t, dir, "a.json", hiTranscript),
		writeInput(t, dir, "b.json", hiTranscript),
	}

	results, err := Run(context.Background(), Options{Inputs: inputs, NoAsync: true, MaxConcurrent: 4, Settings: settings()})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.FileExists(t, filepath.Join(dir, "b.srt"))
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", hiTranscript)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Inputs: []string{input}, Settings: settings()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "a.srt"))
}

func TestRun_CancelledReturnsSameShapeInBothModes(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeInput(t, dir, "a.json", hiTranscript),
		writeInput(t, dir, "b.json", hiTranscript),
	}

	for _, noAsync := range []bool{false, true} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := Run(ctx, Options{Inputs: inputs, NoAsync: noAsync, MaxConcurrent: 2, Settings: settings()})
		assert.ErrorIs(t, err, context.Canceled, "noAsync=%v", noAsync)
		assert.NotNil(t, results, "noAsync=%v", noAsync)
		assert.Empty(t, results, "noAsync=%v", noAsync)
	}
}

func TestRun_FallsBackToProportionalTiming(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "plain.json", `{"segments": [{"start": 0, "end": 2, "text": "Hi."}]}`)

	results, err := Run(context.Background(), Options{Inputs: []string{input}, Settings: settings()})
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].Cues)
}

func TestRun_NoSubtitles(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "quiet.json", `{"segments": [{"start": 0, "end": 2, "text": "   "}]}`)

	_, err := Run(context.Background(), Options{Inputs: []string{input}, Settings: settings()})
	assert.True(t, errors.Is(err, ErrNoSubtitles), "got %v", err)
}
