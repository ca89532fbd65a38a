// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package icespeak

import (
	"context"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/settings"
	"github.com/mideind/Icespeak/transcribe"
	"github.com/mideind/Icespeak/voices"
)

type fakeSynthesizer struct {
	calls atomic.Int32
}

func (f *fakeSynthesizer) Name() string { return "fake" }

func (f *fakeSynthesizer) Voices() map[string]VoiceInfo {
	return map[string]VoiceInfo{
		"Gudrun": {ID: "gudrun", Lang: "is-IS"},
	}
}

func (f *fakeSynthesizer) AudioFormats() []string {
	return []string{voices.AudioFormatMP3}
}

func (f *fakeSynthesizer) Transcriber() transcribe.Normalizer {
	return transcribe.New()
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string, opts TTSOptions) ([]byte, error) {
	f.calls.Add(1)
	return []byte("audio:" + text), nil
}

func testSettings(t *testing.T) *settings.Settings {
	t.Helper()
	return &settings.Settings{
		DefaultVoice:       "Gudrun",
		DefaultVoiceSpeed:  1.0,
		DefaultTextFormat:  voices.TextFormatText,
		DefaultAudioFormat: voices.AudioFormatMP3,
		AudioDir:           t.TempDir(),
		AudioCacheSize:     10,
		AudioCacheClean:    true,
	}
}

func newTestTTS(t *testing.T) (*TTS, *fakeSynthesizer) {
	t.Helper()
	log, err := commons.NewApplicationLogger()
	require.NoError(t, err)
	fake := &fakeSynthesizer{}
	tts, err := NewWithProviders(testSettings(t), log, fake)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tts.Close() })
	return tts, fake
}

func TestSynthesizeToFile(t *testing.T) {
	tts, fake := newTestTTS(t)

	out, err := tts.SynthesizeToFile(context.Background(), "Hiti er 3,2% yfir meðaltali", tts.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out.Text, "þrjú komma tvö prósent")

	data, err := os.ReadFile(out.File)
	require.NoError(t, err)
	assert.Equal(t, "audio:"+out.Text, string(data))
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestSynthesizeToFileCacheHit(t *testing.T) {
	tts, fake := newTestTTS(t)

	first, err := tts.SynthesizeToFile(context.Background(), "halló heimur", tts.DefaultOptions())
	require.NoError(t, err)
	second, err := tts.SynthesizeToFile(context.Background(), "halló heimur", tts.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.File, second.File)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, int32(1), fake.calls.Load(), "identical requests share one synthesis call")

	// A different voice speed is a different request
	opts := tts.DefaultOptions()
	opts.Speed = 1.5
	third, err := tts.SynthesizeToFile(context.Background(), "halló heimur", opts)
	require.NoError(t, err)
	assert.NotEqual(t, first.File, third.File)
	assert.Equal(t, int32(2), fake.calls.Load())
}

func TestSynthesizeToFileRawText(t *testing.T) {
	tts, _ := newTestTTS(t)

	opts := tts.DefaultOptions()
	opts.Transcribe = false
	out, err := tts.SynthesizeToFile(context.Background(), "Hiti er 3,2% yfir meðaltali", opts)
	require.NoError(t, err)
	assert.Equal(t, "Hiti er 3,2% yfir meðaltali", out.Text)
}

func TestSynthesizeToFileSSML(t *testing.T) {
	tts, _ := newTestTTS(t)

	opts := tts.DefaultOptions()
	opts.TextFormat = voices.TextFormatSSML
	in := "Ég vel töluna " + transcribe.GSSML("244", "number", map[string]string{"gender": "kk"})
	out, err := tts.SynthesizeToFile(context.Background(), in, opts)
	require.NoError(t, err)
	assert.Contains(t, out.Text, "tvö hundruð fjörutíu og fjórir")
	assert.NotContains(t, out.Text, "<greynir")
}

func TestSynthesizeToFileValidation(t *testing.T) {
	tts, fake := newTestTTS(t)

	opts := tts.DefaultOptions()
	opts.Voice = "Nobody"
	_, err := tts.SynthesizeToFile(context.Background(), "halló", opts)
	assert.ErrorIs(t, err, ErrUnknownVoice)

	opts = tts.DefaultOptions()
	opts.AudioFormat = voices.AudioFormatFLAC
	_, err = tts.SynthesizeToFile(context.Background(), "halló", opts)
	assert.ErrorIs(t, err, ErrUnsupportedOption)

	opts = tts.DefaultOptions()
	opts.Speed = 9.0
	_, err = tts.SynthesizeToFile(context.Background(), "halló", opts)
	assert.ErrorIs(t, err, ErrUnsupportedOption)

	assert.Equal(t, int32(0), fake.calls.Load(), "invalid requests never reach the provider")
}

func TestDefaultOptions(t *testing.T) {
	tts, _ := newTestTTS(t)

	opts := tts.DefaultOptions()
	assert.Equal(t, "Gudrun", opts.Voice)
	assert.Equal(t, 1.0, opts.Speed)
	assert.True(t, opts.Transcribe)
}

func TestVoices(t *testing.T) {
	tts, _ := newTestTTS(t)
	assert.Equal(t, []string{"Gudrun"}, tts.Voices())
}
