// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package voices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/transcribe"
)

type fakeSynthesizer struct {
	name   string
	voices map[string]VoiceInfo
}

func (f *fakeSynthesizer) Name() string                 { return f.name }
func (f *fakeSynthesizer) Voices() map[string]VoiceInfo { return f.voices }
func (f *fakeSynthesizer) AudioFormats() []string       { return []string{AudioFormatMP3} }
func (f *fakeSynthesizer) Transcriber() transcribe.Normalizer {
	return transcribe.New()
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string, opts TTSOptions) ([]byte, error) {
	return []byte(text), nil
}

func testLogger(t *testing.T) commons.Logger {
	t.Helper()
	log, err := commons.NewApplicationLogger()
	require.NoError(t, err)
	return log
}

func TestRegistryFirstRegistrationWins(t *testing.T) {
	r := NewRegistry(testLogger(t))

	first := &fakeSynthesizer{name: "first", voices: map[string]VoiceInfo{
		"Gudrun": {ID: "a", Lang: "is-IS"},
	}}
	second := &fakeSynthesizer{name: "second", voices: map[string]VoiceInfo{
		"Gudrun": {ID: "b", Lang: "is-IS"},
		"Dora":   {ID: "c", Lang: "is-IS"},
	}}
	r.Register(first)
	r.Register(second)

	s, err := r.ResolveVoice("Gudrun")
	require.NoError(t, err)
	assert.Equal(t, "first", s.Name())

	s, err = r.ResolveVoice("Dora")
	require.NoError(t, err)
	assert.Equal(t, "second", s.Name())

	assert.Equal(t, []string{"Dora", "Gudrun"}, r.VoiceNames())
	assert.Equal(t, []string{"first", "second"}, r.ProviderNames())
}

func TestRegistryUnknown(t *testing.T) {
	r := NewRegistry(testLogger(t))

	_, err := r.ResolveVoice("Nobody")
	assert.ErrorIs(t, err, ErrUnknownVoice)

	_, err = r.Provider("nowhere")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRegistryValidate(t *testing.T) {
	r := NewRegistry(testLogger(t))
	r.Register(&fakeSynthesizer{name: "fake", voices: map[string]VoiceInfo{
		"Gudrun": {ID: "a", Lang: "is-IS"},
	}})

	valid := TTSOptions{
		Voice:       "Gudrun",
		Speed:       1.0,
		TextFormat:  TextFormatText,
		AudioFormat: AudioFormatMP3,
	}

	s, err := r.Validate(valid)
	require.NoError(t, err)
	assert.Equal(t, "fake", s.Name())

	bad := valid
	bad.Voice = "Nobody"
	_, err = r.Validate(bad)
	assert.ErrorIs(t, err, ErrUnknownVoice)

	bad = valid
	bad.TextFormat = "markdown"
	_, err = r.Validate(bad)
	assert.ErrorIs(t, err, ErrUnsupportedOption)

	bad = valid
	bad.Speed = 3.5
	_, err = r.Validate(bad)
	assert.ErrorIs(t, err, ErrUnsupportedOption)

	bad = valid
	bad.AudioFormat = AudioFormatFLAC
	_, err = r.Validate(bad)
	assert.ErrorIs(t, err, ErrUnsupportedOption)
}

func TestServiceError(t *testing.T) {
	err := NewServiceError("azure", "synthesize", true, ErrAuthentication)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Contains(t, err.Error(), "azure")

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Transient)
}
