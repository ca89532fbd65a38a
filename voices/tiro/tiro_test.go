// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package tiro

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/voices"
)

func testOptions(t *testing.T, url string) Options {
	t.Helper()
	log, err := commons.NewApplicationLogger()
	require.NoError(t, err)
	return Options{BaseURL: url, Logger: log}
}

func TestSynthesize(t *testing.T) {
	var got speechRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3data"))
	}))
	defer srv.Close()

	s, err := New(testOptions(t, srv.URL))
	require.NoError(t, err)

	data, err := s.Synthesize(context.Background(), "<speak>halló</speak>", voices.TTSOptions{
		Voice:       "Alfur",
		Speed:       1.0,
		TextFormat:  voices.TextFormatSSML,
		AudioFormat: voices.AudioFormatMP3,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3data"), data)

	assert.Equal(t, "Alfur", got.VoiceID)
	assert.Equal(t, "standard", got.Engine)
	assert.Equal(t, "is-IS", got.LanguageCode)
	assert.Equal(t, "halló", got.Text, "markup is stripped before sending")
	assert.Equal(t, voices.TextFormatText, got.TextType)
}

func TestSynthesizeUnknownVoice(t *testing.T) {
	s, err := New(testOptions(t, "http://localhost:0"))
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "halló", voices.TTSOptions{Voice: "Nobody"})
	assert.ErrorIs(t, err, voices.ErrUnknownVoice)
}

func TestSynthesizeServerErrors(t *testing.T) {
	status := http.StatusServiceUnavailable
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s, err := New(testOptions(t, srv.URL))
	require.NoError(t, err)

	opts := voices.TTSOptions{Voice: "Dilja", AudioFormat: voices.AudioFormatMP3}

	_, err = s.Synthesize(context.Background(), "halló", opts)
	var serr *voices.ServiceError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Transient)

	status = http.StatusBadRequest
	_, err = s.Synthesize(context.Background(), "halló", opts)
	require.ErrorAs(t, err, &serr)
	assert.False(t, serr.Transient)
}
