// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mideind/Icespeak/pkg/commons"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Gudrun", s.DefaultVoice)
	assert.Equal(t, 1.0, s.DefaultVoiceSpeed)
	assert.Equal(t, "mp3", s.DefaultAudioFormat)
	assert.NotEmpty(t, s.AudioDir)
	assert.Greater(t, s.AudioCacheSize, 0)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ICESPEAK_DEFAULT_VOICE", "Dora")
	t.Setenv("ICESPEAK_DEFAULT_VOICE_SPEED", "1.5")
	t.Setenv("ICESPEAK_AUDIO_CACHE_SIZE", "17")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Dora", s.DefaultVoice)
	assert.Equal(t, 1.5, s.DefaultVoiceSpeed)
	assert.Equal(t, 17, s.AudioCacheSize)
}

func TestLoadRejectsInvalidSpeed(t *testing.T) {
	t.Setenv("ICESPEAK_DEFAULT_VOICE_SPEED", "5.0")

	_, err := Load()
	assert.Error(t, err)
}

func TestEmptyAudioFile(t *testing.T) {
	s := &Settings{AudioDir: t.TempDir()}

	path := s.EmptyAudioFile("mp3")
	assert.Equal(t, s.AudioDir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".mp3"))
	assert.NotEqual(t, path, s.EmptyAudioFile("mp3"))

	assert.True(t, strings.HasSuffix(s.EmptyAudioFile("ogg_vorbis"), ".ogg"))
	assert.True(t, strings.HasSuffix(s.EmptyAudioFile("bogus"), ".data"))
}

func TestAudioFormatHelpers(t *testing.T) {
	assert.Equal(t, "opus", SuffixForAudioFormat("opus"))
	assert.Equal(t, "audio/mpeg", MimeTypeForAudioFormat("mp3"))
	assert.Equal(t, "application/octet-stream", MimeTypeForAudioFormat("bogus"))
}

func TestLoadKeys(t *testing.T) {
	log, err := commons.NewApplicationLogger()
	require.NoError(t, err)

	dir := t.TempDir()
	s := &Settings{
		KeysDir:             dir,
		AWSPollyKeyFilename: "aws.json",
		AzureKeyFilename:    "azure.json",
		GoogleKeyFilename:   "google.json",
		OpenAIKeyFilename:   "openai.json",
	}

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	write("azure.json", `{"key": "abc", "region": "westeurope"}`)
	write("openai.json", `this is not json`)
	write("google.json", `{"type": "service_account"}`)

	keys := LoadKeys(s, log)
	require.NotNil(t, keys.Azure)
	assert.Equal(t, "abc", keys.Azure.Key)
	assert.Equal(t, "westeurope", keys.Azure.Region)
	assert.Nil(t, keys.AWS, "missing key file is skipped")
	assert.Nil(t, keys.OpenAI, "malformed key file is skipped")
	assert.NotEmpty(t, keys.Google)
}

func TestLoadKeysMissingDir(t *testing.T) {
	log, err := commons.NewApplicationLogger()
	require.NoError(t, err)

	s := &Settings{KeysDir: filepath.Join(t.TempDir(), "nope")}
	keys := LoadKeys(s, log)
	assert.Nil(t, keys.Azure)
	assert.Nil(t, keys.AWS)
	assert.Nil(t, keys.OpenAI)
	assert.Empty(t, keys.Google)
}
