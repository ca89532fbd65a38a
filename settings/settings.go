// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.
//
// Shared settings for the Icespeak library, read from the environment.

package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Speed limits for synthesized speech.
const (
	MinSpeed = 0.5
	MaxSpeed = 2.0
)

// Settings holds all library configuration. Every field can be set via
// an ICESPEAK_-prefixed environment variable, e.g. ICESPEAK_DEFAULT_VOICE.
type Settings struct {
	DefaultVoice       string  `mapstructure:"default_voice" validate:"required"`
	DefaultVoiceSpeed  float64 `mapstructure:"default_voice_speed" validate:"gte=0.5,lte=2"`
	DefaultTextFormat  string  `mapstructure:"default_text_format" validate:"oneof=text ssml"`
	DefaultAudioFormat string  `mapstructure:"default_audio_format" validate:"required"`

	// AudioDir is where output audio files are written. If unset, a
	// directory is created under the platform's temporary directory.
	AudioDir string `mapstructure:"audio_dir" validate:"required"`

	// AudioCacheSize bounds the number of cached audio files.
	AudioCacheSize int `mapstructure:"audio_cache_size" validate:"gt=0"`
	// AudioCacheClean deletes cache-owned audio files on eviction and
	// on shutdown.
	AudioCacheClean bool `mapstructure:"audio_cache_clean"`

	KeysDir             string `mapstructure:"keys_dir" validate:"required"`
	AWSPollyKeyFilename string `mapstructure:"awspolly_key_filename" validate:"required"`
	AzureKeyFilename    string `mapstructure:"azure_key_filename" validate:"required"`
	GoogleKeyFilename   string `mapstructure:"google_key_filename" validate:"required"`
	OpenAIKeyFilename   string `mapstructure:"openai_key_filename" validate:"required"`

	LogLevel string `mapstructure:"log_level" validate:"required"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DEFAULT_VOICE", "Gudrun")
	v.SetDefault("DEFAULT_VOICE_SPEED", 1.0)
	v.SetDefault("DEFAULT_TEXT_FORMAT", "ssml")
	v.SetDefault("DEFAULT_AUDIO_FORMAT", "mp3")

	v.SetDefault("AUDIO_DIR", "")
	v.SetDefault("AUDIO_CACHE_SIZE", 300)
	v.SetDefault("AUDIO_CACHE_CLEAN", true)

	v.SetDefault("KEYS_DIR", "keys")
	v.SetDefault("AWSPOLLY_KEY_FILENAME", "AWSPollyServerKey.json")
	v.SetDefault("AZURE_KEY_FILENAME", "AzureSpeechServerKey.json")
	v.SetDefault("GOOGLE_KEY_FILENAME", "GoogleServiceAccount.json")
	v.SetDefault("OPENAI_KEY_FILENAME", "OpenAIKey.json")

	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads settings from the environment and validates them.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("icespeak")
	v.AutomaticEnv()
	setDefaults(v)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	if s.AudioDir == "" {
		dir := filepath.Join(os.TempDir(), "icespeak")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("settings: creating audio dir: %w", err)
		}
		s.AudioDir = dir
	}

	validate := validator.New()
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return &s, nil
}

// EmptyAudioFile returns a fresh, uniquely named path in the audio
// directory with the suffix conventional for the given audio format.
func (s *Settings) EmptyAudioFile(audioFormat string) string {
	return filepath.Join(s.AudioDir, fmt.Sprintf("%s.%s", uuid.NewString(), SuffixForAudioFormat(audioFormat)))
}

const fallbackSuffix = "data"

var audioFormatToSuffix = map[string]string{
	"mp3":        "mp3",
	"wav":        "wav",
	"aac":        "aac",
	"flac":       "flac",
	"ogg_vorbis": "ogg",
	"pcm":        "pcm",
	// Recommended filename extension for Ogg Opus files is '.opus'.
	"opus": "opus",
}

const binaryMimeType = "application/octet-stream"

var audioFormatToMimeType = map[string]string{
	"mp3":        "audio/mpeg",
	"wav":        "audio/wav",
	"aac":        "audio/aac",
	"flac":       "audio/flac",
	"ogg_vorbis": "audio/ogg",
	"pcm":        binaryMimeType,
	// Uses an Ogg container. See https://www.rfc-editor.org/rfc/rfc7845
	"opus": "audio/ogg",
}

// SuffixForAudioFormat returns the file suffix for the given audio format.
func SuffixForAudioFormat(fmt string) string {
	if s, ok := audioFormatToSuffix[fmt]; ok {
		return s
	}
	return fallbackSuffix
}

// MimeTypeForAudioFormat returns the mime type for the given audio format.
func MimeTypeForAudioFormat(fmt string) string {
	if m, ok := audioFormatToMimeType[fmt]; ok {
		return m
	}
	return binaryMimeType
}
