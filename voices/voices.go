// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Package voices defines the uniform capability surface for speech
// synthesis providers and the registry mapping voice names to them.
package voices

import (
	"context"

	"github.com/mideind/Icespeak/transcribe"
)

// Text formats accepted by Synthesize.
const (
	TextFormatText = "text"
	TextFormatSSML = "ssml"
)

// Audio formats. Not every provider supports every format.
const (
	AudioFormatMP3       = "mp3"
	AudioFormatWAV       = "wav"
	AudioFormatAAC       = "aac"
	AudioFormatFLAC      = "flac"
	AudioFormatOGGVorbis = "ogg_vorbis"
	AudioFormatOpus      = "opus"
	AudioFormatPCM       = "pcm"
)

// TTSOptions are the per-request synthesis options. A value type:
// requests with equal field values are interchangeable and derive
// equal cache keys.
type TTSOptions struct {
	// Voice is the voice name, e.g. "Gudrun".
	Voice string
	// Speed is the speech rate multiplier, 0.5-2.0.
	Speed float64
	// TextFormat is either "text" or "ssml".
	TextFormat string
	// AudioFormat selects the output encoding, e.g. "mp3".
	AudioFormat string
	// Transcribe controls whether the text is rewritten into
	// speech-friendly form before synthesis.
	Transcribe bool
}

// VoiceInfo describes a single voice offered by a provider.
type VoiceInfo struct {
	// ID is the provider-specific voice identifier,
	// e.g. "is-IS-GudrunNeural".
	ID string
	// Lang is the IETF language tag of the voice, e.g. "is-IS".
	Lang string
	// Style is a short description, e.g. "female".
	Style string
}

// Synthesizer is the capability interface implemented by every
// provider adapter. Instances are long-lived and safe for concurrent
// use; they are constructed once with explicit credentials.
type Synthesizer interface {
	// Name is the provider name, e.g. "azure".
	Name() string
	// Voices lists the voices this provider offers, by voice name.
	Voices() map[string]VoiceInfo
	// AudioFormats lists the audio formats this provider can produce.
	AudioFormats() []string
	// Transcriber returns the text normalizer suited to this
	// provider's voices.
	Transcriber() transcribe.Normalizer
	// Synthesize turns already-normalized text into audio bytes.
	Synthesize(ctx context.Context, text string, opts TTSOptions) ([]byte, error)
}
