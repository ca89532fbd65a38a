// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Package openai synthesizes speech through the OpenAI Speech API.
// The OpenAI voices are English-language voices; they get the English
// normalizer rather than the Icelandic one.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/transcribe"
	"github.com/mideind/Icespeak/voices"
)

const providerName = "openai"

var voiceMap = map[string]voices.VoiceInfo{
	"alloy":   {ID: "alloy", Lang: "en-US", Style: "neutral"},
	"echo":    {ID: "echo", Lang: "en-US", Style: "male"},
	"fable":   {ID: "fable", Lang: "en-GB", Style: "male"},
	"onyx":    {ID: "onyx", Lang: "en-US", Style: "male"},
	"nova":    {ID: "nova", Lang: "en-US", Style: "female"},
	"shimmer": {ID: "shimmer", Lang: "en-US", Style: "female"},
}

var audioFormats = []string{
	voices.AudioFormatMP3,
	voices.AudioFormatOpus,
	voices.AudioFormatAAC,
	voices.AudioFormatFLAC,
	voices.AudioFormatWAV,
	voices.AudioFormatPCM,
}

var formatToEnum = map[string]oai.AudioSpeechNewParamsResponseFormat{
	voices.AudioFormatMP3:  oai.AudioSpeechNewParamsResponseFormatMP3,
	voices.AudioFormatOpus: oai.AudioSpeechNewParamsResponseFormatOpus,
	voices.AudioFormatAAC:  oai.AudioSpeechNewParamsResponseFormatAAC,
	voices.AudioFormatFLAC: oai.AudioSpeechNewParamsResponseFormatFLAC,
	voices.AudioFormatWAV:  oai.AudioSpeechNewParamsResponseFormatWAV,
	voices.AudioFormatPCM:  oai.AudioSpeechNewParamsResponseFormatPCM,
}

// Options configure the OpenAI synthesizer.
type Options struct {
	APIKey string
	Logger commons.Logger
}

type synthesizer struct {
	client oai.Client
	log    commons.Logger
	tr     *transcribe.English
}

// New returns a synthesizer backed by the OpenAI Speech API.
func New(opts Options) (voices.Synthesizer, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key missing", voices.ErrAuthentication)
	}
	return &synthesizer{
		client: oai.NewClient(option.WithAPIKey(opts.APIKey)),
		log:    opts.Logger,
		tr:     transcribe.NewEnglish(),
	}, nil
}

func (s *synthesizer) Name() string                        { return providerName }
func (s *synthesizer) Voices() map[string]voices.VoiceInfo { return voiceMap }
func (s *synthesizer) AudioFormats() []string              { return audioFormats }
func (s *synthesizer) Transcriber() transcribe.Normalizer  { return s.tr }

func (s *synthesizer) Synthesize(ctx context.Context, text string, opts voices.TTSOptions) ([]byte, error) {
	info, ok := voiceMap[opts.Voice]
	if !ok {
		return nil, fmt.Errorf("%w: %q", voices.ErrUnknownVoice, opts.Voice)
	}
	format, ok := formatToEnum[opts.AudioFormat]
	if !ok {
		return nil, fmt.Errorf("%w: audio format %q", voices.ErrUnsupportedOption, opts.AudioFormat)
	}

	// The speech endpoint takes plain text only
	// TODO: add option of the tts-1-hd model (slower, higher quality)
	res, err := s.client.Audio.Speech.New(ctx, oai.AudioSpeechNewParams{
		Model:          oai.SpeechModelTTS1,
		Voice:          oai.AudioSpeechNewParamsVoice(info.ID),
		Input:          transcribe.StripMarkup(text),
		ResponseFormat: format,
		Speed:          oai.Float(opts.Speed),
	})
	if err != nil {
		return nil, mapError(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, voices.NewServiceError(providerName, "read response", true, err)
	}
	return data, nil
}

func mapError(err error) error {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return fmt.Errorf("%w: %v", voices.ErrAuthentication, err)
		case apiErr.StatusCode == 429 || apiErr.StatusCode >= 500:
			return voices.NewServiceError(providerName, "synthesize", true, err)
		}
		return voices.NewServiceError(providerName, "synthesize", false, err)
	}
	return voices.NewServiceError(providerName, "synthesize", true, err)
}
