// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Package tiro synthesizes speech through Tiro's freely available
// speech synthesis API, see https://tts.tiro.is.
package tiro

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/transcribe"
	"github.com/mideind/Icespeak/voices"
)

const (
	providerName = "tiro"
	defaultURL   = "https://tts.tiro.is"
	speechPath   = "/v0/speech"
)

var voiceMap = map[string]voices.VoiceInfo{
	"Alfur":    {ID: "Alfur", Lang: "is-IS", Style: "male"},
	"Dilja":    {ID: "Dilja", Lang: "is-IS", Style: "female"},
	"Bjartur":  {ID: "Bjartur", Lang: "is-IS", Style: "male"},
	"Rosa":     {ID: "Rosa", Lang: "is-IS", Style: "female"},
	"Alfur_v2": {ID: "Alfur_v2", Lang: "is-IS", Style: "male"},
	"Dilja_v2": {ID: "Dilja_v2", Lang: "is-IS", Style: "female"},
}

var audioFormats = []string{
	voices.AudioFormatMP3,
	voices.AudioFormatPCM,
	voices.AudioFormatOGGVorbis,
}

// Options configure the Tiro synthesizer. No credentials are needed.
type Options struct {
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
	Logger  commons.Logger
}

type speechRequest struct {
	Engine       string `json:"Engine"`
	LanguageCode string `json:"LanguageCode"`
	OutputFormat string `json:"OutputFormat"`
	SampleRate   string `json:"SampleRate"`
	Text         string `json:"Text"`
	TextType     string `json:"TextType"`
	VoiceID      string `json:"VoiceId"`
}

type synthesizer struct {
	client *resty.Client
	log    commons.Logger
	tr     *transcribe.Transcriber
}

// New returns a synthesizer backed by the Tiro TTS API.
func New(opts Options) (voices.Synthesizer, error) {
	url := opts.BaseURL
	if url == "" {
		url = defaultURL
	}
	client := resty.New().
		SetBaseURL(url).
		SetTimeout(10 * time.Second)
	return &synthesizer{
		client: client,
		log:    opts.Logger,
		tr:     transcribe.New(),
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

	// Tiro's API supports a subset of SSML tags, see
	// https://tts.tiro.is/#tag/speech
	// For now we just strip all markup and send plain text.
	body := speechRequest{
		Engine:       "standard",
		LanguageCode: info.Lang,
		OutputFormat: opts.AudioFormat,
		SampleRate:   "16000",
		Text:         transcribe.StripMarkup(text),
		TextType:     voices.TextFormatText,
		VoiceID:      info.ID,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(speechPath)
	if err != nil {
		return nil, voices.NewServiceError(providerName, "synthesize", true, err)
	}

	code := resp.StatusCode()
	switch {
	case code == 200:
		return resp.Body(), nil
	case code == 429 || code >= 500:
		return nil, voices.NewServiceError(providerName, "synthesize", true,
			fmt.Errorf("received HTTP status %d from Tiro server", code))
	default:
		return nil, voices.NewServiceError(providerName, "synthesize", false,
			fmt.Errorf("received HTTP status %d from Tiro server", code))
	}
}
