// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Package google synthesizes speech through the Google Cloud
// Text-to-Speech API.
package google

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/transcribe"
	"github.com/mideind/Icespeak/voices"
)

const providerName = "google"

var voiceMap = map[string]voices.VoiceInfo{
	"Anna": {ID: "is-IS-Standard-A", Lang: "is-IS", Style: "female"},
}

// Only mp3 for now.
var audioFormats = []string{voices.AudioFormatMP3}

// Options configure the Google synthesizer.
type Options struct {
	// CredentialsJSON is the raw service account key file.
	CredentialsJSON []byte
	Logger          commons.Logger
}

type synthesizer struct {
	client *texttospeech.Client
	log    commons.Logger
	tr     *transcribe.Transcriber
}

// New returns a synthesizer backed by Google Cloud TTS.
func New(opts Options) (voices.Synthesizer, error) {
	if len(opts.CredentialsJSON) == 0 {
		return nil, fmt.Errorf("%w: google service account key missing", voices.ErrAuthentication)
	}
	client, err := texttospeech.NewClient(
		context.Background(),
		option.WithCredentialsJSON(opts.CredentialsJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voices.ErrAuthentication, err)
	}
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

// Close releases the underlying gRPC connection.
func (s *synthesizer) Close() error {
	return s.client.Close()
}

func (s *synthesizer) Synthesize(ctx context.Context, text string, opts voices.TTSOptions) ([]byte, error) {
	info, ok := voiceMap[opts.Voice]
	if !ok {
		return nil, fmt.Errorf("%w: %q", voices.ErrUnknownVoice, opts.Voice)
	}
	if opts.AudioFormat != voices.AudioFormatMP3 {
		return nil, fmt.Errorf("%w: audio format %q", voices.ErrUnsupportedOption, opts.AudioFormat)
	}

	input := &texttospeechpb.SynthesisInput{
		InputSource: &texttospeechpb.SynthesisInput_Text{Text: transcribe.StripMarkup(text)},
	}
	if opts.TextFormat == voices.TextFormatSSML {
		input.InputSource = &texttospeechpb.SynthesisInput_Ssml{Ssml: text}
	}

	resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: input,
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: info.Lang,
			Name:         info.ID,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  opts.Speed,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.GetAudioContent(), nil
}

func mapError(err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %v", voices.ErrAuthentication, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return voices.NewServiceError(providerName, "synthesize", true, err)
	default:
		return voices.NewServiceError(providerName, "synthesize", false, err)
	}
}
