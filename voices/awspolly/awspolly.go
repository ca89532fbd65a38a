// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Package awspolly synthesizes speech through Amazon Polly.
package awspolly

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/aws/smithy-go"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/transcribe"
	"github.com/mideind/Icespeak/voices"
)

const providerName = "aws_polly"

var voiceMap = map[string]voices.VoiceInfo{
	"Karl": {ID: "Karl", Lang: "is-IS", Style: "male"},
	"Dora": {ID: "Dora", Lang: "is-IS", Style: "female"},
}

var audioFormats = []string{
	voices.AudioFormatMP3,
	voices.AudioFormatPCM,
	voices.AudioFormatOGGVorbis,
}

// Options configure the Polly synthesizer.
type Options struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Logger          commons.Logger
}

type synthesizer struct {
	client *polly.Client
	log    commons.Logger
	tr     *transcribe.Transcriber
}

// New returns a synthesizer backed by Amazon Polly.
func New(opts Options) (voices.Synthesizer, error) {
	if opts.AccessKeyID == "" || opts.SecretAccessKey == "" || opts.Region == "" {
		return nil, fmt.Errorf("%w: aws polly credentials missing", voices.ErrAuthentication)
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voices.ErrAuthentication, err)
	}
	return &synthesizer{
		client: polly.NewFromConfig(cfg),
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

	textType := types.TextTypeText
	if opts.TextFormat == voices.TextFormatSSML {
		textType = types.TextTypeSsml
		// Adjust voice speed as appropriate
		if opts.Speed != 1.0 {
			text = fmt.Sprintf(`<prosody rate="%d%%">%s</prosody>`, int(opts.Speed*100), text)
		}
		// Wrap text in the required <speak> tag
		if !hasSpeakTag(text) {
			text = "<speak>" + text + "</speak>"
		}
	}

	out, err := s.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		TextType:     textType,
		VoiceId:      types.VoiceId(info.ID),
		LanguageCode: types.LanguageCode(info.Lang),
		SampleRate:   aws.String("16000"),
		OutputFormat: types.OutputFormat(opts.AudioFormat),
	})
	if err != nil {
		return nil, mapError(err)
	}
	defer out.AudioStream.Close()

	data, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, voices.NewServiceError(providerName, "read audio stream", true, err)
	}
	return data, nil
}

func hasSpeakTag(text string) bool {
	return len(text) >= 7 && text[:7] == "<speak>"
}

func mapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "InvalidSignatureException", "AccessDeniedException":
			return fmt.Errorf("%w: %v", voices.ErrAuthentication, err)
		case "ThrottlingException", "ServiceFailureException", "ServiceUnavailableException":
			return voices.NewServiceError(providerName, "synthesize", true, err)
		}
		return voices.NewServiceError(providerName, "synthesize", false, err)
	}
	// Transport-level failure, worth retrying
	return voices.NewServiceError(providerName, "synthesize", true, err)
}
