// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Package azure synthesizes speech through the Azure Cognitive
// Services Speech SDK.
package azure

import (
	"context"
	"fmt"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/transcribe"
	"github.com/mideind/Icespeak/voices"
)

const providerName = "azure"

var voiceMap = map[string]voices.VoiceInfo{
	// Icelandic
	"Gudrun": {ID: "is-IS-GudrunNeural", Lang: "is-IS", Style: "female"},
	"Gunnar": {ID: "is-IS-GunnarNeural", Lang: "is-IS", Style: "male"},
	// English (UK)
	"Abbi":  {ID: "en-GB-AbbiNeural", Lang: "en-GB", Style: "female"},
	"Alfie": {ID: "en-GB-AlfieNeural", Lang: "en-GB", Style: "male"},
	// English (US)
	"Jenny":   {ID: "en-US-JennyNeural", Lang: "en-US", Style: "female"},
	"Brandon": {ID: "en-US-BrandonNeural", Lang: "en-US", Style: "male"},
	// French
	"Brigitte": {ID: "fr-FR-BrigitteNeural", Lang: "fr-FR", Style: "female"},
	"Alain":    {ID: "fr-FR-AlainNeural", Lang: "fr-FR", Style: "male"},
	// German
	"Amala": {ID: "de-DE-AmalaNeural", Lang: "de-DE", Style: "female"},
	// Danish
	"Christel": {ID: "da-DK-ChristelNeural", Lang: "da-DK", Style: "female"},
	"Jeppe":    {ID: "da-DK-JeppeNeural", Lang: "da-DK", Style: "male"},
	// Swedish
	"Sofie":   {ID: "sv-SE-SofieNeural", Lang: "sv-SE", Style: "female"},
	"Mattias": {ID: "sv-SE-MattiasNeural", Lang: "sv-SE", Style: "male"},
	// Norwegian
	"Finn":   {ID: "nb-NO-FinnNeural", Lang: "nb-NO", Style: "male"},
	"Iselin": {ID: "nb-NO-IselinNeural", Lang: "nb-NO", Style: "female"},
	// Spanish
	"Abril":  {ID: "es-ES-AbrilNeural", Lang: "es-ES", Style: "female"},
	"Alvaro": {ID: "es-ES-AlvaroNeural", Lang: "es-ES", Style: "male"},
	// Polish
	"Agnieszka": {ID: "pl-PL-AgnieszkaNeural", Lang: "pl-PL", Style: "female"},
	"Marek":     {ID: "pl-PL-MarekNeural", Lang: "pl-PL", Style: "male"},
	// Many more voices available, see:
	// https://learn.microsoft.com/en-us/azure/cognitive-services/speech-service/language-support
}

var audioFormats = []string{
	voices.AudioFormatMP3,
	voices.AudioFormatPCM,
	voices.AudioFormatOpus,
}

// Audio format enums for the Azure Speech API, see
// https://learn.microsoft.com/en-us/javascript/api/microsoft-cognitiveservices-speech-sdk/speechsynthesisoutputformat
var formatToEnum = map[string]common.SpeechSynthesisOutputFormat{
	voices.AudioFormatMP3:  common.Audio16Khz32KBitRateMonoMp3,
	voices.AudioFormatPCM:  common.Raw16Khz16BitMonoPcm,
	voices.AudioFormatOpus: common.Ogg16Khz16BitMonoOpus,
}

// Options configure the Azure synthesizer.
type Options struct {
	Key    string
	Region string
	Logger commons.Logger
}

type synthesizer struct {
	key    string
	region string
	log    commons.Logger
	tr     *transcribe.Transcriber
}

// New returns a synthesizer backed by the Azure Speech service.
func New(opts Options) (voices.Synthesizer, error) {
	if opts.Key == "" || opts.Region == "" {
		return nil, fmt.Errorf("%w: azure key or region missing", voices.ErrAuthentication)
	}
	return &synthesizer{
		key:    opts.Key,
		region: opts.Region,
		log:    opts.Logger,
		tr:     newTranscriber(),
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

	config, err := speech.NewSpeechConfigFromSubscription(s.key, s.region)
	if err != nil {
		return nil, voices.NewServiceError(providerName, "config", false, err)
	}
	defer config.Close()

	if err := config.SetSpeechSynthesisOutputFormat(format); err != nil {
		return nil, voices.NewServiceError(providerName, "config", false, err)
	}
	if err := config.SetSpeechSynthesisVoiceName(info.ID); err != nil {
		return nil, voices.NewServiceError(providerName, "config", false, err)
	}

	// A nil audio config keeps the synthesized audio in memory
	synth, err := speech.NewSpeechSynthesizerFromConfig(config, nil)
	if err != nil {
		return nil, voices.NewServiceError(providerName, "synthesizer", false, err)
	}
	defer synth.Close()

	// The Azure Speech API supports SSML, but the notation differs a
	// bit from Amazon Polly's, see
	// https://learn.microsoft.com/en-us/azure/cognitive-services/speech-service/speech-synthesis-markup
	var task chan speech.SpeechSynthesisOutcome
	if opts.TextFormat == voices.TextFormatSSML {
		if opts.Speed != 1.0 {
			text = fmt.Sprintf(`<prosody rate="%g">%s</prosody>`, opts.Speed, text)
		}
		text = fmt.Sprintf(
			`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="%s">`+
				`<voice name="%s">%s</voice></speak>`,
			info.Lang, info.ID, text,
		)
		task = synth.SpeakSsmlAsync(text)
	} else {
		// Not sending SSML, strip any markup from the text
		task = synth.SpeakTextAsync(transcribe.StripMarkup(text))
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case outcome := <-task:
		defer outcome.Close()
		if outcome.Error != nil {
			return nil, voices.NewServiceError(providerName, "synthesize", true, outcome.Error)
		}
		result := outcome.Result
		if result.Reason == common.SynthesizingAudioCompleted {
			return result.AudioData, nil
		}
		details, err := speech.NewCancellationDetailsFromSpeechSynthesisResult(result)
		if err != nil {
			return nil, voices.NewServiceError(providerName, "synthesize", false,
				fmt.Errorf("synthesis failed with reason %d", result.Reason))
		}
		return nil, mapCancellation(details)
	}
}

func mapCancellation(details *speech.CancellationDetails) error {
	err := fmt.Errorf("synthesis canceled: %s", details.ErrorDetails)
	switch details.ErrorCode {
	case common.AuthenticationFailure, common.Forbidden:
		return fmt.Errorf("%w: %s", voices.ErrAuthentication, details.ErrorDetails)
	case common.TooManyRequests, common.ConnectionFailure,
		common.ServiceTimeout, common.ServiceUnavailable:
		return voices.NewServiceError(providerName, "synthesize", true, err)
	default:
		return voices.NewServiceError(providerName, "synthesize", false, err)
	}
}
