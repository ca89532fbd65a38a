// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.
//
// Icespeak turns Icelandic text into speech. It normalizes raw text
// into a speakable form, dispatches synthesis to one of several speech
// service providers and caches the resulting audio files on disk.

package icespeak

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mideind/Icespeak/internal/audiocache"
	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/settings"
	"github.com/mideind/Icespeak/transcribe"
	"github.com/mideind/Icespeak/voices"
	"github.com/mideind/Icespeak/voices/awspolly"
	"github.com/mideind/Icespeak/voices/azure"
	"github.com/mideind/Icespeak/voices/google"
	"github.com/mideind/Icespeak/voices/openai"
	"github.com/mideind/Icespeak/voices/tiro"
)

// Re-exported so that callers only need to import the root package.
type (
	// TTSOptions control a single synthesis request.
	TTSOptions = voices.TTSOptions
	// VoiceInfo describes a single voice.
	VoiceInfo = voices.VoiceInfo
	// Synthesizer is the interface implemented by speech service adapters.
	Synthesizer = voices.Synthesizer
)

// Synthesis error sentinels, re-exported from the voices package.
var (
	ErrUnknownProvider   = voices.ErrUnknownProvider
	ErrUnknownVoice      = voices.ErrUnknownVoice
	ErrUnsupportedOption = voices.ErrUnsupportedOption
	ErrAuthentication    = voices.ErrAuthentication
)

// TTSOutput is the result of a synthesis request: the audio file that
// was written (or found in the cache) and the text that was actually
// sent to the speech service after normalization.
type TTSOutput struct {
	File string
	Text string
}

// TTS is the synthesis orchestrator. It owns the provider registry and
// the audio file cache and is safe for concurrent use.
type TTS struct {
	settings *settings.Settings
	log      commons.Logger
	registry *voices.Registry
	cache    *audiocache.Cache

	// TranscriptionOptions configure text normalization for requests
	// with Transcribe set. Defaults to transcribe.DefaultOptions().
	TranscriptionOptions transcribe.Options
}

// New builds a TTS instance with every provider whose API key is found
// in the keys directory. Providers with missing or malformed keys are
// skipped with a warning; the keyless Tiro service is always available.
func New(s *settings.Settings, log commons.Logger) (*TTS, error) {
	keys := settings.LoadKeys(s, log)

	var providers []voices.Synthesizer
	if keys.Azure != nil {
		p, err := azure.New(azure.Options{Key: keys.Azure.Key, Region: keys.Azure.Region, Logger: log})
		if err != nil {
			log.Warnf("azure voices unavailable: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if keys.AWS != nil {
		p, err := awspolly.New(awspolly.Options{
			AccessKeyID:     keys.AWS.AccessKeyID,
			SecretAccessKey: keys.AWS.SecretAccessKey,
			Region:          keys.AWS.RegionName,
			Logger:          log,
		})
		if err != nil {
			log.Warnf("aws polly voices unavailable: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if keys.Google != nil {
		p, err := google.New(google.Options{CredentialsJSON: keys.Google, Logger: log})
		if err != nil {
			log.Warnf("google voices unavailable: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if keys.OpenAI != nil {
		p, err := openai.New(openai.Options{APIKey: keys.OpenAI.APIKey, Logger: log})
		if err != nil {
			log.Warnf("openai voices unavailable: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if p, err := tiro.New(tiro.Options{Logger: log}); err != nil {
		log.Warnf("tiro voices unavailable: %v", err)
	} else {
		providers = append(providers, p)
	}

	return NewWithProviders(s, log, providers...)
}

// NewWithProviders builds a TTS instance over an explicit set of
// synthesizers. Voices are claimed on a first-registered basis.
func NewWithProviders(s *settings.Settings, log commons.Logger, providers ...voices.Synthesizer) (*TTS, error) {
	if err := os.MkdirAll(s.AudioDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audio dir %q: %w", s.AudioDir, err)
	}

	registry := voices.NewRegistry(log)
	for _, p := range providers {
		registry.Register(p)
	}

	cache, err := audiocache.New(s.AudioCacheSize, s.AudioCacheClean, log)
	if err != nil {
		return nil, err
	}

	return &TTS{
		settings:             s,
		log:                  log,
		registry:             registry,
		cache:                cache,
		TranscriptionOptions: transcribe.DefaultOptions(),
	}, nil
}

// DefaultOptions returns request options filled from the settings,
// with transcription enabled.
func (t *TTS) DefaultOptions() TTSOptions {
	return TTSOptions{
		Voice:       t.settings.DefaultVoice,
		Speed:       t.settings.DefaultVoiceSpeed,
		TextFormat:  t.settings.DefaultTextFormat,
		AudioFormat: t.settings.DefaultAudioFormat,
		Transcribe:  true,
	}
}

// Voices lists the names of all registered voices.
func (t *TTS) Voices() []string { return t.registry.VoiceNames() }

func (t *TTS) applyDefaults(opts *TTSOptions) {
	if opts.Voice == "" {
		opts.Voice = t.settings.DefaultVoice
	}
	if opts.Speed == 0 {
		opts.Speed = t.settings.DefaultVoiceSpeed
	}
	if opts.TextFormat == "" {
		opts.TextFormat = t.settings.DefaultTextFormat
	}
	if opts.AudioFormat == "" {
		opts.AudioFormat = t.settings.DefaultAudioFormat
	}
}

// SynthesizeToFile turns text into an audio file, consulting the cache
// first. The request is validated against the voice's capabilities
// before any text processing or network traffic happens. Identical
// requests share a single synthesis call and a single cached file.
func (t *TTS) SynthesizeToFile(ctx context.Context, text string, opts TTSOptions) (TTSOutput, error) {
	t.applyDefaults(&opts)

	syn, err := t.registry.Validate(opts)
	if err != nil {
		return TTSOutput{}, err
	}

	speakText := text
	if opts.Transcribe {
		speakText, err = t.normalize(syn, text, opts)
		if err != nil {
			return TTSOutput{}, err
		}
	}

	// The cache key is derived from the raw input text, so a hit skips
	// normalization-independent work only; normalization is pure and
	// already done above, keeping TTSOutput.Text correct on hits too.
	key := audiocache.RequestKey(text, opts)
	path, hit, err := t.cache.GetOrCreate(ctx, key, func() (string, error) {
		data, err := syn.Synthesize(ctx, speakText, opts)
		if err != nil {
			return "", err
		}
		outfile := t.settings.EmptyAudioFile(opts.AudioFormat)
		if err := os.WriteFile(outfile, data, 0o644); err != nil {
			return "", fmt.Errorf("writing audio file: %w", err)
		}
		t.log.Debugf("synthesized %d bytes with voice %q to %s", len(data), opts.Voice, outfile)
		return outfile, nil
	})
	if err != nil {
		return TTSOutput{}, err
	}
	if hit {
		t.log.Debugf("audio cache hit for voice %q", opts.Voice)
	}
	return TTSOutput{File: path, Text: speakText}, nil
}

// normalize rewrites text into its speakable form. SSML input is run
// through the markup-aware parser when the voice's transcriber supports
// it; plain text goes through token transcription.
func (t *TTS) normalize(syn voices.Synthesizer, text string, opts TTSOptions) (string, error) {
	norm := syn.Transcriber()
	if opts.TextFormat == voices.TextFormatSSML {
		if tr, ok := norm.(*transcribe.Transcriber); ok {
			return transcribe.NewParser(tr).Transcribe(text)
		}
	}
	res, err := norm.TokenTranscribe(text, t.TranscriptionOptions)
	if err != nil {
		return "", err
	}
	if len(res.Rules) > 0 {
		t.log.Debugf("transcription rules applied: %v", res.Rules)
	}
	return res.Text, nil
}

// Close releases the audio cache and shuts down any providers holding
// network resources. When the cache is configured to clean up after
// itself, all cache-owned audio files are deleted.
func (t *TTS) Close() error {
	t.cache.Close()
	var firstErr error
	for _, name := range t.registry.ProviderNames() {
		p, err := t.registry.Provider(name)
		if err != nil {
			continue
		}
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
