// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package voices

import (
	"fmt"
	"sort"

	"github.com/mideind/Icespeak/pkg/commons"
)

// Registry maps voice names to the providers that offer them.
// Registration order matters: when two providers offer a voice with
// the same name, the first one registered keeps it.
type Registry struct {
	log       commons.Logger
	providers map[string]Synthesizer
	byVoice   map[string]Synthesizer
}

// NewRegistry returns an empty provider registry.
func NewRegistry(log commons.Logger) *Registry {
	return &Registry{
		log:       log,
		providers: make(map[string]Synthesizer),
		byVoice:   make(map[string]Synthesizer),
	}
}

// Register adds a provider and claims its voice names. Voice names
// already claimed by an earlier provider are left untouched.
func (r *Registry) Register(s Synthesizer) {
	r.providers[s.Name()] = s
	for voice := range s.Voices() {
		if prev, ok := r.byVoice[voice]; ok {
			r.log.Warnf(
				"voice %q already provided by %q, ignoring registration from %q",
				voice, prev.Name(), s.Name(),
			)
			continue
		}
		r.byVoice[voice] = s
	}
}

// Provider returns the provider registered under the given name.
func (r *Registry) Provider(name string) (Synthesizer, error) {
	s, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return s, nil
}

// ProviderNames lists all registered provider names, sorted.
func (r *Registry) ProviderNames() []string {
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResolveVoice returns the provider offering the given voice.
func (r *Registry) ResolveVoice(voice string) (Synthesizer, error) {
	s, ok := r.byVoice[voice]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVoice, voice)
	}
	return s, nil
}

// VoiceNames lists all registered voice names, sorted.
func (r *Registry) VoiceNames() []string {
	names := make([]string, 0, len(r.byVoice))
	for v := range r.byVoice {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// Validate checks a request against the provider offering its voice,
// before any network traffic happens. It returns the resolved provider
// on success.
func (r *Registry) Validate(opts TTSOptions) (Synthesizer, error) {
	s, err := r.ResolveVoice(opts.Voice)
	if err != nil {
		return nil, err
	}

	if opts.TextFormat != TextFormatText && opts.TextFormat != TextFormatSSML {
		return nil, fmt.Errorf("%w: text format %q", ErrUnsupportedOption, opts.TextFormat)
	}

	if opts.Speed < 0.5 || opts.Speed > 2.0 {
		return nil, fmt.Errorf("%w: speed %.2f outside [0.5, 2.0]", ErrUnsupportedOption, opts.Speed)
	}

	for _, f := range s.AudioFormats() {
		if f == opts.AudioFormat {
			return s, nil
		}
	}
	return nil, fmt.Errorf(
		"%w: provider %q does not produce audio format %q",
		ErrUnsupportedOption, s.Name(), opts.AudioFormat,
	)
}
