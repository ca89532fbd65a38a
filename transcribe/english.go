// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package transcribe

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	ntw "moul.io/number-to-words"
)

// Normalizer produces speakable text from raw text. The Icelandic
// Transcriber and the English normalizer both implement it.
type Normalizer interface {
	TokenTranscribe(text string, o Options) (Normalized, error)
}

// English is a lightweight normalizer for English-language voices.
// It expands numerals and percentages into English words; everything
// else passes through unchanged.
type English struct{}

// NewEnglish returns a normalizer for English-language voices.
func NewEnglish() *English {
	return &English{}
}

var (
	enPercentPattern   = regexp.MustCompile(`-?\b\d+(\.\d+)?%`)
	enNumberPattern    = regexp.MustCompile(`-?\b\d+(\.\d+)?\b`)
	enAmpersandPattern = regexp.MustCompile(` *& *`)
)

func englishNumber(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.Atoi(intPart)
	if err != nil {
		return s
	}
	out := ntw.IntegerToEnUs(n)
	if frac != "" {
		out += " point"
		for _, d := range frac {
			out += " " + ntw.IntegerToEnUs(int(d-'0'))
		}
	}
	if neg {
		out = "minus " + out
	}
	return out
}

// TokenTranscribe rewrites numerals and percentages into English words.
// Existing markup tags are left untouched, so numeric attribute values
// like rate="1.5" survive.
func (e *English) TokenTranscribe(text string, o Options) (Normalized, error) {
	var claimed []claimedSpan

	for _, span := range markupTagPattern.FindAllStringIndex(text, -1) {
		claimed = append(claimed, claimedSpan{start: span[0], end: span[1], repl: text[span[0]:span[1]]})
	}

	if o.Percentages {
		for _, span := range enPercentPattern.FindAllStringIndex(text, -1) {
			if overlapsAny(claimed, span[0], span[1]) {
				continue
			}
			num := strings.TrimSuffix(text[span[0]:span[1]], "%")
			claimed = append(claimed, claimedSpan{
				start: span[0], end: span[1],
				repl: englishNumber(num) + " percent", rule: "percentage",
			})
		}
	}

	for _, span := range enNumberPattern.FindAllStringIndex(text, -1) {
		if overlapsAny(claimed, span[0], span[1]) {
			continue
		}
		claimed = append(claimed, claimedSpan{
			start: span[0], end: span[1],
			repl: englishNumber(text[span[0]:span[1]]), rule: "number",
		})
	}

	for _, span := range enAmpersandPattern.FindAllStringIndex(text, -1) {
		if overlapsAny(claimed, span[0], span[1]) {
			continue
		}
		claimed = append(claimed, claimedSpan{start: span[0], end: span[1], repl: " and ", rule: "ampersand"})
	}

	sort.Slice(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	var b strings.Builder
	var fired []string
	seen := make(map[string]bool)
	prev := 0
	for _, c := range claimed {
		b.WriteString(text[prev:c.start])
		b.WriteString(c.repl)
		prev = c.end
		if c.rule != "" && !seen[c.rule] {
			seen[c.rule] = true
			fired = append(fired, c.rule)
		}
	}
	b.WriteString(text[prev:])

	return Normalized{Text: b.String(), Rules: fired}, nil
}
