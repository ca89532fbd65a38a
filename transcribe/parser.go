// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package transcribe

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/mideind/Icespeak/pkg/utils"
)

// NormalizationError reports malformed or unbalanced GSSML markup.
type NormalizationError struct {
	Reason string
}

func (e *NormalizationError) Error() string {
	return "gssml: " + e.Reason
}

// Parser parses voice strings containing <greynir> tags and calls the
// transcription method corresponding to each tag's type attribute.
//
// Any other markup tags are removed from the text, as they can
// interfere with the voice engines.
//
// Example:
//
//	p := transcribe.NewParser(tr)
//	out, err := p.Transcribe(`<greynir type="number" gender="kvk">5</greynir> konur`)
type Parser struct {
	tr *Transcriber
}

// NewParser returns a parser dispatching to the given transcriber's
// pronunciation tables.
func NewParser(tr *Transcriber) *Parser {
	return &Parser{tr: tr}
}

func wordOptions(attrs utils.Option) WordOptions {
	var o WordOptions
	if v, err := attrs.GetString("case"); err == nil {
		o.Case = Case(v)
	}
	if v, err := attrs.GetString("gender"); err == nil {
		o.Gender = Gender(v)
	}
	if v, err := attrs.GetString("number"); err == nil {
		o.Number = GramNumber(v)
	}
	if v, err := attrs.GetBool("one_hundred"); err == nil {
		o.OneHundred = v
	}
	if v, err := attrs.GetBool("comma_null"); err == nil {
		o.CommaNull = v
	}
	return o
}

// GSSML tag types and the transcription methods they dispatch to.
// As GSSML is text-based, all arguments arrive as attribute strings.
var gssmlHandlers = map[string]func(t *Transcriber, content string, attrs utils.Option) string{
	"number":   func(t *Transcriber, c string, a utils.Option) string { return t.Number(c, wordOptions(a)) },
	"numbers":  func(t *Transcriber, c string, a utils.Option) string { return t.Numbers(c, wordOptions(a)) },
	"float":    func(t *Transcriber, c string, a utils.Option) string { return t.Float(c, wordOptions(a)) },
	"floats":   func(t *Transcriber, c string, a utils.Option) string { return t.Floats(c, wordOptions(a)) },
	"ordinal":  func(t *Transcriber, c string, a utils.Option) string { return t.Ordinal(c, wordOptions(a)) },
	"ordinals": func(t *Transcriber, c string, a utils.Option) string { return t.Ordinals(c, wordOptions(a)) },
	"digits":   func(t *Transcriber, c string, a utils.Option) string { return t.Digits(c) },
	"phone":    func(t *Transcriber, c string, a utils.Option) string { return t.Phone(c) },
	"time":     func(t *Transcriber, c string, a utils.Option) string { return t.Time(c) },
	"year":     func(t *Transcriber, c string, a utils.Option) string { return t.Year(c) },
	"years":    func(t *Transcriber, c string, a utils.Option) string { return t.Years(c) },
	"abbrev":   func(t *Transcriber, c string, a utils.Option) string { return t.Abbrev(c) },
	"email":    func(t *Transcriber, c string, a utils.Option) string { return t.Email(c) },
	"domain":   func(t *Transcriber, c string, a utils.Option) string { return t.Domain(c) },
	"entity":   func(t *Transcriber, c string, a utils.Option) string { return t.Entity(c) },
	"person":   func(t *Transcriber, c string, a utils.Option) string { return t.Person(c) },
	"molecule": func(t *Transcriber, c string, a utils.Option) string { return t.Molecule(c) },
	"numalpha": func(t *Transcriber, c string, a utils.Option) string { return t.NumAlpha(c) },
	"username": func(t *Transcriber, c string, a utils.Option) string { return t.Username(c) },
	"paragraph": func(t *Transcriber, c string, a utils.Option) string {
		return t.Paragraph(c)
	},
	"sentence": func(t *Transcriber, c string, a utils.Option) string {
		return t.Sentence(c)
	},
	"date": func(t *Transcriber, c string, a utils.Option) string {
		cs := CaseNf
		if v, err := a.GetString("case"); err == nil {
			cs = Case(v)
		}
		return t.Date(c, cs)
	},
	"spell": func(t *Transcriber, c string, a utils.Option) string {
		pause, _ := a.GetString("pause_length")
		literal, _ := a.GetBool("literal")
		return t.Spell(c, pause, literal)
	},
	"currency": func(t *Transcriber, c string, a utils.Option) string {
		num := NumberFt
		if v, err := a.GetString("number"); err == nil {
			num = GramNumber(v)
		}
		return t.Currency(c, num)
	},
	"unit": func(t *Transcriber, c string, a utils.Option) string {
		num := NumberFt
		if v, err := a.GetString("number"); err == nil {
			num = GramNumber(v)
		}
		return t.Unit(c, num)
	},
	"vbreak": func(t *Transcriber, c string, a utils.Option) string {
		if v, err := a.GetString("time"); err == nil {
			return t.VBreak(v)
		}
		if v, err := a.GetString("strength"); err == nil {
			return t.BreakStrength(v)
		}
		return t.VBreak("")
	},
}

func (p *Parser) dispatch(attrs utils.Option, content string) (string, error) {
	typ, err := attrs.GetString("type")
	if err != nil || typ == "" {
		return "", &NormalizationError{Reason: fmt.Sprintf("missing type attribute in <greynir> tag around %q", content)}
	}
	handler, ok := gssmlHandlers[typ]
	if !ok {
		return "", &NormalizationError{Reason: fmt.Sprintf("%q is not a transcription method", typ)}
	}
	return handler(p.tr, content, attrs), nil
}

func tagAttrs(tok html.Token) utils.Option {
	attrs := make(utils.Option, len(tok.Attr))
	for _, a := range tok.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

// Transcribe parses a voice string and returns it with every <greynir>
// tag replaced by the output of its transcription method. The first
// letter of the result is capitalized.
func (p *Parser) Transcribe(voiceString string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(voiceString))

	// Stack of partial strings; a <greynir> start tag pushes a new
	// frame, the matching end tag pops it and appends the transcribed
	// content to the frame below.
	strStack := []string{""}
	var attrStack []utils.Option

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if len(strStack) != 1 {
				return "", &NormalizationError{Reason: "unbalanced markup tags"}
			}
			return capitalize(strStack[0]), nil

		case html.TextToken:
			strStack[len(strStack)-1] += p.tr.DangerSymbols(string(z.Text()))

		case html.StartTagToken:
			tok := z.Token()
			if tok.Data == "greynir" {
				strStack = append(strStack, "")
				attrStack = append(attrStack, tagAttrs(tok))
			}
			// Other markup tags are stripped

		case html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data == "greynir" {
				// E.g. <greynir type="vbreak" time="100ms" />
				out, err := p.dispatch(tagAttrs(tok), "")
				if err != nil {
					return "", err
				}
				strStack[len(strStack)-1] += out
			}

		case html.EndTagToken:
			tok := z.Token()
			if tok.Data != "greynir" {
				continue
			}
			if len(strStack) < 2 || len(attrStack) == 0 {
				return "", &NormalizationError{Reason: "unexpected </greynir> tag"}
			}
			content := strStack[len(strStack)-1]
			strStack = strStack[:len(strStack)-1]
			attrs := attrStack[len(attrStack)-1]
			attrStack = attrStack[:len(attrStack)-1]

			out, err := p.dispatch(attrs, content)
			if err != nil {
				return "", err
			}
			strStack[len(strStack)-1] += out
		}
	}
}

// GSSML wraps content in a <greynir> tag of the given type, for later
// dispatch by the Parser. Empty content produces a self-closing tag.
//
// Example:
//
//	GSSML("5", "number", map[string]string{"gender": "kk"})
//	// `<greynir type="number" gender="kk">5</greynir>`
func GSSML(content, typ string, attrs map[string]string) string {
	var b strings.Builder
	b.WriteString(`<greynir type="` + typ + `"`)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" " + k + `="` + attrs[k] + `"`)
	}
	if content == "" {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteString(">" + content + "</greynir>")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
