// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package azure

import "github.com/mideind/Icespeak/transcribe"

// Pronunciation overrides specific to the Azure voices: the neural
// Icelandic voices mangle some character and entity names unless they
// are respelled like this.
var charOverrides = map[string]string{
	"b": "bjé",
	"c": "sjé",
	"d": "djé",
	"ð": "eeð",
	"e": "eeh",
	"é": "jé",
	"g": "gjéé",
	"i": "ii",
	"j": "íoð",
	"o": "úa",
	"ó": "oú",
	"u": "uu",
	"r": "errr",
	"t": "tjéé",
	"ú": "úúu",
	"ý": "ufsilon íí",
	"þ": "þodn",
	"æ": "æí",
	"ö": "öö",
}

// Weird entity pronunciations can be added here when they're
// encountered.
var entityOverrides = map[string]string{
	"BYKO": "Býkó",
	"ELKO": "Elkó",
	"FIDE": "fídeh",
	"FIFA": "fííffah",
	"GIRL": "görl",
	"LEGO": "llegó",
	"MIT":  "emm æí tíí",
	"NEW":  "njúú",
	"NOVA": "Nóva",
	"PLUS": "plöss",
	"SHAH": "Sjah",
	"TIME": "tæm",
	"UEFA": "júei fa",
	"UENO": "júeenó",
	"UKIP": "júkipp",
	"VISA": "vísa",
	"XBOX": "ex box",
}

var personOverrides = map[string]string{
	"Joe":   "Djó",
	"Biden": "Bæden",
}

func newTranscriber() *transcribe.Transcriber {
	tr := transcribe.New()
	for k, v := range charOverrides {
		tr.Chars[k] = v
	}
	for k, v := range entityOverrides {
		tr.Entities[k] = v
	}
	for k, v := range personOverrides {
		tr.Persons[k] = v
	}
	return tr
}
