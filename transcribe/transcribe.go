// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.
//
// Phonetic transcription functionality, turning raw text into text
// specifically intended for Icelandic speech synthesis engines.

package transcribe

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var markupTagPattern = regexp.MustCompile(`<[^<>]*>`)

// StripMarkup removes HTML/SSML tags from a string.
func StripMarkup(text string) string {
	return markupTagPattern.ReplaceAllString(text, "")
}

// Options control which rewrite rules TokenTranscribe applies.
type Options struct {
	Emails       bool
	Dates        bool
	Years        bool
	Domains      bool
	URLs         bool
	Amounts      bool
	Measurements bool
	Percentages  bool
	// Experimental, off by default: bare cardinals and ordinals are
	// often better left untouched when their grammatical context is
	// unknown.
	Numbers  bool
	Ordinals bool
}

// DefaultOptions returns the default transcription options.
func DefaultOptions() Options {
	return Options{
		Emails:       true,
		Dates:        true,
		Years:        true,
		Domains:      true,
		URLs:         true,
		Amounts:      true,
		Measurements: true,
		Percentages:  true,
	}
}

// Normalized is the result of a transcription pass: the rewritten text
// along with the names of the rules that fired, in order of application.
type Normalized struct {
	Text  string
	Rules []string
}

// charPronunciation spells out how characters are pronounced in
// Icelandic.
var charPronunciation = map[string]string{
	"a": "a",
	"á": "á",
	"b": "bé",
	"c": "sé",
	"d": "dé",
	"ð": "eð",
	"e": "e",
	"é": "é",
	"f": "eff",
	"g": "gé",
	"h": "há",
	"i": "i",
	"í": "í",
	"j": "joð",
	"k": "ká",
	"l": "ell",
	"m": "emm",
	"n": "enn",
	"o": "o",
	"ó": "ó",
	"p": "pé",
	"q": "kú",
	"r": "err",
	"s": "ess",
	"t": "té",
	"u": "u",
	"ú": "ú",
	"v": "vaff",
	"w": "tvöfalt vaff",
	"x": "ex",
	"y": "ufsilon",
	"ý": "ufsilon í",
	"þ": "þoddn",
	"æ": "æ",
	"ö": "ö",
	"z": "seta",
}

var punctuationNames = map[string]string{
	" ":  "bil",
	"~":  "tilda",
	"`":  "broddur",
	"!":  "upphrópunarmerki",
	"@":  "att merki",
	"#":  "myllumerki",
	"$":  "dollaramerki",
	"%":  "prósentumerki",
	"^":  "tvíbroddur",
	"&":  "og merki",
	"*":  "stjarna",
	"(":  "vinstri svigi",
	")":  "hægri svigi",
	"-":  "bandstrik", // in some cases this should be "mínus"
	"_":  "niðurstrik",
	"=":  "jafnt og merki",
	"+":  "plús",
	"[":  "vinstri hornklofi",
	"{":  "vinstri slaufusvigi",
	"]":  "hægri hornklofi",
	"}":  "hægri slaufusvigi",
	"\\": "bakstrik",
	"|":  "pípumerki",
	";":  "semíkomma",
	":":  "tvípunktur",
	"'":  "úrfellingarkomma",
	"\"": "tvöföld gæsalöpp",
	",":  "komma",
	"<":  "vinstri oddklofi",
	".":  "punktur",
	">":  "hægri oddklofi",
	"/":  "skástrik",
	"?":  "spurningarmerki",
	"°":  "gráðumerki",
	"±":  "plús-mínus merki",
	"—":  "þankastrik",
	"…":  "úrfellingarpunktar",
	"™":  "vörumerki",
	"®":  "skrásett vörumerki",
	"©":  "höfundarréttarmerki",
}

var currencyNames = map[string]map[GramNumber]string{
	"ISK": {NumberEt: "króna", NumberFt: "krónur"},
	"DKK": {NumberEt: "dönsk króna", NumberFt: "danskar krónur"},
	"NOK": {NumberEt: "norsk króna", NumberFt: "norskar krónur"},
	"SEK": {NumberEt: "sænsk króna", NumberFt: "sænskar krónur"},
	"GBP": {NumberEt: "sterlingspund", NumberFt: "sterlingspund"},
	"USD": {NumberEt: "bandaríkjadalur", NumberFt: "bandaríkjadalir"},
	"EUR": {NumberEt: "evra", NumberFt: "evrur"},
	"CAD": {NumberEt: "kanadískur dalur", NumberFt: "kanadískir dalir"},
	"AUD": {NumberEt: "ástralskur dalur", NumberFt: "ástralskir dalir"},
	"CHF": {NumberEt: "svissneskur franki", NumberFt: "svissneskir frankar"},
	"JPY": {NumberEt: "japanskt jen", NumberFt: "japönsk jen"},
	"PLN": {NumberEt: "pólskt slot", NumberFt: "pólsk slot"},
	"RUB": {NumberEt: "rússnesk rúbla", NumberFt: "rússneskar rúblur"},
	"CZK": {NumberEt: "tékknesk króna", NumberFt: "tékkneskar krónur"},
	"INR": {NumberEt: "indversk rúpía", NumberFt: "indverskar rúpíur"},
	"IDR": {NumberEt: "indónesísk rúpía", NumberFt: "indónesískar rúpíur"},
	"CNY": {NumberEt: "kínverskt júan", NumberFt: "kínversk júan"},
	"RMB": {NumberEt: "kínverskt júan", NumberFt: "kínversk júan"},
	"HKD": {NumberEt: "Hong Kong dalur", NumberFt: "Hong Kong dalir"},
	"NZD": {NumberEt: "nýsjálenskur dalur", NumberFt: "nýsjálenskir dalir"},
	"SGD": {NumberEt: "singapúrskur dalur", NumberFt: "singapúrskir dalir"},
	"MXN": {NumberEt: "mexíkóskt pesó", NumberFt: "mexíkósk pesó"},
	"ZAR": {NumberEt: "suður-afrískt rand", NumberFt: "suður-afrísk rand"},
}

var currencySymbols = map[string]string{
	"$":   "USD",
	"€":   "EUR",
	"£":   "GBP",
	"¥":   "JPY",
	"kr":  "ISK",
	"kr.": "ISK",
}

func currencyGender(code string) Gender {
	switch code {
	case "USD", "CHF", "CAD":
		return GenderKk
	case "GBP", "JPY", "PLN", "CNY", "RMB", "ZAR":
		return GenderHk
	default:
		return GenderKvk
	}
}

var siUnitNames = map[string]map[GramNumber]string{
	// Distance
	"m":  {NumberEt: "metri", NumberFt: "metrar"},
	"mm": {NumberEt: "millimetri", NumberFt: "millimetrar"},
	"μm": {NumberEt: "míkrómetri", NumberFt: "míkrómetrar"},
	"cm": {NumberEt: "sentimetri", NumberFt: "sentimetrar"},
	"sm": {NumberEt: "sentimetri", NumberFt: "sentimetrar"},
	"km": {NumberEt: "kílómetri", NumberFt: "kílómetrar"},
	"ft": {NumberEt: "fet", NumberFt: "fet"},
	"mi": {NumberEt: "míla", NumberFt: "mílur"},
	// Area
	"m²":  {NumberEt: "fermetri", NumberFt: "fermetrar"},
	"fm":  {NumberEt: "fermetri", NumberFt: "fermetrar"},
	"km²": {NumberEt: "ferkílómetri", NumberFt: "ferkílómetrar"},
	"cm²": {NumberEt: "fersentimetri", NumberFt: "fersentimetrar"},
	"ha":  {NumberEt: "hektari", NumberFt: "hektarar"},
	// Volume
	"m³":  {NumberEt: "rúmmetri", NumberFt: "rúmmetrar"},
	"cm³": {NumberEt: "rúmsentimetri", NumberFt: "rúmsentimetrar"},
	"km³": {NumberEt: "rúmkílómetri", NumberFt: "rúmkílómetrar"},
	"l":   {NumberEt: "lítri", NumberFt: "lítrar"},
	"ltr": {NumberEt: "lítri", NumberFt: "lítrar"},
	"dl":  {NumberEt: "desilítri", NumberFt: "desilítrar"},
	"cl":  {NumberEt: "sentilítri", NumberFt: "sentilítrar"},
	"ml":  {NumberEt: "millilítri", NumberFt: "millilítrar"},
	"gal": {NumberEt: "gallon", NumberFt: "gallon"},
	"bbl": {NumberEt: "tunna", NumberFt: "tunnur"},
	// Temperature
	"K":  {NumberEt: "kelvíngráða", NumberFt: "kelvíngráður"},
	"°K": {NumberEt: "kelvíngráða", NumberFt: "kelvíngráður"},
	"°C": {NumberEt: "gráða á selsíus", NumberFt: "gráður á selsíus"},
	"°F": {NumberEt: "Fahrenheit-gráða", NumberFt: "Fahrenheit-gráður"},
	// Mass
	"g":  {NumberEt: "gramm", NumberFt: "grömm"},
	"gr": {NumberEt: "gramm", NumberFt: "grömm"},
	"kg": {NumberEt: "kílógramm", NumberFt: "kílógrömm"},
	"t":  {NumberEt: "tonn", NumberFt: "tonn"},
	"mg": {NumberEt: "milligramm", NumberFt: "milligrömm"},
	"μg": {NumberEt: "míkrógramm", NumberFt: "míkrógrömm"},
	"tn": {NumberEt: "tonn", NumberFt: "tonn"},
	"lb": {NumberEt: "pund", NumberFt: "pund"},
	// Duration
	"s":    {NumberEt: "sekúnda", NumberFt: "sekúndur"},
	"ms":   {NumberEt: "millisekúnda", NumberFt: "millisekúndur"},
	"μs":   {NumberEt: "míkrósekúnda", NumberFt: "míkrósekúndur"},
	"klst": {NumberEt: "klukkustund", NumberFt: "klukkustundir"},
	"mín":  {NumberEt: "mínúta", NumberFt: "mínútur"},
	// Force
	"N":  {NumberEt: "njúton", NumberFt: "njúton"},
	"kN": {NumberEt: "kílónjúton", NumberFt: "kílónjúton"},
	// Energy
	"J":    {NumberEt: "júl", NumberFt: "júl"},
	"kJ":   {NumberEt: "kílójúl", NumberFt: "kílójúl"},
	"MJ":   {NumberEt: "megajúl", NumberFt: "megajúl"},
	"GJ":   {NumberEt: "gígajúl", NumberFt: "gígajúl"},
	"TJ":   {NumberEt: "terajúl", NumberFt: "terajúl"},
	"kWh":  {NumberEt: "kílóvattstund", NumberFt: "kílóvattstundir"},
	"MWh":  {NumberEt: "megavattstund", NumberFt: "megavattstundir"},
	"kWst": {NumberEt: "kílóvattstund", NumberFt: "kílóvattstundir"},
	"MWst": {NumberEt: "megavattstund", NumberFt: "megavattstundir"},
	"kcal": {NumberEt: "kílókaloría", NumberFt: "kílókaloríur"},
	"cal":  {NumberEt: "kaloría", NumberFt: "kaloríur"},
	// Power
	"W":  {NumberEt: "vatt", NumberFt: "vött"},
	"mW": {NumberEt: "millivatt", NumberFt: "millivött"},
	"kW": {NumberEt: "kílóvatt", NumberFt: "kílóvött"},
	"MW": {NumberEt: "megavatt", NumberFt: "megavött"},
	"GW": {NumberEt: "gígavatt", NumberFt: "gígavött"},
	"TW": {NumberEt: "teravatt", NumberFt: "teravött"},
	// Electric potential
	"V":  {NumberEt: "volt", NumberFt: "volt"},
	"mV": {NumberEt: "millivolt", NumberFt: "millivolt"},
	"kV": {NumberEt: "kílóvolt", NumberFt: "kílóvolt"},
	// Electric current
	"A":  {NumberEt: "amper", NumberFt: "amper"},
	"mA": {NumberEt: "milliamper", NumberFt: "milliamper"},
	// Frequency
	"Hz":  {NumberEt: "herts", NumberFt: "herts"},
	"kHz": {NumberEt: "kílóherts", NumberFt: "kílóherts"},
	"MHz": {NumberEt: "megaherts", NumberFt: "megaherts"},
	"GHz": {NumberEt: "gígaherts", NumberFt: "gígaherts"},
	// Pressure
	"Pa":  {NumberEt: "paskal", NumberFt: "pasköl"},
	"kPa": {NumberEt: "kílópaskal", NumberFt: "kílópasköl"},
	"hPa": {NumberEt: "hektópaskal", NumberFt: "hektópasköl"},
	// Angle
	"°": {NumberEt: "gráða", NumberFt: "gráður"},
	// Promille ("%" is handled by the percentage rule)
	"‰": {NumberEt: "prómill", NumberFt: "prómill"},
	// Velocity
	"m/s":     {NumberEt: "metri á sekúndu", NumberFt: "metrar á sekúndu"},
	"km/klst": {NumberEt: "kílómetri á klukkustund", NumberFt: "kílómetrar á klukkustund"},
}

var kkUnits = map[string]bool{
	"m": true, "mm": true, "μm": true, "cm": true, "sm": true, "km": true,
	"m²": true, "fm": true, "km²": true, "cm²": true, "ha": true,
	"m³": true, "cm³": true, "km³": true,
	"l": true, "ltr": true, "dl": true, "cl": true, "ml": true,
	"m/s": true, "km/klst": true,
}

var kvkUnits = map[string]bool{
	"mi": true, "bbl": true,
	"K": true, "°K": true, "°C": true, "°F": true,
	"s": true, "ms": true, "μs": true, "klst": true, "mín": true,
	"kWh": true, "MWh": true, "kWst": true, "MWst": true,
	"kcal": true, "cal": true,
	"°": true, "%": true,
}

func unitGender(unit string) Gender {
	if kkUnits[unit] {
		return GenderKk
	}
	if kvkUnits[unit] {
		return GenderKvk
	}
	return GenderHk
}

var monthNames = []string{
	"janúar",
	"febrúar",
	"mars",
	"apríl",
	"maí",
	"júní",
	"júlí",
	"ágúst",
	"september",
	"október",
	"nóvember",
	"desember",
}

var monthAbbrevs = []string{
	"jan", "feb", "mar", "apr", "maí", "jún",
	"júl", "ágú", "sep", "okt", "nóv", "des",
}

// Common Icelandic abbreviations and their expansions. Foreign
// abbreviations are deliberately absent; those are spelled out instead.
var icelandicAbbrevs = map[string]string{
	"t.d.":     "til dæmis",
	"þ.e.":     "það er",
	"þ.e.a.s.": "það er að segja",
	"o.s.frv.": "og svo framvegis",
	"o.fl.":    "og fleira",
	"o.þ.h.":   "og þess háttar",
	"m.a.":     "meðal annars",
	"u.þ.b.":   "um það bil",
	"a.m.k.":   "að minnsta kosti",
	"þ.m.t.":   "þar með talið",
	"f.Kr.":    "fyrir Krist",
	"e.Kr.":    "eftir Krist",
	"kl.":      "klukkan",
	"nr.":      "númer",
	"hr.":      "herra",
	"sbr.":     "samanber",
	"skv.":     "samkvæmt",
	"s.s.":     "svo sem",
	"ca.":      "sirka",
	"þús.":     "þúsund",
	"millj.":   "milljónir",
	"sl.":      "síðastliðinn",
	"nk.":      "næstkomandi",
	"bls.":     "blaðsíða",
	"gr.":      "grein",
	"vsk.":     "virðisaukaskattur",
}

// &, < and > cause speech synthesis errors, replace them with text.
// Ordered so that two-character symbols are replaced first.
var dangerSymbols = []struct{ symbol, text string }{
	{"&", " og "},
	{"<=", " minna eða jafnt og "},
	{"<", " minna en "},
	{">=", " stærra eða jafnt og "},
	{">", " stærra en "},
}

// Transcriber holds the pronunciation tables used when transcribing
// text for a speech synthesis engine. The tables are exported so that
// provider adapters can override entries for their voices.
type Transcriber struct {
	// Chars maps lowercase characters to their spoken names.
	Chars map[string]string
	// Entities maps entity name parts to hardcoded pronunciations.
	Entities map[string]string
	// Persons maps person name parts to hardcoded pronunciations.
	Persons map[string]string
	// Domains maps domain name parts to their pronunciations.
	Domains map[string]string
}

// These parts of an entity name aren't necessarily all-uppercase or
// containing a period, but should still be spelled out.
var entitySpell = map[string]bool{
	"GmbH": true, "USS": true, "Ltd": true,
	"bs": true, "ehf": true, "h/f": true, "hf": true, "hses": true,
	"hsf": true, "ohf": true, "s/f": true, "ses": true, "sf": true,
	"slf": true, "slhf": true, "svf": true, "vlf": true, "vmf": true,
}

var defaultEntityPronunciations = map[string]string{
	"ABBA": "ABBA", "BOYS": "BOYS", "BUGL": "BUGL", "BYKO": "BYKO",
	"CAVA": "CAVA", "CERN": "CERN", "CERT": "CERT", "EFTA": "EFTA",
	"ELKO": "ELKO", "NATO": "NATO", "NEW": "NEW", "NOVA": "NOVA",
	"PLAY": "PLAY", "PLUS": "PLUS", "RARIK": "RARIK", "RIFF": "RIFF",
	"RÚV": "RÚV", "SAAB": "SAAB", "SAAS": "SAAS", "SHAH": "SHAH",
	"SIRI": "SIRI", "UENO": "UENO", "YVES": "YVES",
}

var defaultPersonPronunciations = map[string]string{
	"Jr":  "djúníor",
	"Jr.": "djúníor",
}

var defaultDomainPronunciations = map[string]string{
	"is":      "is",
	"org":     "org",
	"net":     "net",
	"com":     "komm",
	"gmail":   "gjé meil",
	"hotmail": "hott meil",
	"yahoo":   "ja húú",
	"outlook": "átlúkk",
}

// New returns a Transcriber with the default Icelandic pronunciation
// tables.
func New() *Transcriber {
	t := &Transcriber{
		Chars:    make(map[string]string, len(charPronunciation)),
		Entities: make(map[string]string, len(defaultEntityPronunciations)),
		Persons:  make(map[string]string, len(defaultPersonPronunciations)),
		Domains:  make(map[string]string, len(defaultDomainPronunciations)),
	}
	for k, v := range charPronunciation {
		t.Chars[k] = v
	}
	for k, v := range defaultEntityPronunciations {
		t.Entities[k] = v
	}
	for k, v := range defaultPersonPronunciations {
		t.Persons[k] = v
	}
	for k, v := range defaultDomainPronunciations {
		t.Domains[k] = v
	}
	return t
}

// DangerSymbols replaces the symbols that cause issues for speech
// synthesis engines (&, <, >) with spoken text.
//
// HTML charrefs (e.g. &amp;) should be translated to their unicode
// character before this function is called; the Parser does this
// automatically.
func (t *Transcriber) DangerSymbols(txt string) string {
	for _, d := range dangerSymbols {
		txt = strings.ReplaceAll(txt, d.symbol, d.text)
	}
	return txt
}

// Number voicifies a single integer.
func (t *Transcriber) Number(txt string, o WordOptions) string {
	n, err := strconv.ParseInt(txt, 10, 64)
	if err != nil {
		return txt
	}
	return NumberToText(n, o)
}

// Numbers voicifies text containing multiple integers.
func (t *Transcriber) Numbers(txt string, o WordOptions) string {
	return NumbersToText(txt, o)
}

// Float voicifies a single float, Icelandic or programmatic notation.
func (t *Transcriber) Float(txt string, o WordOptions) string {
	return FloatStringToText(txt, o)
}

// Floats voicifies text containing multiple floats.
func (t *Transcriber) Floats(txt string, o WordOptions) string {
	return FloatsToText(txt, o)
}

// Ordinal voicifies an ordinal given as digits.
func (t *Transcriber) Ordinal(txt string, o WordOptions) string {
	n, err := strconv.ParseInt(strings.TrimSuffix(txt, "."), 10, 64)
	if err != nil {
		return txt
	}
	return NumberToOrdinal(n, o)
}

// Ordinals voicifies text containing multiple ordinals.
func (t *Transcriber) Ordinals(txt string, o WordOptions) string {
	return NumbersToOrdinal(txt, o)
}

// Digits spells out each digit individually.
func (t *Transcriber) Digits(txt string) string {
	return DigitsToText(txt)
}

// Phone spells out a phone number.
func (t *Transcriber) Phone(txt string) string {
	return strings.ReplaceAll(t.Digits(txt), "+", "plús ")
}

// Matches e.g. "klukkan 14:30", "kl. 2:23:31", "02:15".
var timePattern = regexp.MustCompile(
	`(?i)((?P<klukkan>kl\.|klukkan) )?(?P<hour>\d{1,2}):(?P<minute>\d\d)(:(?P<second>\d\d))?`)

// Time voicifies time of day.
func (t *Transcriber) Time(txt string) string {
	return timePattern.ReplaceAllStringFunc(txt, func(match string) string {
		sub := timePattern.FindStringSubmatch(match)
		prefix := sub[timePattern.SubexpIndex("klukkan")]
		h, _ := strconv.ParseInt(sub[timePattern.SubexpIndex("hour")], 10, 64)
		m, _ := strconv.ParseInt(sub[timePattern.SubexpIndex("minute")], 10, 64)
		secStr := sub[timePattern.SubexpIndex("second")]

		var parts []string
		if prefix != "" {
			parts = append(parts, "klukkan")
		}

		suffix := ""
		switch {
		case h == 0 && m == 0:
			// Refer to 00:00 as "tólf á miðnætti"
			h = 12
			suffix = "á miðnætti"
		case h <= 5:
			// Refer to 00:xx-05:xx as "... um nótt"
			suffix = "um nótt"
		case h == 12 && m == 0:
			suffix = "á hádegi"
		}
		parts = append(parts, NumberToText(h, WordOptions{}))

		if m > 0 {
			if m < 10 {
				// e.g. "þrettán núll fjögur"
				parts = append(parts, "núll")
			}
			parts = append(parts, NumberToText(m, WordOptions{}))
		}

		if secStr != "" {
			if s, _ := strconv.ParseInt(secStr, 10, 64); s > 0 {
				if s < 10 {
					parts = append(parts, "núll")
				}
				parts = append(parts, NumberToText(s, WordOptions{}))
			}
		}

		if suffix != "" {
			parts = append(parts, suffix)
		}
		return strings.Join(parts, " ")
	})
}

// Matches "1986-03-07", "1/4/2001", "25. janúar 1999" and "25 des.".
var datePattern = regexp.MustCompile(`(?i)` +
	`(?P<year1>\d{1,4})-(?P<month1>\d{1,2})-(?P<day1>\d{1,2})` +
	`|(?P<day2>\d{1,2})/(?P<month2>\d{1,2})/(?P<year2>\d{1,4})` +
	`|(?P<day3>\d{1,2})\.? ?` +
	`(?P<month3>jan(úar|\.)?|feb(rúar|\.)?|mar(s|\.)?|` +
	`apr(íl|\.)?|maí\.?|jún(í|\.)?|` +
	`júl(í|\.)?|ágú(st|\.)?|sept?(ember|\.)?|` +
	`okt(óber|\.)?|nóv(ember|\.)?|des(ember|\.)?)` +
	`( (?P<year3>\d{1,4}))?`)

func dateSubmatch(sub []string, name string) string {
	for i := 1; i <= 3; i++ {
		v := sub[datePattern.SubexpIndex(name+strconv.Itoa(i))]
		if v != "" {
			return v
		}
	}
	return ""
}

func monthNumber(mon string) int {
	if n, err := strconv.Atoi(mon); err == nil {
		return n
	}
	prefix := strings.ToLower(string([]rune(mon)[:3]))
	for i, abbr := range monthAbbrevs {
		if abbr == prefix {
			return i + 1
		}
	}
	return 0
}

func dateToText(year, month, day int64, c Case) string {
	out := ""
	if day > 0 {
		out = NumberToOrdinal(day, WordOptions{Case: c, Gender: GenderKk}) + " "
	}
	// Month names don't change in different declensions
	out += monthNames[month-1]
	if year > 0 {
		out += " " + YearToText(year)
	}
	return out
}

// Date voicifies the first date found in a string, in the given case.
func (t *Transcriber) Date(txt string, c Case) string {
	span := datePattern.FindStringSubmatchIndex(txt)
	if span == nil {
		return txt
	}
	sub := make([]string, 0, datePattern.NumSubexp()+1)
	for i := 0; i <= datePattern.NumSubexp(); i++ {
		if span[2*i] < 0 {
			sub = append(sub, "")
		} else {
			sub = append(sub, txt[span[2*i]:span[2*i+1]])
		}
	}

	day := dateSubmatch(sub, "day")
	mon := dateSubmatch(sub, "month")
	year := dateSubmatch(sub, "year")

	// The year is optional
	if day == "" || mon == "" {
		return txt
	}
	m := monthNumber(mon)
	if m < 1 || m > 12 {
		return txt
	}
	d, _ := strconv.ParseInt(day, 10, 64)
	var y int64
	if year != "" {
		y, _ = strconv.ParseInt(year, 10, 64)
	}
	// Only replace the date part, leave the rest of the string intact
	return txt[:span[0]] + dateToText(y, int64(m), d, c) + txt[span[1]:]
}

// Year voicifies a single year.
func (t *Transcriber) Year(txt string) string {
	n, err := strconv.ParseInt(txt, 10, 64)
	if err != nil {
		return txt
	}
	return YearToText(n)
}

// Years voicifies text containing multiple years.
func (t *Transcriber) Years(txt string) string {
	return YearsToText(txt, false)
}

// VBreak creates a timed break in the speech synthesis.
func (t *Transcriber) VBreak(time string) string {
	if time == "" {
		return "<break />"
	}
	return `<break time="` + time + `" />`
}

// VBreakStrengths are the valid strength values for BreakStrength.
var VBreakStrengths = map[string]bool{
	"none": true, "x-weak": true, "weak": true,
	"medium": true, "strong": true, "x-strong": true,
}

// BreakStrength creates a break of the given strength. Invalid
// strengths fall back to a plain break.
func (t *Transcriber) BreakStrength(strength string) string {
	if !VBreakStrengths[strength] {
		return "<break />"
	}
	return `<break strength="` + strength + `" />`
}

// Paragraph wraps text in a paragraph delimiter for speech synthesis.
func (t *Transcriber) Paragraph(txt string) string {
	return "<p>" + txt + "</p>"
}

// Sentence wraps text in a sentence delimiter for speech synthesis.
func (t *Transcriber) Sentence(txt string) string {
	return "<s>" + txt + "</s>"
}

// Spell spells out a sequence of characters, with a pause between each.
// If literal is set, spaces and punctuation symbols are pronounced too.
func (t *Transcriber) Spell(txt, pauseLength string, literal bool) string {
	var parts []string
	for _, r := range txt {
		c := string(r)
		name, known := t.Chars[strings.ToLower(c)]
		switch {
		case known:
			parts = append(parts, name)
		case literal:
			if p, ok := punctuationNames[c]; ok {
				parts = append(parts, p)
			} else {
				parts = append(parts, c)
			}
		case unicode.IsSpace(r):
			parts = append(parts, "")
		default:
			parts = append(parts, c)
		}
	}
	if pauseLength == "" {
		pauseLength = "20ms"
	}
	end := "20ms"
	if len(parts) <= 1 {
		end = "10ms"
	}
	return t.VBreak("10ms") + strings.Join(parts, t.VBreak(pauseLength)) + t.VBreak(end)
}

// Abbrev expands an abbreviation, falling back to spelling it out when
// it contains uppercase letters, and keeping it as-is otherwise.
func (t *Transcriber) Abbrev(txt string) string {
	if expanded, ok := icelandicAbbrevs[txt]; ok {
		return t.VBreak("10ms") + expanded + t.VBreak("50ms")
	}
	if txt != strings.ToLower(txt) {
		// E.g. "MSc" becomes "emm ess sé"
		return t.Spell(strings.ReplaceAll(txt, ".", ""), "", false)
	}
	// Give up and keep as-is for all-lowercase text (e.g. "cand.med.")
	return txt
}

// Currency voicifies a currency code. Unknown codes are spelled out.
func (t *Transcriber) Currency(code string, num GramNumber) string {
	names, ok := currencyNames[code]
	if !ok {
		return t.Spell(code, "", false)
	}
	return names[num]
}

// Unit voicifies a unit of measurement. Unknown units pass through.
func (t *Transcriber) Unit(unit string, num GramNumber) string {
	names, ok := siUnitNames[unit]
	if !ok {
		return unit
	}
	return names[num]
}

// splitSubstringTypes splits text into alphabetic, decimal or other
// character type substrings.
// Example: "hello world,123" -> ["hello", " ", "world", ",", "123"].
func splitSubstringTypes(txt string) []string {
	classOf := func(r rune) int {
		switch {
		case unicode.IsLetter(r):
			return 1
		case unicode.IsDigit(r):
			return 2
		default:
			return 0
		}
	}
	var groups []string
	var cur strings.Builder
	prev := -1
	for _, r := range txt {
		c := classOf(r)
		if c != prev && cur.Len() > 0 {
			groups = append(groups, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		prev = c
	}
	if cur.Len() > 0 {
		groups = append(groups, cur.String())
	}
	return groups
}

func isDecimalString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAlphaString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Molecule voicifies the name of a molecule, e.g. "H2SO4".
func (t *Transcriber) Molecule(txt string) string {
	var parts []string
	for _, x := range splitSubstringTypes(txt) {
		if isDecimalString(x) {
			parts = append(parts, t.Number(x, WordOptions{Gender: GenderKk}))
		} else {
			parts = append(parts, t.Spell(x, "", true))
		}
	}
	return strings.Join(parts, " ")
}

// NumAlpha voicifies an alphanumeric string, spelling each character.
func (t *Transcriber) NumAlpha(txt string) string {
	var parts []string
	for _, x := range splitSubstringTypes(txt) {
		if isDecimalString(x) {
			parts = append(parts, t.Digits(x))
		} else {
			parts = append(parts, t.Spell(x, "", false))
		}
	}
	return strings.Join(parts, " ")
}

// Username voicifies a username such as "@jon_f123".
func (t *Transcriber) Username(txt string) string {
	var parts []string
	if strings.HasPrefix(txt, "@") {
		txt = txt[1:]
		parts = append(parts, "att")
	}
	for _, x := range splitSubstringTypes(txt) {
		switch {
		case isDecimalString(x):
			if len(x) > 2 {
				// Spell out numbers of more than 2 digits
				parts = append(parts, t.Digits(x))
			} else {
				parts = append(parts, t.Number(x, WordOptions{}))
			}
		case isAlphaString(x) && utf8.RuneCountInString(x) > 2:
			// Alphabetic string, longer than 2 chars, pronounce as is
			parts = append(parts, x)
		default:
			// Not recognized as a number or an Icelandic word, spell
			// it literally (might include punctuation symbols)
			parts = append(parts, t.Spell(x, "", true))
		}
	}
	return strings.Join(parts, " ")
}

// Domain voicifies a domain name.
func (t *Transcriber) Domain(txt string) string {
	var parts []string
	for _, x := range splitSubstringTypes(txt) {
		switch {
		case t.Domains[x] != "":
			parts = append(parts, t.Domains[x])
		case isDecimalString(x):
			if len(x) > 2 {
				parts = append(parts, t.Digits(x))
			} else {
				parts = append(parts, t.Number(x, WordOptions{}))
			}
		case isAlphaString(x) && utf8.RuneCountInString(x) > 2:
			parts = append(parts, x)
		case x == ".":
			// Periods are common in domains, skip the spell method
			parts = append(parts, "punktur")
		default:
			parts = append(parts, t.Spell(x, "", true))
		}
	}
	return strings.Join(parts, " ")
}

// Email voicifies an email address.
func (t *Transcriber) Email(txt string) string {
	user, domain, found := strings.Cut(txt, "@")
	if !found {
		return t.Username(user)
	}
	return t.Username(user) + " att " + t.Domain(domain)
}

// Entity voicifies an entity name, e.g. "Miðeind ehf.".
func (t *Transcriber) Entity(txt string) string {
	parts := strings.Fields(txt)
	for i, p := range parts {
		if pron, ok := t.Entities[p]; ok {
			parts[i] = pron
			continue
		}
		if isDecimalString(p) {
			parts[i] = t.Number(p, WordOptions{})
			continue
		}
		noDots := strings.ReplaceAll(p, ".", "")
		if entitySpell[noDots] || (noDots == strings.ToUpper(noDots) && isAlphaString(noDots)) {
			// Company suffix or an all-uppercase word with no known
			// pronunciation, spell it out
			parts[i] = t.Spell(noDots, "", false)
		}
	}
	return strings.Join(parts, " ")
}

// Person voicifies the name of a person.
func (t *Transcriber) Person(txt string) string {
	parts := strings.Fields(txt)
	for i, p := range parts {
		if pron, ok := t.Persons[p]; ok {
			parts[i] = pron
			continue
		}
		if strings.Contains(p, ".") {
			// Contains a period (e.g. 'Jak.' or 'Ólafsd.'), spell it
			parts[i] = t.Spell(strings.ReplaceAll(p, ".", ""), "", false)
		}
		if i+2 >= len(parts) && isRomanNumeral(parts[i]) {
			// Last or second to last part of the name looks like an
			// uppercase roman numeral, replace with an ordinal
			parts[i] = RomanNumeralToOrdinal(parts[i], WordOptions{Gender: GenderKk})
		}
	}
	return strings.Join(parts, " ")
}

func isRomanNumeral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if _, ok := RomanNumerals[r]; !ok {
			return false
		}
	}
	return true
}

// ===== Rule table scanner =====

// A scanRule rewrites matches of its pattern into speakable text.
// Rules are applied in table order; a span claimed by an earlier rule
// is never touched by a later one, so specific rules (emails, dates)
// shadow the generic ones (bare numerals).
type scanRule struct {
	name    string
	re      *regexp.Regexp
	enabled func(o Options) bool
	apply   func(t *Transcriber, text string, start, end int) (string, bool)
}

func prevRune(s string, i int) rune {
	if i <= 0 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

func nextRune(s string, i int) rune {
	if i >= len(s) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isPluralNumber determines whether an Icelandic word following a given
// number should be plural, e.g. "21 maður", "22 menn", "11 menn".
func isPluralNumber(num string) bool {
	return !(strings.HasSuffix(num, "1") && !strings.HasSuffix(num, "11"))
}

// splitSign strips a leading minus that directly follows a digit (a
// range separator, not a sign, e.g. "10-20") and returns the range
// word to prepend. A true minus stays inside num and is voiced there.
func splitSign(text string, start int, match string) (prefix, num string) {
	if strings.HasPrefix(match, "-") && start > 0 && isASCIIDigit(text[start-1]) {
		return " bandstrik ", match[1:]
	}
	return "", match
}

func group(re *regexp.Regexp, match, name string) string {
	sub := re.FindStringSubmatch(match)
	if sub == nil {
		return ""
	}
	return sub[re.SubexpIndex(name)]
}

var (
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)
	urlPattern       = regexp.MustCompile(`https?://[^\s<>]+`)
	bareDomain       = regexp.MustCompile(`\b[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.(is|com|net|org|io|fo|dk|no|se|uk|de|edu|int)\b`)
	amountSuffix     = regexp.MustCompile(`(?P<num>-?\b\d+(\.\d{3})*(,\d+)?) ?(?P<curr>ISK|USD|EUR|GBP|DKK|NOK|SEK|CHF|JPY|CAD|AUD|PLN|CZK|RUB|INR|CNY|kr\.?|€|\$|£|¥)`)
	amountPrefix     = regexp.MustCompile(`(?P<curr>[€$£¥]) ?(?P<num>\d+(\.\d{3})*(,\d+)?)`)
	percentSuffix    = regexp.MustCompile(`(?P<num>-?\b\d+(\.\d{3})*(,\d+)?) ?(?P<sym>%|‰|prósent\w*|prómill\w*)`)
	ssnPattern       = regexp.MustCompile(`\b\d{6}-\d{4}\b`)
	phonePattern     = regexp.MustCompile(`(\+\d{1,3} ?)?\b\d{3}[- ]\d{4}\b`)
	hyphenTokenRe    = regexp.MustCompile(` - `)
	measurementRe    *regexp.Regexp
	abbrevPattern    *regexp.Regexp
	measurementUnits []string
)

func init() {
	// Longest symbols first: RE2 alternations match the first
	// alternative that fits, not the longest one
	for unit := range siUnitNames {
		if unit != "‰" {
			measurementUnits = append(measurementUnits, unit)
		}
	}
	sort.Slice(measurementUnits, func(i, j int) bool {
		if len(measurementUnits[i]) != len(measurementUnits[j]) {
			return len(measurementUnits[i]) > len(measurementUnits[j])
		}
		return measurementUnits[i] < measurementUnits[j]
	})
	quoted := make([]string, len(measurementUnits))
	for i, u := range measurementUnits {
		quoted[i] = regexp.QuoteMeta(u)
	}
	measurementRe = regexp.MustCompile(
		`(?P<num>-?\b\d+(\.\d{3})*(,\d+)?) ?(?P<unit>` + strings.Join(quoted, "|") + `)`)

	abbrevs := make([]string, 0, len(icelandicAbbrevs))
	for a := range icelandicAbbrevs {
		abbrevs = append(abbrevs, a)
	}
	sort.Slice(abbrevs, func(i, j int) bool {
		if len(abbrevs[i]) != len(abbrevs[j]) {
			return len(abbrevs[i]) > len(abbrevs[j])
		}
		return abbrevs[i] < abbrevs[j]
	})
	for i, a := range abbrevs {
		abbrevs[i] = regexp.QuoteMeta(a)
	}
	abbrevPattern = regexp.MustCompile(strings.Join(abbrevs, "|"))
}

var scanRules = []scanRule{
	{
		name:    "email",
		re:      emailPattern,
		enabled: func(o Options) bool { return o.Emails },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			return t.Email(text[start:end]), true
		},
	},
	{
		name:    "url",
		re:      urlPattern,
		enabled: func(o Options) bool { return o.URLs },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			protocol, domain, found := strings.Cut(text[start:end], "://")
			if !found {
				return "", false
			}
			return t.Spell(protocol, "", false) + t.Domain(domain), true
		},
	},
	{
		name:    "domain",
		re:      bareDomain,
		enabled: func(o Options) bool { return o.Domains },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			// Not a bare domain if part of an email or a URL path
			if p := prevRune(text, start); p == '@' || p == '.' || p == '/' {
				return "", false
			}
			return t.Domain(text[start:end]), true
		},
	},
	{
		name: "time",
		re:   timePattern,
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			return t.Time(text[start:end]), true
		},
	},
	{
		name:    "date",
		re:      datePattern,
		enabled: func(o Options) bool { return o.Dates },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			// Accusative case is the most common for dates in running text
			out := t.Date(text[start:end], CaseThf)
			return out, out != text[start:end]
		},
	},
	{
		name:    "amount",
		re:      amountSuffix,
		enabled: func(o Options) bool { return o.Amounts },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			if isWordRune(nextRune(text, end)) {
				return "", false
			}
			match := text[start:end]
			num := group(amountSuffix, match, "num")
			curr := group(amountSuffix, match, "curr")
			if code, ok := currencySymbols[curr]; ok {
				curr = code
			}
			prefix, num := splitSign(text, start, num)
			gnum := NumberEt
			if isPluralNumber(num) {
				gnum = NumberFt
			}
			return prefix + FloatStringToText(num, WordOptions{Gender: currencyGender(curr)}) +
				" " + t.Currency(curr, gnum), true
		},
	},
	{
		name:    "amount",
		re:      amountPrefix,
		enabled: func(o Options) bool { return o.Amounts },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			match := text[start:end]
			num := group(amountPrefix, match, "num")
			curr := currencySymbols[group(amountPrefix, match, "curr")]
			gnum := NumberEt
			if isPluralNumber(num) {
				gnum = NumberFt
			}
			return FloatStringToText(num, WordOptions{Gender: currencyGender(curr)}) +
				" " + t.Currency(curr, gnum), true
		},
	},
	{
		name:    "percentage",
		re:      percentSuffix,
		enabled: func(o Options) bool { return o.Percentages },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			match := text[start:end]
			sym := group(percentSuffix, match, "sym")
			prefix, num := splitSign(text, start, group(percentSuffix, match, "num"))
			val := FloatStringToText(num, WordOptions{})
			switch sym {
			case "%":
				return prefix + val + " prósent", true
			case "‰":
				return prefix + val + " prómill", true
			default:
				// Written form (e.g. "3,5 prósentum"), only transcribe
				// the number
				return prefix + val + " " + sym, true
			}
		},
	},
	{
		name:    "measurement",
		re:      nil, // measurementRe, set at init
		enabled: func(o Options) bool { return o.Measurements },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			if isWordRune(nextRune(text, end)) {
				return "", false
			}
			match := text[start:end]
			unit := group(measurementRe, match, "unit")
			prefix, num := splitSign(text, start, group(measurementRe, match, "num"))
			gnum := NumberEt
			if isPluralNumber(num) {
				gnum = NumberFt
			}
			return prefix + FloatStringToText(num, WordOptions{Gender: unitGender(unit)}) +
				" " + t.Unit(unit, gnum), true
		},
	},
	{
		name: "ssn",
		re:   ssnPattern,
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			return t.Digits(text[start:end]), true
		},
	},
	{
		name: "phone",
		re:   phonePattern,
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			return t.Phone(text[start:end]), true
		},
	},
	{
		name:    "year",
		re:      fourDigitYearPattern,
		enabled: func(o Options) bool { return o.Years },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			// Not a year if a decimal fraction follows, e.g. "2021,5"
			if end+1 < len(text) && (text[end] == '.' || text[end] == ',') && isASCIIDigit(text[end+1]) {
				return "", false
			}
			n, _ := strconv.ParseInt(text[start:end], 10, 64)
			if n <= 850 || n >= 2200 {
				return "", false
			}
			return YearToText(n), true
		},
	},
	{
		name:    "ordinal",
		re:      ordinalPattern,
		enabled: func(o Options) bool { return o.Ordinals },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			if end >= len(text) || !strings.ContainsRune(" ,)-", rune(text[end])) {
				return "", false
			}
			prefix, num := splitSign(text, start, text[start:end])
			n, err := strconv.ParseInt(strings.TrimSuffix(num, "."), 10, 64)
			if err != nil {
				return "", false
			}
			return prefix + NumberToOrdinal(n, WordOptions{Case: CaseThf, Gender: GenderKk}), true
		},
	},
	{
		name:    "number",
		re:      floatPattern,
		enabled: func(o Options) bool { return o.Numbers },
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			prefix, num := splitSign(text, start, text[start:end])
			return prefix + FloatStringToText(num, WordOptions{}), true
		},
	},
	{
		name: "abbreviation",
		re:   nil, // abbrevPattern, set at init
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			if isWordRune(prevRune(text, start)) || isWordRune(nextRune(text, end)) {
				return "", false
			}
			// Plain expansion, no pauses: these run inline in text
			return icelandicAbbrevs[text[start:end]], true
		},
	},
	{
		name: "hyphen",
		re:   hyphenTokenRe,
		apply: func(t *Transcriber, text string, start, end int) (string, bool) {
			return " bandstrik ", true
		},
	},
}

type claimedSpan struct {
	start, end int
	repl       string
	rule       string
}

func overlapsAny(spans []claimedSpan, start, end int) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

// TokenTranscribe rewrites text into speakable Icelandic by applying
// the rule table in priority order. Existing markup tags are left
// untouched, and text produced by one rule is never re-scanned by
// another. The same input and options always produce the same output.
func (t *Transcriber) TokenTranscribe(text string, o Options) (Normalized, error) {
	var claimed []claimedSpan

	// Existing SSML/HTML tags are off-limits
	for _, span := range markupTagPattern.FindAllStringIndex(text, -1) {
		claimed = append(claimed, claimedSpan{start: span[0], end: span[1], repl: text[span[0]:span[1]]})
	}

	for _, rule := range scanRules {
		if rule.enabled != nil && !rule.enabled(o) {
			continue
		}
		re := rule.re
		if re == nil {
			switch rule.name {
			case "measurement":
				re = measurementRe
			case "abbreviation":
				re = abbrevPattern
			}
		}
		for _, span := range re.FindAllStringIndex(text, -1) {
			if overlapsAny(claimed, span[0], span[1]) {
				continue
			}
			repl, ok := rule.apply(t, text, span[0], span[1])
			if !ok {
				continue
			}
			claimed = append(claimed, claimedSpan{start: span[0], end: span[1], repl: repl, rule: rule.name})
		}
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
