// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.
//
// Utility functions converting numbers to spoken-form Icelandic text.

package transcribe

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Case is a grammatical case: nominative, accusative, dative or genitive.
type Case string

const (
	CaseNf   Case = "nf"
	CaseThf  Case = "þf"
	CaseThgf Case = "þgf"
	CaseEf   Case = "ef"
)

// Gender is a grammatical gender.
type Gender string

const (
	GenderKk  Gender = "kk"
	GenderKvk Gender = "kvk"
	GenderHk  Gender = "hk"
)

// GramNumber is a grammatical number (singular or plural).
type GramNumber string

const (
	NumberEt GramNumber = "et"
	NumberFt GramNumber = "ft"
)

// WordOptions selects the declension of a spelled-out number. Zero
// values fall back to nominative, neuter, singular.
type WordOptions struct {
	Case   Case
	Gender Gender
	Number GramNumber
	// OneHundred adds "eitt" before a leading "hundrað".
	OneHundred bool
	// CommaNull keeps "komma núll" when the fractional part is zero.
	CommaNull bool
}

func (o WordOptions) withDefaults(gender Gender) WordOptions {
	if o.Case == "" {
		o.Case = CaseNf
	}
	if o.Gender == "" {
		o.Gender = gender
	}
	if o.Number == "" {
		o.Number = NumberEt
	}
	return o
}

var sub20Neutral = map[int64]string{
	1:  "eitt",
	2:  "tvö",
	3:  "þrjú",
	4:  "fjögur",
	5:  "fimm",
	6:  "sex",
	7:  "sjö",
	8:  "átta",
	9:  "níu",
	10: "tíu",
	11: "ellefu",
	12: "tólf",
	13: "þrettán",
	14: "fjórtán",
	15: "fimmtán",
	16: "sextán",
	17: "sautján",
	18: "átján",
	19: "nítján",
}

var tensNeutral = map[int64]string{
	20: "tuttugu",
	30: "þrjátíu",
	40: "fjörutíu",
	50: "fimmtíu",
	60: "sextíu",
	70: "sjötíu",
	80: "áttatíu",
	90: "níutíu",
}

// Declension of the numbers one through four, the only cardinals that
// decline by case and gender.
var numNeutToDecl = map[string]map[Gender]map[Case]string{
	"eitt": {
		GenderKk:  {CaseNf: "einn", CaseThf: "einn", CaseThgf: "einum", CaseEf: "eins"},
		GenderKvk: {CaseNf: "ein", CaseThf: "eina", CaseThgf: "einni", CaseEf: "einnar"},
		GenderHk:  {CaseNf: "eitt", CaseThf: "eitt", CaseThgf: "einu", CaseEf: "eins"},
	},
	"tvö": {
		GenderKk:  {CaseNf: "tveir", CaseThf: "tvo", CaseThgf: "tveimur", CaseEf: "tveggja"},
		GenderKvk: {CaseNf: "tvær", CaseThf: "tvær", CaseThgf: "tveimur", CaseEf: "tveggja"},
		GenderHk:  {CaseNf: "tvö", CaseThf: "tvö", CaseThgf: "tveimur", CaseEf: "tveggja"},
	},
	"þrjú": {
		GenderKk:  {CaseNf: "þrír", CaseThf: "þrjá", CaseThgf: "þremur", CaseEf: "þriggja"},
		GenderKvk: {CaseNf: "þrjár", CaseThf: "þrjár", CaseThgf: "þremur", CaseEf: "þriggja"},
		GenderHk:  {CaseNf: "þrjú", CaseThf: "þrjú", CaseThgf: "þremur", CaseEf: "þriggja"},
	},
	"fjögur": {
		GenderKk:  {CaseNf: "fjórir", CaseThf: "fjóra", CaseThgf: "fjórum", CaseEf: "fjögurra"},
		GenderKvk: {CaseNf: "fjórar", CaseThf: "fjórar", CaseThgf: "fjórum", CaseEf: "fjögurra"},
		GenderHk:  {CaseNf: "fjögur", CaseThf: "fjögur", CaseThgf: "fjórum", CaseEf: "fjögurra"},
	},
}

type largeNumber struct {
	value  *big.Int
	name   string
	gender Gender
}

var largeNumbers = []largeNumber{
	{pow10(48), "oktilljón", GenderKvk},
	{pow10(42), "septilljón", GenderKvk},
	{pow10(36), "sextilljón", GenderKvk},
	{pow10(30), "kvintilljón", GenderKvk},
	{pow10(27), "kvaðrilljarð", GenderKk},
	{pow10(24), "kvaðrilljón", GenderKvk},
	{pow10(21), "trilljarð", GenderKk},
	{pow10(18), "trilljón", GenderKvk},
	{pow10(15), "billjarð", GenderKk},
	{pow10(12), "billjón", GenderKvk},
	{pow10(9), "milljarð", GenderKk},
	{pow10(6), "milljón", GenderKvk},
}

func pow10(exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
}

var bigMillion = big.NewInt(1_000_000)

// Fixes e.g. "milljónir milljarðar" -> "milljónir milljarða".
var largePluralFix = regexp.MustCompile(`(\S*(jónir|jarð[au]r?)) (\S*(jarð|jón))[ia]r`)

// A number should be prefixed with "og" when, stripped of trailing
// zeros, it is below twenty ("hundrað og eitt", "hundrað og níutíu").
func shouldPrependOg(n int64) bool {
	if n <= 0 {
		return false
	}
	trimmed := strings.TrimRight(strconv.FormatInt(n, 10), "0")
	if trimmed == "" {
		return false
	}
	v, _ := strconv.ParseInt(trimmed, 10, 64)
	return v < 20
}

func bigShouldPrependOg(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	trimmed := strings.TrimRight(n.String(), "0")
	if trimmed == "" {
		return false
	}
	if len(trimmed) > 2 {
		return false
	}
	v, _ := strconv.ParseInt(trimmed, 10, 64)
	return v < 20
}

// NumberToNeutral writes an integer out as neutral gender Icelandic text.
// OneHundred adds "eitt" before a leading "hundrað".
// Example: 1337 -> "eitt þúsund þrjú hundruð þrjátíu og sjö".
func NumberToNeutral(n int64, oneHundred bool) string {
	return BigNumberToNeutral(big.NewInt(n), oneHundred)
}

// BigNumberToNeutral is NumberToNeutral for arbitrarily large integers
// (up to oktilljónir, 10^48).
func BigNumberToNeutral(num *big.Int, oneHundred bool) string {
	if num.Sign() == 0 {
		return "núll"
	}

	var text []string
	minus := ""
	n := new(big.Int).Set(num)
	if n.Sign() < 0 {
		minus = "mínus "
		n.Neg(n)
	}

	for n.Cmp(bigMillion) >= 0 {
		large := largeNumbers[len(largeNumbers)-1]
		for _, ln := range largeNumbers {
			if ln.value.Cmp(n) <= 0 {
				large = ln
				break
			}
		}

		count := new(big.Int)
		count.QuoRem(n, large.value, n)

		text = append(text, strings.Fields(BigNumberToNeutral(count, true))...)

		last := text[len(text)-1]
		name := large.name
		if large.gender == GenderKk {
			// e.g. "milljarður" if the count ends in one, else "milljarðar"
			if last == "eitt" {
				name += "ur"
			} else {
				name += "ar"
			}
		} else if large.gender == GenderKvk && last != "eitt" {
			// e.g. "milljón" if the count ends in one, else "milljónir"
			name += "ir"
		}

		if decl, ok := numNeutToDecl[last]; ok {
			// Change "eitt" to "einn"/"ein" etc.
			text[len(text)-1] = decl[large.gender][CaseNf]
		}

		text = append(text, name)
		if bigShouldPrependOg(n) {
			text = append(text, "og")
		}
	}

	m := n.Int64()

	if m >= 1000 {
		thousands := m / 1000
		m %= 1000

		if thousands > 1 {
			text = append(text, strings.Fields(NumberToNeutral(thousands, true))...)
		} else if thousands == 1 {
			text = append(text, "eitt")
		}

		// Singular and plural of "þúsund" coincide
		text = append(text, "þúsund")
		// No "og" in front of 110, 120, ..., 190
		if shouldPrependOg(m) && !(m >= 110 && m < 200 && m%10 == 0) {
			text = append(text, "og")
		}
	}

	if m >= 100 {
		hundreds := m / 100
		m %= 100

		if hundreds > 1 {
			text = append(text, strings.Fields(NumberToNeutral(hundreds, false))...)
			text = append(text, "hundruð")
		} else {
			if len(text) > 0 || oneHundred {
				text = append(text, "eitt")
			}
			text = append(text, "hundrað")
		}

		if shouldPrependOg(m) {
			text = append(text, "og")
		}
	}

	if m >= 20 {
		tens := (m / 10) * 10
		digit := m % 10

		text = append(text, tensNeutral[tens])
		if digit != 0 {
			text = append(text, "og", sub20Neutral[digit])
		}
		m = 0
	}

	if m > 0 {
		text = append(text, sub20Neutral[m])
	}

	return minus + largePluralFix.ReplaceAllString(strings.Join(text, " "), "$1 ${3}a")
}

// NumberToText converts an integer into Icelandic text in the given
// case and gender. Example: 302 (kvk) -> "þrjú hundruð og tvær".
func NumberToText(n int64, o WordOptions) string {
	o = o.withDefaults(GenderHk)
	words := strings.Fields(NumberToNeutral(n, o.OneHundred))

	last := words[len(words)-1]
	if decl, ok := numNeutToDecl[last]; ok {
		words[len(words)-1] = decl[o.Gender][o.Case]
	}
	return strings.Join(words, " ")
}

// Matches "15" and "-15"; "1-5" matches as "1" and "5".
var cardinalPattern = regexp.MustCompile(`-?\b\d+\b`)

// NumbersToText converts every integer in a string to Icelandic text.
func NumbersToText(s string, o WordOptions) string {
	return replaceNumberMatches(s, cardinalPattern, func(digits string, negative bool) string {
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return digits
		}
		if negative {
			n = -n
		}
		return NumberToText(n, o)
	})
}

// replaceNumberMatches applies conv to every match of pattern, treating
// a leading minus as a sign only when not directly preceded by a digit
// (so ranges like "1-5" read as two numbers, not "1" and "-5").
func replaceNumberMatches(s string, pattern *regexp.Regexp, conv func(digits string, negative bool) string) string {
	var b strings.Builder
	prev := 0
	for _, span := range pattern.FindAllStringIndex(s, -1) {
		start, end := span[0], span[1]
		b.WriteString(s[prev:start])

		match := s[start:end]
		if strings.HasPrefix(match, "-") {
			if start > 0 && isASCIIDigit(s[start-1]) {
				// Not a sign: keep the hyphen, convert the digits
				b.WriteByte('-')
				b.WriteString(conv(match[1:], false))
			} else {
				b.WriteString(conv(match[1:], true))
			}
		} else {
			b.WriteString(conv(match, false))
		}
		prev = end
	}
	b.WriteString(s[prev:])
	return b.String()
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }

// FloatToText converts a float into Icelandic text in the given case
// and gender. Example: -0.02 (kk) -> "mínus núll komma núll tveir".
func FloatToText(f float64, o WordOptions) string {
	return FloatStringToText(strconv.FormatFloat(f, 'f', -1, 64), o)
}

// FloatStringToText converts a textual number, Icelandic style
// ("14.022,14") or programmatic style ("14022.14"), to Icelandic text.
func FloatStringToText(s string, o WordOptions) string {
	o = o.withDefaults(GenderHk)

	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// Remove Icelandic thousand separators
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}

	out := ""
	// Keep "mínus" for values like -0.2 whose integer part reads "núll"
	if strings.HasPrefix(s, "-") {
		out = "mínus "
		s = s[1:]
	}

	first, second, found := strings.Cut(s, ".")
	if !found {
		second = "0"
	}
	// Canonicalize the fraction the way float formatting does:
	// drop trailing zeros, keep at least one digit
	second = strings.TrimRight(second, "0")
	if second == "" {
		second = "0"
	}

	n, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		return s
	}
	out += NumberToText(n, o)

	if !o.CommaNull && second == "0" {
		return out
	}

	out += " komma "

	if len(strings.TrimLeft(second, "0")) <= 2 {
		// e.g. 2,41 -> "tveimur komma fjörutíu og einum"
		for len(second) > 0 && second[0] == '0' {
			// e.g. 1,03 -> "einni komma núll þremur"
			out += "núll "
			second = second[1:]
		}
		if second != "" {
			frac, _ := strconv.ParseInt(second, 10, 64)
			out += NumberToText(frac, WordOptions{Case: o.Case, Gender: o.Gender})
		}
	} else {
		// Only decline up to two digits after the comma
		c := CaseNf
		for _, digit := range second {
			if digit == '0' {
				out += "núll "
				continue
			}
			word := sub20Neutral[int64(digit-'0')]
			if decl, ok := numNeutToDecl[word]; ok {
				out += decl[o.Gender][c]
			} else {
				out += word
			}
			out += " "
		}
	}

	return strings.TrimRight(out, " ")
}

// Matches floats like "14.022,14" and "0,42" (Icelandic comma).
var floatPattern = regexp.MustCompile(`-?\b(\d{1,3}\.)*\d+(,\d+)?\b`)

// FloatsToText converts every float in a string to Icelandic text.
func FloatsToText(s string, o WordOptions) string {
	return replaceNumberMatches(s, floatPattern, func(digits string, negative bool) string {
		if negative {
			digits = "-" + digits
		}
		return FloatStringToText(digits, o)
	})
}

// YearToText writes a year as Icelandic text. Negative years append
// "fyrir okkar tímatal".
func YearToText(year int64) string {
	suffix := ""
	if year < 0 {
		suffix = " fyrir okkar tímatal"
		year = -year
	}

	var text []string
	if year >= 1100 && year < 2000 {
		// People say "nítján hundruð þrjátíu og tvö" rather than
		// "eitt þúsund níu hundruð þrjátíu og tvö" for 1100-1999
		hundreds := year / 100
		digits := year % 100

		text = append(text, sub20Neutral[hundreds], "hundruð")
		if digits > 0 {
			if _, ok := sub20Neutral[digits]; ok {
				text = append(text, "og")
			} else if _, ok := tensNeutral[digits]; ok {
				text = append(text, "og")
			}
			text = append(text, NumberToNeutral(digits, false))
		}
	} else {
		text = append(text, NumberToNeutral(year, false))
	}

	return strings.Join(text, " ") + suffix
}

var (
	fourDigitYearPattern  = regexp.MustCompile(`\b\d{4}\b`)
	threeDigitYearPattern = regexp.MustCompile(`\b\d{3,4}\b`)
)

// YearsToText converts 4-digit numbers in a string to spoken Icelandic
// years. Numbers outside 851-2199 and numbers followed by a decimal
// part are left alone. allowThreeDigits additionally matches 3-digit
// years.
func YearsToText(s string, allowThreeDigits bool) string {
	pattern := fourDigitYearPattern
	if allowThreeDigits {
		pattern = threeDigitYearPattern
	}

	var b strings.Builder
	prev := 0
	for _, span := range pattern.FindAllStringIndex(s, -1) {
		start, end := span[0], span[1]
		// Not a year if a decimal fraction follows, e.g. "2021,5"
		if end+1 < len(s) && (s[end] == '.' || s[end] == ',') && isASCIIDigit(s[end+1]) {
			continue
		}
		n, _ := strconv.ParseInt(s[start:end], 10, 64)
		if n <= 850 || n >= 2200 {
			continue
		}
		b.WriteString(s[prev:start])
		b.WriteString(YearToText(n))
		prev = end
	}
	b.WriteString(s[prev:])
	return b.String()
}

var sub20NeutToOrdinal = map[string]string{
	"eitt": "fyrst",
	// 2 is a special case ("annar")
	"þrjú":    "þriðj",
	"fjögur":  "fjórð",
	"fimm":    "fimmt",
	"sex":     "sjött",
	"sjö":     "sjöund",
	"átta":    "áttund",
	"níu":     "níund",
	"tíu":     "tíund",
	"ellefu":  "elleft",
	"tólf":    "tólft",
	"þrettán": "þrettánd",
	"fjórtán": "fjórtánd",
	"fimmtán": "fimmtánd",
	"sextán":  "sextánd",
	"sautján": "sautjánd",
	"átján":   "átjánd",
	"nítján":  "nítjánd",
}

var annarTable = map[GramNumber]map[Gender]map[Case]string{
	NumberEt: {
		GenderKk:  {CaseNf: "annar", CaseThf: "annan", CaseThgf: "öðrum", CaseEf: "annars"},
		GenderKvk: {CaseNf: "önnur", CaseThf: "aðra", CaseThgf: "annarri", CaseEf: "annarrar"},
		GenderHk:  {CaseNf: "annað", CaseThf: "annað", CaseThgf: "öðru", CaseEf: "annars"},
	},
	NumberFt: {
		GenderKk:  {CaseNf: "aðrir", CaseThf: "aðra", CaseThgf: "öðrum", CaseEf: "annarra"},
		GenderKvk: {CaseNf: "aðrar", CaseThf: "aðrar", CaseThgf: "öðrum", CaseEf: "annarra"},
		GenderHk:  {CaseNf: "önnur", CaseThf: "önnur", CaseThgf: "öðrum", CaseEf: "annarra"},
	},
}

var sub20OrdinalSuffix = map[Gender]map[Case]string{
	GenderKk:  {CaseNf: "i", CaseThf: "a", CaseThgf: "a", CaseEf: "a"},
	GenderKvk: {CaseNf: "a", CaseThf: "u", CaseThgf: "u", CaseEf: "u"},
	GenderHk:  {CaseNf: "a", CaseThf: "a", CaseThgf: "a", CaseEf: "a"},
}

var tensNeutToOrdinal = map[string]string{
	"tuttugu": "tuttug",
	"þrjátíu": "þrítug",
	"fjörutíu": "fertug",
	"fimmtíu": "fimmtug",
	"sextíu":  "sextug",
	"sjötíu":  "sjötug",
	"áttatíu": "átttug",
	"níutíu":  "nítug",
}

var largeOrdinalSuffix = map[Gender]map[Case]string{
	GenderKk:  {CaseNf: "asti", CaseThf: "asta", CaseThgf: "asta", CaseEf: "asta"},
	GenderKvk: {CaseNf: "asta", CaseThf: "ustu", CaseThgf: "ustu", CaseEf: "ustu"},
	GenderHk:  {CaseNf: "asta", CaseThf: "asta", CaseThgf: "asta", CaseEf: "asta"},
}

var (
	jonOrdinalPattern  = regexp.MustCompile(`(\S*jón)\S*`)
	jardOrdinalPattern = regexp.MustCompile(`(\S*)jarð\S*`)
	jardKeepPattern    = regexp.MustCompile(`(\S*jarð)\S*`)
	largeOrdinalEnd    = regexp.MustCompile(`[au]st[iau]$`)
	leadingOneOrdinal  = regexp.MustCompile(`^(einn?|eitt) ((\S*)([au]st[iau]))`)
)

// numToOrdinalWord changes one written-out number word to ordinal form.
// Example: "hundruð" -> "hundraðasti"; "tvö" (þf, kvk, ft) -> "aðrar".
func numToOrdinalWord(word string, c Case, g Gender, num GramNumber) string {
	switch {
	case word == "núll":
		word = "núllt" + sub20OrdinalSuffix[g][c]

	case word == "tvö":
		word = annarTable[num][g][c]

	case sub20NeutToOrdinal[word] != "":
		word = sub20NeutToOrdinal[word]
		if num == NumberFt {
			word += "u"
		} else {
			word += sub20OrdinalSuffix[g][c]
		}

	case tensNeutToOrdinal[word] != "":
		word = tensNeutToOrdinal[word]
		if num == NumberFt {
			word += "ustu"
		} else {
			word += largeOrdinalSuffix[g][c]
		}

	case strings.HasPrefix(word, "hundr"):
		if num == NumberFt || (g == GenderKvk && c != CaseNf) {
			word = "hundruðustu"
		} else {
			word = "hundrað" + largeOrdinalSuffix[g][c]
		}

	case word == "þúsund":
		if num == NumberFt || (g == GenderKvk && c != CaseNf) {
			word = "þúsundustu"
		} else {
			word = "þúsund" + largeOrdinalSuffix[g][c]
		}

	case strings.Contains(word, "jón"):
		if num == NumberFt {
			word = jonOrdinalPattern.ReplaceAllString(word, "${1}ustu")
		} else {
			word = jonOrdinalPattern.ReplaceAllString(word, "${1}"+largeOrdinalSuffix[g][c])
		}

	case strings.Contains(word, "jarð"):
		if num == NumberFt || (g == GenderKvk && c != CaseNf) {
			word = jardOrdinalPattern.ReplaceAllString(word, "${1}jörðustu")
		} else {
			word = jardKeepPattern.ReplaceAllString(word, "${1}"+largeOrdinalSuffix[g][c])
		}
	}
	return word
}

// NeutralTextToOrdinal changes an Icelandic neutral-text number into an
// ordinal in the given case, gender and grammatical number.
func NeutralTextToOrdinal(s string, o WordOptions) string {
	if s == "" {
		return s
	}
	o = o.withDefaults(GenderKk)

	words := strings.Fields(s)
	words[len(words)-1] = numToOrdinalWord(words[len(words)-1], o.Case, o.Gender, o.Number)

	if len(words) >= 3 && words[len(words)-2] == "og" {
		// "tvö þúsund og fyrsti" -> "tvö þúsundasti og fyrsti",
		// unless the last word is itself a large ordinal
		if !largeOrdinalEnd.MatchString(words[len(words)-1]) {
			words[len(words)-3] = numToOrdinalWord(words[len(words)-3], o.Case, o.Gender, o.Number)
		}
	}

	// "eitt hundraðasti" -> "hundraðasti",
	// "ein milljónasta og fyrsta" -> "milljónasta og fyrsta"
	return leadingOneOrdinal.ReplaceAllString(strings.Join(words, " "), "${2}")
}

// NumberToOrdinal converts an integer to an Icelandic ordinal in the
// given case, gender and grammatical number.
func NumberToOrdinal(n int64, o WordOptions) string {
	return NeutralTextToOrdinal(NumberToNeutral(n, false), o)
}

// Matches ordinals of the form "2." and "101." when followed by a
// space, comma, closing parenthesis or hyphen.
var ordinalPattern = regexp.MustCompile(`-?\b\d+\.`)

// NumbersToOrdinal converts ordinals of the form "2.", "101." in a
// string to Icelandic text.
func NumbersToOrdinal(s string, o WordOptions) string {
	var b strings.Builder
	prev := 0
	for _, span := range ordinalPattern.FindAllStringIndex(s, -1) {
		start, end := span[0], span[1]
		// The period must be followed by a delimiter, otherwise this is
		// likely a decimal or an abbreviation
		if end >= len(s) || !strings.ContainsRune(" ,)-", rune(s[end])) {
			continue
		}
		b.WriteString(s[prev:start])

		match := s[start:end]
		if strings.HasPrefix(match, "-") && start >= 2 && s[start-1] == '.' && isASCIIDigit(s[start-2]) {
			// Hyphen after an ordinal ("1.-4.") denotes a range,
			// not a minus sign
			b.WriteByte('-')
			match = match[1:]
		}
		n, _ := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(match, "-"), "."), 10, 64)
		if strings.HasPrefix(match, "-") {
			n = -n
		}
		b.WriteString(NumberToOrdinal(n, o))
		prev = end
	}
	b.WriteString(s[prev:])
	return b.String()
}

// NumbersToOrdinalMatching is NumbersToOrdinal with a custom pattern.
func NumbersToOrdinalMatching(s string, pattern *regexp.Regexp, o WordOptions) string {
	return pattern.ReplaceAllStringFunc(s, func(match string) string {
		n, err := strconv.ParseInt(strings.TrimSuffix(match, "."), 10, 64)
		if err != nil {
			return match
		}
		return NumberToOrdinal(n, o)
	})
}

var digitsToKk = map[rune]string{
	'0': "núll",
	'1': "einn",
	'2': "tveir",
	'3': "þrír",
	'4': "fjórir",
	'5': "fimm",
	'6': "sex",
	'7': "sjö",
	'8': "átta",
	'9': "níu",
}

var digitRunPattern = regexp.MustCompile(`\b\d+`)

// DigitsToText spells out each digit in a string individually. Useful
// for phone numbers, social security numbers and such.
// Example: "5885522" -> "fimm átta átta fimm fimm tveir tveir".
func DigitsToText(s string) string {
	return DigitsToTextMatching(s, digitRunPattern)
}

// DigitsToTextMatching spells out the digits of every match of pattern.
func DigitsToTextMatching(s string, pattern *regexp.Regexp) string {
	return pattern.ReplaceAllStringFunc(s, func(match string) string {
		match = strings.ReplaceAll(match, "-", "")
		var b strings.Builder
		for _, r := range match {
			if name, ok := digitsToKk[r]; ok {
				b.WriteString(name)
				b.WriteByte(' ')
			} else {
				b.WriteRune(r)
			}
		}
		return strings.TrimRight(b.String(), " ")
	})
}

// RomanNumerals maps Roman numeral characters to their values.
var RomanNumerals = map[rune]int64{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

func romanNumeralToInt(s string) int64 {
	var values []int64
	for _, r := range strings.ToUpper(s) {
		if v, ok := RomanNumerals[r]; ok {
			values = append(values, v)
		}
	}
	var sum int64
	for i, v := range values {
		next := i + 1
		if next >= len(values) {
			next = len(values) - 1
		}
		if v >= values[next] {
			sum += v
		} else {
			sum -= v
		}
	}
	return sum
}

// RomanNumeralToOrdinal changes a Roman numeral into a written
// Icelandic ordinal. Example: "III" -> "þriðji".
func RomanNumeralToOrdinal(s string, o WordOptions) string {
	return NumberToOrdinal(romanNumeralToInt(s), o)
}
