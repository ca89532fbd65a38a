// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package transcribe

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigPow10(exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
}

func mustCompile(t *testing.T, expr string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(expr)
	require.NoError(t, err)
	return re
}

const (
	milljon    = int64(1_000_000)
	milljardur = int64(1_000_000_000)
	billjon    = int64(1_000_000_000_000)
	thusund    = int64(1000)
)

func TestNumberToNeutral(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "núll"},
		{1, "eitt"},
		{4, "fjögur"},
		{17, "sautján"},
		{20, "tuttugu"},
		{21, "tuttugu og eitt"},
		{93, "níutíu og þrjú"},
		{100, "hundrað"},
		{101, "hundrað og eitt"},
		{201, "tvö hundruð og eitt"},
		{1100, "eitt þúsund og eitt hundrað"},
		{
			-42_178_249,
			"mínus fjörutíu og tvær milljónir eitt hundrað sjötíu og átta þúsund tvö hundruð fjörutíu og níu",
		},
		{241 * milljardur, "tvö hundruð fjörutíu og einn milljarður"},
		{100 * milljon, "eitt hundrað milljónir"},
		{milljardur + thusund, "einn milljarður og eitt þúsund"},
		{milljardur + 11, "einn milljarður og ellefu"},
		{milljardur + 1*milljon, "einn milljarður og ein milljón"},
		{milljardur + 2*milljon, "einn milljarður og tvær milljónir"},
		{200 * milljardur, "tvö hundruð milljarðar"},
		{3*milljardur + 400*thusund, "þrír milljarðar og fjögur hundruð þúsund"},
		{
			1_010_101_010_101_010,
			"einn billjarður tíu billjónir eitt hundrað og einn milljarður " +
				"tíu milljónir eitt hundrað og eitt þúsund og tíu",
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NumberToNeutral(tc.n, false), "n=%d", tc.n)
	}
}

func TestBigNumberToNeutral(t *testing.T) {
	oktilljon := bigPow10(48)

	cases := []struct {
		n    *big.Int
		want string
	}{
		{
			new(big.Int).Mul(big.NewInt(10*milljon), oktilljon),
			"tíu milljónir oktilljóna",
		},
		{
			new(big.Int).Add(oktilljon, big.NewInt(milljardur)),
			"ein oktilljón og einn milljarður",
		},
		{
			new(big.Int).Add(oktilljon, big.NewInt(2*milljardur)),
			"ein oktilljón og tveir milljarðar",
		},
		{
			new(big.Int).Add(oktilljon, big.NewInt(3*milljardur)),
			"ein oktilljón og þrír milljarðar",
		},
		{
			new(big.Int).Add(new(big.Int).Mul(big.NewInt(2), oktilljon), big.NewInt(100*billjon)),
			"tvær oktilljónir og eitt hundrað billjónir",
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BigNumberToNeutral(tc.n, false), "n=%s", tc.n)
	}
}

func TestNumberToText(t *testing.T) {
	nt := func(n int64, o WordOptions) string { return NumberToText(n, o) }

	assert.Equal(t,
		"einn milljarður tvö hundruð þúsund og tvö hundruð",
		nt(milljardur+200*thusund+200, WordOptions{}),
	)
	assert.Equal(t, "þrjú hundruð og tuttugu", nt(320, WordOptions{}))
	assert.Equal(t, "þrjú hundruð og tuttugu þúsund", nt(320*thusund, WordOptions{}))
	assert.Equal(t, "þrjú hundruð og tuttugu þúsund og einn", nt(320*thusund+1, WordOptions{Gender: GenderKk}))
	assert.Equal(t, "þrjú hundruð og tuttugu þúsund og ein", nt(320*thusund+1, WordOptions{Gender: GenderKvk}))
	assert.Equal(t, "þrjú hundruð og tuttugu þúsund og eitt", nt(320*thusund+1, WordOptions{Gender: GenderHk}))
	assert.Equal(t,
		"þrjár billjónir tvö hundruð og tveir milljarðar "+
			"tuttugu milljónir tvö hundruð og tvö þúsund og tuttugu",
		nt(3202020202020, WordOptions{}),
	)
	assert.Equal(t,
		"þrjú hundruð og tuttugu milljónir tvö hundruð og tvö þúsund og tuttugu",
		nt(320202020, WordOptions{}),
	)

	assert.Equal(t, "hundrað og einn", nt(101, WordOptions{Gender: GenderKk}))
	assert.Equal(t, "mínus hundrað og tvær", nt(-102, WordOptions{Gender: GenderKvk}))
	assert.Equal(t, "mínus eitt hundrað og tvær", nt(-102, WordOptions{Gender: GenderKvk, OneHundred: true}))
	assert.Equal(t, "fimm", nt(5, WordOptions{Gender: GenderKk}))
	assert.Equal(t, "tíu þúsund og ein", nt(10001, WordOptions{Gender: GenderKvk}))
	assert.Equal(t, "eitt hundrað og þrettán þúsund þrjú hundruð og fimm", nt(113305, WordOptions{Gender: GenderKk}))
	assert.Equal(t, NumberToNeutral(400567, false), nt(400567, WordOptions{Gender: GenderHk}))
	assert.Equal(t,
		"mínus ellefu milljónir tvö hundruð og tuttugu þúsund tuttugu og fjórar",
		nt(-11220024, WordOptions{Gender: GenderKvk}),
	)
	assert.Equal(t,
		"nítján milljónir fimm hundruð og eitt þúsund eitt hundrað og áttatíu",
		nt(19501180, WordOptions{}),
	)
}

func TestNumbersToText(t *testing.T) {
	assert.Equal(t, "hundrað þrjátíu og fimm og mínus sextán", NumbersToText("135 og -16", WordOptions{}))
	assert.Equal(t, "mínus fimmtíu og fimm manns", NumbersToText("-55 manns", WordOptions{}))

	addresses := []struct{ num, want string }{
		{"1", "eitt"},
		{"4", "fjögur"},
		{"11", "ellefu"},
		{"21", "tuttugu og eitt"},
		{"101", "hundrað og eitt"},
		{"115", "hundrað og fimmtán"},
		{"121", "hundrað tuttugu og eitt"},
		{"174", "hundrað sjötíu og fjögur"},
		{"200", "tvö hundruð"},
		{"214", "tvö hundruð og fjórtán"},
		{"700", "sjö hundruð"},
		{"1-4", "eitt-fjögur"},
		{"1-17", "eitt-sautján"},
	}
	for _, tc := range addresses {
		in := fmt.Sprintf("Baugatangi %s, Reykjavík", tc.num)
		want := fmt.Sprintf("Baugatangi %s, Reykjavík", tc.want)
		assert.Equal(t, want, NumbersToText(in, WordOptions{}))
	}
}

func TestYearToText(t *testing.T) {
	assert.Equal(t, "nítján hundruð níutíu og níu", YearToText(1999))
	assert.Equal(t, "tvö þúsund og fjögur", YearToText(2004))
	assert.Equal(t, "fimm hundruð og eitt fyrir okkar tímatal", YearToText(-501))
	assert.Equal(t, "eitt þúsund og eitt", YearToText(1001))
	assert.Equal(t, "fimmtíu og sjö", YearToText(57))
	assert.Equal(t, "tvö þúsund fjögur hundruð og eitt", YearToText(2401))
}

func TestYearsToText(t *testing.T) {
	assert.Equal(t,
		"Ég fæddist nítján hundruð níutíu og fjögur",
		YearsToText("Ég fæddist 1994", false),
	)
	assert.Equal(t,
		"Árið fjórtán hundruð sextíu og eitt var borgin Sarajevo stofnuð",
		YearsToText("Árið 1461 var borgin Sarajevo stofnuð", false),
	)
	assert.Equal(t,
		"17. júlí tólf hundruð og tíu lést Sverker II",
		YearsToText("17. júlí 1210 lést Sverker II", false),
	)
	assert.Equal(t,
		"tvö þúsund tuttugu og eitt, tvö þúsund og sjö og nítján hundruð níutíu og níu",
		YearsToText("2021, 2007 og 1999", false),
	)
	// Decimals are not years.
	assert.Equal(t, "Það voru 1999,5 stig", YearsToText("Það voru 1999,5 stig", false))
}

func TestNumberToOrdinal(t *testing.T) {
	assert.Equal(t, "núllti", NumberToOrdinal(0, WordOptions{}))
	assert.Equal(t, "tuttugustu og annarri",
		NumberToOrdinal(22, WordOptions{Case: CaseThgf, Gender: GenderKvk}))
	assert.Equal(t, "þrjú hundraðasta og önnur",
		NumberToOrdinal(302, WordOptions{Gender: GenderKvk}))
	assert.Equal(t, "þrjú hundraðasta og öðru",
		NumberToOrdinal(302, WordOptions{Case: CaseThgf, Gender: GenderHk}))
	assert.Equal(t, "mínus þrjú hundraðasta og öðru",
		NumberToOrdinal(-302, WordOptions{Case: CaseThgf, Gender: GenderHk}))
	assert.Equal(t, "tíu þúsund tvö hundruðustu og öðrum",
		NumberToOrdinal(10202, WordOptions{Case: CaseThgf, Gender: GenderHk, Number: NumberFt}))
	assert.Equal(t, "milljónustu",
		NumberToOrdinal(milljon, WordOptions{Case: CaseThf, Gender: GenderKvk, Number: NumberEt}))
	assert.Equal(t, "milljörðustu og aðra",
		NumberToOrdinal(milljardur+2, WordOptions{Case: CaseThf, Gender: GenderKvk, Number: NumberEt}))
}

func TestNumbersToOrdinal(t *testing.T) {
	assert.Equal(t, "Ég lenti í fertugasta og fyrsta sæti.",
		NumbersToOrdinal("Ég lenti í 41. sæti.", WordOptions{Case: CaseThgf}))
	assert.Equal(t, "Ég lenti í mínus fertugasta og fyrsta sæti.",
		NumbersToOrdinal("Ég lenti í -41. sæti.", WordOptions{Case: CaseThgf}))
	assert.Equal(t, "mínus fjórða sæti.",
		NumbersToOrdinal("-4. sæti.", WordOptions{Case: CaseThgf}))
	assert.Equal(t, "annar í röðinni var hæstur.",
		NumbersToOrdinal("2. í röðinni var hæstur.", WordOptions{}))
	assert.Equal(t, "fyrsta konan lenti í 2. sæti.",
		NumbersToOrdinalMatching("1. konan lenti í 2. sæti.",
			mustCompile(t, `1\.`), WordOptions{Gender: GenderKvk}))
	assert.Equal(t, "fyrsta konan lenti í öðru sæti.",
		NumbersToOrdinal("fyrsta konan lenti í 2. sæti.", WordOptions{Gender: GenderHk, Case: CaseThgf}))
	assert.Equal(t, "Ég var tíu þúsund tvö hundraðasti og fyrsti í röðinni.",
		NumbersToOrdinal("Ég var 10201. í röðinni.", WordOptions{}))

	got := NumbersToOrdinal("Björn sækist eftir 1.-4. sæti í Norðvesturkjördæmi", WordOptions{Case: CaseThgf})
	assert.Equal(t,
		"Björn sækist eftir fyrsta til fjórða sæti í Norðvesturkjördæmi",
		strings.ReplaceAll(got, "-", " til "),
	)
}

func TestFloatToText(t *testing.T) {
	assert.Equal(t, "mínus núll komma tólf", FloatToText(-0.12, WordOptions{}))
	assert.Equal(t, "mínus núll komma eitt núll eitt tvö", FloatToText(-0.1012, WordOptions{}))
	assert.Equal(t, "mínus núll komma einn núll einn tveir",
		FloatToText(-0.1012, WordOptions{Gender: GenderKk}))
	assert.Equal(t, "mínus tuttugu og einn komma tólf",
		FloatToText(-21.12, WordOptions{Gender: GenderKk}))
	assert.Equal(t, "mínus tuttugu og einn komma einn tveir þrír",
		FloatToText(-21.123, WordOptions{Gender: GenderKk}))
	assert.Equal(t, "ein komma núll þrjár", FloatToText(1.03, WordOptions{Gender: GenderKvk}))
	assert.Equal(t, "tveimur", FloatToText(2.0, WordOptions{Gender: GenderKvk, Case: CaseThgf}))
	assert.Equal(t, "tveimur komma núll",
		FloatToText(2.0, WordOptions{Gender: GenderKvk, Case: CaseThgf, CommaNull: true}))

	want := "mínus tíu þúsund og eitt hundrað komma tuttugu og eitt"
	assert.Equal(t, want, FloatStringToText("-10.100,21", WordOptions{}))
	assert.Equal(t, want, FloatStringToText("-10100,21", WordOptions{}))
	assert.Equal(t, want, FloatStringToText("-10100.21", WordOptions{}))
}

func TestFloatsToText(t *testing.T) {
	assert.Equal(t, "tveir komma þrettán millilítrar af vökva.",
		FloatsToText("2,13 millilítrar af vökva.", WordOptions{Gender: GenderKk}))
	assert.Equal(t, "núll komma núll fjögur prósent.", FloatsToText("0,04 prósent.", WordOptions{}))
	assert.Equal(t, "mínus núll komma núll fjögur prósent.", FloatsToText("-0,04 prósent.", WordOptions{}))
	assert.Equal(t, "hundrað og eitt komma núll núll tuttugu og eitt prósent.",
		FloatsToText("101,0021 prósent.", WordOptions{}))
	assert.Equal(t, "tíu þúsund og eitt hundrað komma tuttugu og eitt prósent.",
		FloatsToText("10.100,21 prósent.", WordOptions{}))
	assert.Equal(t, "Um mínus tíu þúsund og eitt hundrað komma tuttugu og eitt prósent.",
		FloatsToText("Um -10.100,21 prósent.", WordOptions{}))
	assert.Equal(t, "tvær milljónir.", FloatsToText("2.000.000,00.", WordOptions{}))
}

func TestDigitsToText(t *testing.T) {
	assert.Equal(t, "fimm átta átta fimm fimm tveir tveir", DigitsToText("5885522"))
	assert.Equal(t, "einn einn tveir", DigitsToText("112"))
	assert.Equal(t, "einn tveir þrír-núll sex sjö níu", DigitsToText("123-0679"))
	assert.Equal(t, "Síminn minn er einn tveir þrír fjórir tveir", DigitsToText("Síminn minn er 12342"))
	assert.Equal(t, "fimm átta einn tveir þrír fjórir fimm", DigitsToText("581 2345"))
	assert.Equal(t, "fimm átta einn tveir þrír fjórir sex, það er síminn hjá þeim.",
		DigitsToText("5812346, það er síminn hjá þeim."))
	assert.Equal(t, "núll einn núll tveir sjö núll-tveir núll þrír níu", DigitsToText("010270-2039"))
	assert.Equal(t, "einn níu tveir 0-1-einn tveir sjö",
		DigitsToTextMatching("192 0-1-127", mustCompile(t, `\d\d\d`)))
	assert.Equal(t, "Hringdu í einn átta núll núll-BULL",
		DigitsToTextMatching("Hringdu í 1-800-BULL", mustCompile(t, `\d+-\d+`)))
}

func TestRomanNumeralToOrdinal(t *testing.T) {
	assert.Equal(t, "fyrsti", RomanNumeralToOrdinal("I", WordOptions{Gender: GenderKk}))
	assert.Equal(t, "fjórtándi", RomanNumeralToOrdinal("XIV", WordOptions{Gender: GenderKk}))
	assert.Equal(t, "annar", RomanNumeralToOrdinal("II", WordOptions{Gender: GenderKk}))
}
