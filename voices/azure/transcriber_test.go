// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mideind/Icespeak/transcribe"
)

func TestTranscriberOverrides(t *testing.T) {
	tr := newTranscriber()

	assert.Equal(t, "Býkó", tr.Entity("BYKO"))
	assert.Equal(t, "Djó Bæden", tr.Person("Joe Biden"))
	assert.Contains(t, tr.Spell("b", "", false), "bjé")

	// The default tables are not shared between transcribers
	base := transcribe.New()
	assert.NotEqual(t, "Býkó", base.Entity("BYKO"))
	assert.NotContains(t, base.Spell("b", "", false), "bjé")
}

func TestVoiceMap(t *testing.T) {
	assert.Contains(t, voiceMap, "Gudrun")
	assert.Contains(t, voiceMap, "Gunnar")
	assert.Equal(t, "is-IS", voiceMap["Gudrun"].Lang)
}
