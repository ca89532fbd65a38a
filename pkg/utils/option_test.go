// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionGetString(t *testing.T) {
	o := Option{"case": "þgf", "count": 3}

	v, err := o.GetString("case")
	require.NoError(t, err)
	assert.Equal(t, "þgf", v)

	v, err = o.GetString("count")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = o.GetString("missing")
	assert.Error(t, err)
}

func TestOptionGetBool(t *testing.T) {
	o := Option{"a": true, "b": "True", "c": "1", "d": "false", "e": 3.5}

	for _, key := range []string{"a", "b", "c"} {
		v, err := o.GetBool(key)
		require.NoError(t, err)
		assert.True(t, v, "key=%s", key)
	}

	v, err := o.GetBool("d")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = o.GetBool("e")
	assert.Error(t, err)
	_, err = o.GetBool("missing")
	assert.Error(t, err)
}

func TestOptionGetNumeric(t *testing.T) {
	o := Option{"n": "42", "f": "1.5", "i": 7}

	n, err := o.GetUint64("n")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)

	n, err = o.GetUint64("i")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n)

	f, err := o.GetFloat64("f")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	_, err = o.GetUint64("f")
	assert.Error(t, err)
}
