// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package utils

import (
	"fmt"
	"strconv"
)

// Option is a loosely typed bag of per-request or per-component options.
// Values typically originate from markup attributes or configuration and
// are therefore strings more often than not; the typed getters coerce.
type Option map[string]interface{}

// GetString returns the option under key as a string.
func (o Option) GetString(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", fmt.Errorf("option %q not set", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// GetBool returns the option under key as a bool. String values "True",
// "true" and "1" count as true, mirroring attribute parsing.
func (o Option) GetBool(key string) (bool, error) {
	v, ok := o[key]
	if !ok {
		return false, fmt.Errorf("option %q not set", key)
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return b == "True" || b == "true" || b == "1", nil
	default:
		return false, fmt.Errorf("option %q is not a bool", key)
	}
}

// GetUint64 returns the option under key as a uint64.
func (o Option) GetUint64(key string) (uint64, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("option %q not set", key)
	}
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int:
		return uint64(n), nil
	case string:
		return strconv.ParseUint(n, 10, 64)
	default:
		return 0, fmt.Errorf("option %q is not an unsigned integer", key)
	}
}

// GetFloat64 returns the option under key as a float64.
func (o Option) GetFloat64(key string) (float64, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("option %q not set", key)
	}
	switch f := v.(type) {
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	case string:
		return strconv.ParseFloat(f, 64)
	default:
		return 0, fmt.Errorf("option %q is not a float", key)
	}
}
