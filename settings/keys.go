// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mideind/Icespeak/pkg/commons"
)

// AWSPollyKey is the format of an API key file for AWS Polly.
type AWSPollyKey struct {
	AccessKeyID     string `json:"aws_access_key_id"`
	SecretAccessKey string `json:"aws_secret_access_key"`
	RegionName      string `json:"region_name"`
}

// AzureKey is the format of an API key file for Azure.
type AzureKey struct {
	Key    string `json:"key"`
	Region string `json:"region"`
}

// OpenAIKey is the format of an API key file for OpenAI.
type OpenAIKey struct {
	APIKey string `json:"api_key"`
}

// Keys contains API credentials for the supported services. A nil field
// means the corresponding service is unavailable.
type Keys struct {
	AWS    *AWSPollyKey
	Azure  *AzureKey
	OpenAI *OpenAIKey
	// Google holds the raw service account JSON, passed verbatim to the
	// Google client library.
	Google []byte
}

// LoadKeys reads all per-provider key files from the keys directory.
// Missing or malformed key files are logged and skipped: the voices of
// an unconfigured service are simply not registered.
func LoadKeys(s *Settings, logger commons.Logger) *Keys {
	keys := &Keys{}

	info, err := os.Stat(s.KeysDir)
	if err != nil || !info.IsDir() {
		logger.Warnf("keys directory %q missing or incorrect, TTS will not work", s.KeysDir)
		return keys
	}

	if raw, err := readKeyFile(s.KeysDir, s.AWSPollyKeyFilename); err != nil {
		logger.Warnf("could not load AWS Polly API key, TTS with AWS Polly will not work: %v", err)
	} else {
		var k AWSPollyKey
		if err := json.Unmarshal(raw, &k); err != nil {
			logger.Warnf("malformed AWS Polly API key file: %v", err)
		} else {
			keys.AWS = &k
		}
	}

	if raw, err := readKeyFile(s.KeysDir, s.AzureKeyFilename); err != nil {
		logger.Warnf("could not load Azure API key, TTS with Azure will not work: %v", err)
	} else {
		var k AzureKey
		if err := json.Unmarshal(raw, &k); err != nil {
			logger.Warnf("malformed Azure API key file: %v", err)
		} else {
			keys.Azure = &k
		}
	}

	if raw, err := readKeyFile(s.KeysDir, s.OpenAIKeyFilename); err != nil {
		logger.Warnf("could not load OpenAI API key, TTS with OpenAI will not work: %v", err)
	} else {
		var k OpenAIKey
		if err := json.Unmarshal(raw, &k); err != nil {
			logger.Warnf("malformed OpenAI API key file: %v", err)
		} else {
			keys.OpenAI = &k
		}
	}

	if raw, err := readKeyFile(s.KeysDir, s.GoogleKeyFilename); err != nil {
		logger.Warnf("could not load Google API key, TTS with Google will not work: %v", err)
	} else if !json.Valid(raw) {
		logger.Warnf("malformed Google service account file %q", s.GoogleKeyFilename)
	} else {
		keys.Google = raw
	}

	return keys
}

func readKeyFile(dir, name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading key file %q: %w", name, err)
	}
	return raw, nil
}
