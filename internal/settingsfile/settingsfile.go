/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package settingsfile reads and writes machine settings documents.
//
// The format follows the file extension: .yaml and .yml use
// gopkg.in/yaml.v3, .json uses encoding/json, .toml uses
// github.com/BurntSushi/toml. Every document is validated on the way in and
// on the way out, so a document that loads without error always builds a
// machine against a catalog that knows its wheel names.
package settingsfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/machine"
	"dirpx.dev/dxenigma/dxcore/model"
	"github.com/BurntSushi/toml"
)

// Format is a settings document encoding.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	JSON Format = "json"
	TOML Format = "toml"
)

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return "", &errors.ParseError{Type: "Format", Value: filepath.Ext(path)}
	}
}

// Load reads and validates the settings document at path.
func Load(path string) (machine.Settings, error) {
	format, err := FormatOf(path)
	if err != nil {
		return machine.Settings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return machine.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return machine.Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses and validates a document.
func Decode(data []byte, format Format) (machine.Settings, error) {
	var s machine.Settings

	switch format {
	case YAML:
		if err := model.FromYAML(data, &s); err != nil {
			return machine.Settings{}, err
		}
	case JSON:
		if err := model.FromJSON(data, &s); err != nil {
			return machine.Settings{}, err
		}
	case TOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return machine.Settings{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return machine.Settings{}, &errors.ValidationError{
				Type:   "Settings",
				Field:  undecoded[0].String(),
				Reason: "unknown field",
			}
		}
		if err := s.Validate(); err != nil {
			return machine.Settings{}, err
		}
	default:
		return machine.Settings{}, &errors.ParseError{Type: "Format", Value: string(format)}
	}

	return s, nil
}

// Encode renders a validated document.
func Encode(s machine.Settings, format Format) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch format {
	case YAML:
		return model.ToYAML(s)
	case JSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, &errors.ParseError{Type: "Format", Value: string(format)}
	}
}

// Save writes s to path in the format of its extension.
func Save(path string, s machine.Settings) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(s, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
