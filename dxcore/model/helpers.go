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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates every value in models and returns all failures
// combined into one error, or nil when every value is valid.
//
// Each failure is prefixed with the element's index and type name, for
// example "model[2] (Pair): dxenigma: invalid Plugboard permutation: ...".
// Processing never stops at the first failure.
//
// Example:
//
//	if err := model.ValidateAll(pairs); err != nil {
//	    return fmt.Errorf("plugboard: %w", err)
//	}
func ValidateAll[T Value](models []T) error {
	c := rxmerr.NewCollector()
	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}
	return c.Err()
}

// MustValidate returns m when it is valid and panics otherwise.
//
// It is meant for tables built from constants, such as the rotor catalog,
// where an invalid entry is a programming error.
func MustValidate[T Value](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns m.Redacted(), or m.String() when unsafe is true.
//
//	logger.Info("settings loaded", zap.String("settings", model.SafeString(s, false)))
func SafeString[T Value](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and encodes it as JSON.
func ToJSON[T Value](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and encodes it as YAML.
func ToYAML[T Value](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes data into m and validates the result. On error the
// content of m MUST NOT be used.
//
//	var s machine.Settings
//	err := model.FromJSON(data, &s)
func FromJSON[T any, PT Decodable[T]](data []byte, m PT) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", m.TypeName(), err)
	}
	return nil
}

// FromYAML decodes data into m and validates the result. On error the
// content of m MUST NOT be used.
func FromYAML[T any, PT Decodable[T]](data []byte, m PT) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", m.TypeName(), err)
	}
	return nil
}
