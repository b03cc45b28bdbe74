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

package rotor

import (
	"encoding/json"

	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"gopkg.in/yaml.v3"
)

// Spec describes a wheel as it comes out of the box: its wiring and its
// notch, before a position or ring setting is chosen. Catalog entries are
// Specs; a Spec without a Name describes a custom wheel.
type Spec struct {
	Name   string          `json:"name,omitempty" yaml:"name,omitempty"`
	Wiring alphabet.Wiring `json:"wiring" yaml:"wiring"`
	Notch  alphabet.Letter `json:"notch" yaml:"notch"`
}

// Build returns a rotor for this wheel set to the given position and ring
// setting.
func (s Spec) Build(position, ringSetting alphabet.Letter) (*Rotor, error) {
	return New(s.Wiring, position, ringSetting, s.Notch)
}

// Validate checks the wiring and the notch.
func (s Spec) Validate() error {
	if err := s.Wiring.Validate(); err != nil {
		return err
	}
	return s.Notch.Check("Spec.Notch")
}

// String returns the name, or the wiring for an unnamed wheel.
func (s Spec) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Wiring.String()
}

// Redacted keeps catalog names and hides custom wirings.
func (s Spec) Redacted() string {
	if s.Name != "" {
		return "Spec{" + s.Name + "}"
	}
	return "Spec{[REDACTED]}"
}

// TypeName returns "Spec".
func (s Spec) TypeName() string {
	return "Spec"
}

// IsZero reports whether nothing is set.
func (s Spec) IsZero() bool {
	return s.Name == "" && s.Wiring.IsZero() && s.Notch.IsZero()
}

// Equal compares wiring and notch. Names are labels and are ignored.
func (s Spec) Equal(other Spec) bool {
	return s.Wiring == other.Wiring && s.Notch == other.Notch
}

// MarshalJSON implements json.Marshaler.
func (s Spec) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	type alias Spec
	return json.Marshal(alias(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Spec) UnmarshalJSON(data []byte) error {
	type alias Spec
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if err := Spec(a).Validate(); err != nil {
		return err
	}
	*s = Spec(a)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Spec) MarshalYAML() (any, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	type alias Spec
	return alias(s), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	type alias Spec
	var a alias
	if err := node.Decode(&a); err != nil {
		return err
	}
	if err := Spec(a).Validate(); err != nil {
		return err
	}
	*s = Spec(a)
	return nil
}

var _ model.Model = (*Spec)(nil)
var _ model.Value = Spec{}
var _ model.Comparable[Spec] = Spec{}
