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

package machine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/dxcore/model/reflector"
	"dirpx.dev/dxenigma/dxcore/model/rotor"
	"dirpx.dev/dxenigma/dxcore/model/semver"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// Settings is a complete machine key: which wheels go where, how they are
// set, which reflector is fitted and how the plugboard is cabled.
//
// A settings document looks like this in YAML:
//
//	version: 1.0.0
//	left:   {name: I,   position: A}
//	middle: {name: II,  position: A}
//	right:  {name: III, position: Z, ring_setting: A}
//	reflector: {name: B}
//	plugboard: [ZT]
type Settings struct {
	Version   semver.Version   `json:"version,omitzero" yaml:"version,omitempty" toml:"version,omitempty"`
	Left      RotorSetting     `json:"left" yaml:"left" toml:"left"`
	Middle    RotorSetting     `json:"middle" yaml:"middle" toml:"middle"`
	Right     RotorSetting     `json:"right" yaml:"right" toml:"right"`
	Reflector ReflectorSetting `json:"reflector" yaml:"reflector" toml:"reflector"`
	Plugboard []plugboard.Pair `json:"plugboard,omitempty" yaml:"plugboard,omitempty" toml:"plugboard,omitempty"`
}

// RotorSetting places one wheel. The wheel is either a catalog Name or an
// inline Wiring; an inline wheel must also give its Notch, while a catalog
// wheel may override it. RingSetting defaults to A.
type RotorSetting struct {
	Name        string           `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Wiring      *alphabet.Wiring `json:"wiring,omitempty" yaml:"wiring,omitempty" toml:"wiring,omitempty"`
	Notch       alphabet.Letter  `json:"notch,omitempty" yaml:"notch,omitempty" toml:"notch,omitzero"`
	Position    alphabet.Letter  `json:"position" yaml:"position" toml:"position"`
	RingSetting alphabet.Letter  `json:"ring_setting,omitempty" yaml:"ring_setting,omitempty" toml:"ring_setting,omitzero"`
}

// ReflectorSetting names a catalog reflector or gives an inline wiring.
type ReflectorSetting struct {
	Name   string           `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Wiring *alphabet.Wiring `json:"wiring,omitempty" yaml:"wiring,omitempty" toml:"wiring,omitempty"`
}

// DefaultSettings returns wheels I, II and III at AAA with rings AAA,
// reflector B and an empty plugboard.
func DefaultSettings() Settings {
	return Settings{
		Version:   semver.Current,
		Left:      RotorSetting{Name: "I", Position: alphabet.A, RingSetting: alphabet.A},
		Middle:    RotorSetting{Name: "II", Position: alphabet.A, RingSetting: alphabet.A},
		Right:     RotorSetting{Name: "III", Position: alphabet.A, RingSetting: alphabet.A},
		Reflector: ReflectorSetting{Name: "B"},
	}
}

// New resolves s against catalog and builds a machine. A nil catalog means
// DefaultCatalog. Nothing is returned unless every part resolves.
func New(s Settings, catalog *Catalog) (*Machine, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := s.Version.CheckCompatible(semver.Current); err != nil {
		return nil, err
	}

	var rotors [3]*rotor.Rotor
	for i, slot := range s.slots() {
		r, err := slot.setting.Build(catalog)
		if err != nil {
			return nil, fmt.Errorf("%s rotor: %w", slot.name, err)
		}
		rotors[i] = r
	}

	refl, err := s.Reflector.Build(catalog)
	if err != nil {
		return nil, fmt.Errorf("reflector: %w", err)
	}

	pb, err := plugboard.New(s.Plugboard...)
	if err != nil {
		return nil, fmt.Errorf("plugboard: %w", err)
	}

	return Assemble(rotors[0], rotors[1], rotors[2], refl, pb)
}

type slot struct {
	name    string
	setting RotorSetting
}

func (s Settings) slots() [3]slot {
	return [3]slot{{"left", s.Left}, {"middle", s.Middle}, {"right", s.Right}}
}

// Order returns the wheel names, with "custom" for inline wheels.
func (s Settings) Order() RotorOrder {
	var o RotorOrder
	for i, sl := range s.slots() {
		o[i] = sl.setting.label()
	}
	return o
}

// Positions returns the start positions.
func (s Settings) Positions() State {
	return State{Left: s.Left.Position, Middle: s.Middle.Position, Right: s.Right.Position}
}

// Rings returns the ring settings, with A for an omitted ring.
func (s Settings) Rings() State {
	return State{Left: s.Left.ring(), Middle: s.Middle.ring(), Right: s.Right.ring()}
}

// WithOrder returns a copy with the wheels replaced by catalog names.
// Positions, rings and notch overrides are kept.
func (s Settings) WithOrder(o RotorOrder) Settings {
	c := s.Clone()
	for i, rs := range [...]*RotorSetting{&c.Left, &c.Middle, &c.Right} {
		rs.Name = o[i]
		rs.Wiring = nil
	}
	return c
}

// WithPositions returns a copy with new start positions.
func (s Settings) WithPositions(p State) Settings {
	c := s.Clone()
	c.Left.Position, c.Middle.Position, c.Right.Position = p.Left, p.Middle, p.Right
	return c
}

// WithRings returns a copy with new ring settings.
func (s Settings) WithRings(r State) Settings {
	c := s.Clone()
	c.Left.RingSetting, c.Middle.RingSetting, c.Right.RingSetting = r.Left, r.Middle, r.Right
	return c
}

// Validate checks every field that can be checked without a catalog and
// reports all failures together.
func (s Settings) Validate() error {
	c := rxmerr.NewCollector()

	if err := s.Version.CheckCompatible(semver.Current); err != nil {
		c.Append(err)
	}
	for _, sl := range s.slots() {
		if err := sl.setting.Validate(); err != nil {
			c.Append(fmt.Errorf("%s rotor: %w", sl.name, err))
		}
	}
	if err := s.Reflector.Validate(); err != nil {
		c.Append(fmt.Errorf("reflector: %w", err))
	}
	if err := model.ValidateAll(s.Plugboard); err != nil {
		c.Append(fmt.Errorf("plugboard: %w", err))
	} else if _, err := plugboard.New(s.Plugboard...); err != nil {
		c.Append(fmt.Errorf("plugboard: %w", err))
	}

	return c.Err()
}

// String shows the full key, for example
// "I II III B positions=AAZ rings=AAA plugboard=ZT".
// It must not be logged; use Redacted.
func (s Settings) String() string {
	pairs := make([]string, len(s.Plugboard))
	for i, p := range s.Plugboard {
		pairs[i] = p.String()
	}
	return s.Order().String() + " " + s.Reflector.label() +
		" positions=" + s.Positions().String() +
		" rings=" + s.Rings().String() +
		" plugboard=" + strings.Join(pairs, ",")
}

// Redacted keeps only the schema version and the number of cables.
func (s Settings) Redacted() string {
	return "Settings{version=" + s.Version.OrCurrent().String() +
		" plugboard=" + strconv.Itoa(len(s.Plugboard)) + " pairs}"
}

// TypeName returns "Settings".
func (s Settings) TypeName() string {
	return "Settings"
}

// IsZero reports whether nothing is set.
func (s Settings) IsZero() bool {
	return s.Version.IsZero() &&
		s.Left.IsZero() && s.Middle.IsZero() && s.Right.IsZero() &&
		s.Reflector.IsZero() && len(s.Plugboard) == 0
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	c := s
	c.Left = s.Left.clone()
	c.Middle = s.Middle.clone()
	c.Right = s.Right.clone()
	c.Reflector.Wiring = cloneWiring(s.Reflector.Wiring)
	if s.Plugboard != nil {
		c.Plugboard = append([]plugboard.Pair(nil), s.Plugboard...)
	}
	return c
}

// MarshalJSON implements json.Marshaler.
func (s Settings) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	type alias Settings
	return json.Marshal(alias(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type alias Settings
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if err := Settings(a).Validate(); err != nil {
		return err
	}
	*s = Settings(a)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Settings) MarshalYAML() (any, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	type alias Settings
	return alias(s), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	type alias Settings
	var a alias
	if err := node.Decode(&a); err != nil {
		return err
	}
	if err := Settings(a).Validate(); err != nil {
		return err
	}
	*s = Settings(a)
	return nil
}

var _ model.Model = (*Settings)(nil)
var _ model.Value = Settings{}
var _ model.Cloneable[Settings] = Settings{}

// Validate checks the wheel choice and the letters.
func (r RotorSetting) Validate() error {
	switch {
	case r.Name == "" && r.Wiring == nil:
		return &errors.ConfigurationError{Field: "Name", Reason: "give a wheel name or a wiring"}
	case r.Name != "" && r.Wiring != nil:
		return &errors.ConfigurationError{Field: "Wiring", Reason: "give a wheel name or a wiring, not both"}
	case r.Wiring != nil:
		if err := r.Wiring.Validate(); err != nil {
			return err
		}
		if r.Notch.IsZero() {
			return &errors.ConfigurationError{Field: "Notch", Reason: "an inline wiring needs a notch"}
		}
	}
	if !r.Notch.IsZero() {
		if err := r.Notch.Check("RotorSetting.Notch"); err != nil {
			return err
		}
	}
	if err := r.Position.Check("RotorSetting.Position"); err != nil {
		return err
	}
	return r.ring().Check("RotorSetting.RingSetting")
}

// Spec resolves the wheel: the catalog entry for a name, or an unnamed
// spec for an inline wiring. A notch override replaces the catalog notch.
func (r RotorSetting) Spec(catalog *Catalog) (rotor.Spec, error) {
	if err := r.Validate(); err != nil {
		return rotor.Spec{}, err
	}
	if r.Wiring != nil {
		return rotor.Spec{Wiring: *r.Wiring, Notch: r.Notch}, nil
	}
	spec, err := catalog.Rotor(r.Name)
	if err != nil {
		return rotor.Spec{}, err
	}
	if !r.Notch.IsZero() {
		spec.Notch = r.Notch
	}
	return spec, nil
}

// Build resolves the wheel and sets it to the configured position and
// ring.
func (r RotorSetting) Build(catalog *Catalog) (*rotor.Rotor, error) {
	spec, err := r.Spec(catalog)
	if err != nil {
		return nil, err
	}
	return spec.Build(r.Position, r.ring())
}

// IsZero reports whether nothing is set.
func (r RotorSetting) IsZero() bool {
	return r.Name == "" && r.Wiring == nil && r.Notch == 0 && r.Position == 0 && r.RingSetting == 0
}

func (r RotorSetting) ring() alphabet.Letter {
	if r.RingSetting.IsZero() {
		return alphabet.A
	}
	return r.RingSetting
}

func (r RotorSetting) label() string {
	if r.Wiring != nil {
		return "custom"
	}
	return r.Name
}

func (r RotorSetting) clone() RotorSetting {
	r.Wiring = cloneWiring(r.Wiring)
	return r
}

// Validate checks that exactly one of Name and Wiring is given, and that
// an inline wiring is a valid reflector.
func (r ReflectorSetting) Validate() error {
	switch {
	case r.Name == "" && r.Wiring == nil:
		return &errors.ConfigurationError{Field: "Name", Reason: "give a reflector name or a wiring"}
	case r.Name != "" && r.Wiring != nil:
		return &errors.ConfigurationError{Field: "Wiring", Reason: "give a reflector name or a wiring, not both"}
	case r.Wiring != nil:
		_, err := reflector.New(*r.Wiring)
		return err
	}
	return nil
}

// Build resolves and builds the reflector.
func (r ReflectorSetting) Build(catalog *Catalog) (*reflector.Reflector, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Wiring != nil {
		return reflector.New(*r.Wiring)
	}
	w, err := catalog.Reflector(r.Name)
	if err != nil {
		return nil, err
	}
	return reflector.New(w)
}

// IsZero reports whether nothing is set.
func (r ReflectorSetting) IsZero() bool {
	return r.Name == "" && r.Wiring == nil
}

func (r ReflectorSetting) label() string {
	if r.Wiring != nil {
		return "custom"
	}
	return r.Name
}

func cloneWiring(w *alphabet.Wiring) *alphabet.Wiring {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}
