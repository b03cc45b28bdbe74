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
	"sort"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/dxcore/model/reflector"
	"dirpx.dev/dxenigma/dxcore/model/rotor"
)

// Catalog maps wheel and reflector names to their wirings.
//
// A Catalog is read-only once built and may be shared between goroutines.
type Catalog struct {
	rotors     map[string]rotor.Spec
	reflectors map[string]alphabet.Wiring
}

// NewCatalog returns a catalog holding the given wheels and reflectors.
// Every wheel must have a unique name and a valid spec, and every
// reflector wiring must pass reflector.New.
func NewCatalog(rotors []rotor.Spec, reflectors map[string]alphabet.Wiring) (*Catalog, error) {
	c := &Catalog{
		rotors:     make(map[string]rotor.Spec, len(rotors)),
		reflectors: make(map[string]alphabet.Wiring, len(reflectors)),
	}
	for _, spec := range rotors {
		if spec.Name == "" {
			return nil, &errors.ConfigurationError{Field: "Catalog.Rotors", Reason: "wheel without a name"}
		}
		if _, dup := c.rotors[spec.Name]; dup {
			return nil, &errors.ConfigurationError{Field: "Catalog.Rotors", Reason: "duplicate wheel " + spec.Name}
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		c.rotors[spec.Name] = spec
	}
	for name, w := range reflectors {
		if _, err := reflector.New(w); err != nil {
			return nil, err
		}
		c.reflectors[name] = w
	}
	return c, nil
}

// DefaultCatalog returns wheels I to V and reflectors B and C.
//
// Notches are stored in the machine's internal notch convention, which is
// the turnover window letter plus NotchWindowOffset.
func DefaultCatalog() *Catalog {
	wheel := func(name, wiring string, notch alphabet.Letter) rotor.Spec {
		return model.MustValidate(rotor.Spec{Name: name, Wiring: alphabet.MustParseWiring(wiring), Notch: notch})
	}
	c, err := NewCatalog(
		[]rotor.Spec{
			wheel("I", "EKMFLGDQVZNTOWYHXUSPAIBRCJ", 25),
			wheel("II", "AJDKSIRUXBLHWTMCQGZNPYFVOE", 13),
			wheel("III", "BDFHJLCPRTXVZNYEIWGAKMUSQO", 4),
			wheel("IV", "ESOVPZJAYQUIRHXLNFTGKDCMWB", 18),
			wheel("V", "VZBRGITYUPSDNHLXAWMJQOFECK", 8),
		},
		map[string]alphabet.Wiring{
			"B": alphabet.MustParseWiring("YRUHQSLDPXNGOKMIEBFZCWVJAT"),
			"C": alphabet.MustParseWiring("FVPJIAOYEDRZXWGCTKUQSBNMHL"),
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Rotor returns the named wheel. An unknown name is a
// *errors.ConfigurationError.
func (c *Catalog) Rotor(name string) (rotor.Spec, error) {
	spec, ok := c.rotors[name]
	if !ok {
		return rotor.Spec{}, &errors.ConfigurationError{Field: "Rotor", Reason: "unknown wheel " + quote(name)}
	}
	return spec, nil
}

// Reflector returns the named reflector wiring. An unknown name is a
// *errors.ConfigurationError.
func (c *Catalog) Reflector(name string) (alphabet.Wiring, error) {
	w, ok := c.reflectors[name]
	if !ok {
		return alphabet.Wiring{}, &errors.ConfigurationError{Field: "Reflector", Reason: "unknown reflector " + quote(name)}
	}
	return w, nil
}

// RotorNames returns the wheel names in roman-numeral order for the default
// catalog and lexical order otherwise.
func (c *Catalog) RotorNames() []string {
	return sortedNames(c.rotors)
}

// ReflectorNames returns the reflector names in lexical order.
func (c *Catalog) ReflectorNames() []string {
	return sortedNames(c.reflectors)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	rank := func(name string) int {
		for i, r := range romanNumerals {
			if r == name {
				return i + 1
			}
		}
		return 0
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != 0 && rj != 0 {
			return ri < rj
		}
		if (ri != 0) != (rj != 0) {
			return ri != 0
		}
		return names[i] < names[j]
	})
	return names
}

func quote(s string) string {
	return `"` + s + `"`
}
