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

package plugboard

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"gopkg.in/yaml.v3"
)

// Pair is one plugboard cable: it swaps A and B in both directions.
//
// In settings documents a pair is written as two adjacent letters, so the
// cable joining Z and T is "ZT".
type Pair struct {
	A alphabet.Letter
	B alphabet.Letter
}

// ParsePair parses a two-letter pair such as "ZT" or "zt".
func ParsePair(s string) (Pair, error) {
	t := strings.TrimSpace(s)
	if len(t) != 2 {
		return Pair{}, &errors.ParseError{Type: "Pair", Value: s}
	}
	a, errA := alphabet.FromRune(rune(t[0]))
	b, errB := alphabet.FromRune(rune(t[1]))
	if errA != nil || errB != nil {
		return Pair{}, &errors.ParseError{Type: "Pair", Value: s}
	}
	p := Pair{A: a, B: b}
	if err := p.Validate(); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// ParsePairs parses a list of pairs separated by spaces or commas, for
// example "ZT AB" or "ZT,AB". An empty string yields no pairs.
func ParsePairs(s string) ([]Pair, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	pairs := make([]Pair, 0, len(fields))
	for _, f := range fields {
		p, err := ParsePair(f)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// Validate checks that both ends are letters and that they differ.
func (p Pair) Validate() error {
	if err := p.A.Check("Pair.A"); err != nil {
		return err
	}
	if err := p.B.Check("Pair.B"); err != nil {
		return err
	}
	if p.A == p.B {
		return &errors.PermutationError{Type: "Plugboard", Reason: "pair joins a letter to itself", Letter: int(p.A)}
	}
	return nil
}

// String returns the two-letter form, for example "ZT".
func (p Pair) String() string {
	return p.A.String() + p.B.String()
}

// Redacted hides both letters; plugboard pairs are key material.
func (p Pair) Redacted() string {
	return "**"
}

// TypeName returns "Pair".
func (p Pair) TypeName() string {
	return "Pair"
}

// IsZero reports whether neither end is set.
func (p Pair) IsZero() bool {
	return p.A == 0 && p.B == 0
}

// Equal reports whether both pairs join the same two letters. "ZT" and
// "TZ" are the same cable.
func (p Pair) Equal(other Pair) bool {
	return (p.A == other.A && p.B == other.B) || (p.A == other.B && p.B == other.A)
}

// MarshalJSON encodes the pair as its two-letter string.
func (p Pair) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a two-letter string.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Pair", Data: data, Reason: err.Error()}
	}
	parsed, err := ParsePair(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the pair as its two-letter string.
func (p Pair) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.String(), nil
}

// UnmarshalYAML decodes a two-letter scalar.
func (p *Pair) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &errors.UnmarshalError{Type: "Pair", Data: []byte(node.Value), Reason: "want a two-letter string"}
	}
	parsed, err := ParsePair(node.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Pair) MarshalText() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pair) UnmarshalText(text []byte) error {
	parsed, err := ParsePair(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

var _ model.Model = (*Pair)(nil)
var _ model.Value = Pair{}
var _ model.Comparable[Pair] = Pair{}
