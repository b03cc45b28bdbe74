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

package alphabet

import (
	"encoding/json"
	"strconv"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Wiring is a substitution table over the machine alphabet. Entry i holds
// the letter that letter i+1 is wired to, so the wiring
// "EKMFLGDQVZNTOWYHXUSPAIBRCJ" maps A to E and B to K.
//
// A Wiring is a plain array and is always copied by value. Rotors,
// reflectors and plugboards keep their own copy, so a Wiring handed to a
// constructor can be reused or modified afterwards without effect.
type Wiring [Size]Letter

// Identity returns the wiring that maps every letter to itself.
func Identity() Wiring {
	var w Wiring
	for i := range w {
		w[i] = FromIndex(i)
	}
	return w
}

// ParseWiring parses 26 letters (either case, surrounding whitespace
// ignored) and validates that they form a permutation.
func ParseWiring(s string) (Wiring, error) {
	var w Wiring
	t := strings.TrimSpace(s)
	if len(t) != Size {
		return w, &errors.ParseError{Type: "Wiring", Value: s}
	}
	for i, r := range t {
		l, err := FromRune(r)
		if err != nil {
			return Wiring{}, &errors.ParseError{Type: "Wiring", Value: s}
		}
		w[i] = l
	}
	if err := w.Validate(); err != nil {
		return Wiring{}, err
	}
	return w, nil
}

// MustParseWiring is like ParseWiring but panics on error. It is meant for
// package-level tables.
func MustParseWiring(s string) Wiring {
	w, err := ParseWiring(s)
	if err != nil {
		panic(err)
	}
	return w
}

// WiringFromInts builds a wiring from 26 integers in the 1-based letter
// convention and validates it.
func WiringFromInts(values []int) (Wiring, error) {
	var w Wiring
	if len(values) != Size {
		return w, &errors.PermutationError{
			Type:   "Wiring",
			Reason: "want " + strconv.Itoa(Size) + " entries, got " + strconv.Itoa(len(values)),
		}
	}
	for i, v := range values {
		w[i] = Letter(v)
	}
	if err := w.Validate(); err != nil {
		return Wiring{}, err
	}
	return w, nil
}

// Validate returns a *errors.LetterError for the first entry outside
// [1,26] and a *errors.PermutationError for the first letter that appears
// twice.
func (w Wiring) Validate() error {
	var seen [Size]bool
	for _, l := range w {
		if err := l.Check("Wiring"); err != nil {
			return err
		}
		if seen[l.Index()] {
			return &errors.PermutationError{Type: "Wiring", Reason: "duplicate entry", Letter: int(l)}
		}
		seen[l.Index()] = true
	}
	return nil
}

// At returns the entry at 0-based index i, reducing i with FloorMod.
// It never fails, which makes it the lookup used on the signal path
// after the input letter has been range checked.
func (w Wiring) At(i int) Letter {
	return w[FloorMod(i, Size)]
}

// Map returns the letter l is wired to.
func (w Wiring) Map(l Letter) (Letter, error) {
	if err := l.Check("Wiring.Map"); err != nil {
		return 0, err
	}
	return w[l.Index()], nil
}

// Inverse returns the inverse table: if w maps a to b, the inverse maps b
// to a. The result is only meaningful for a valid permutation.
func (w Wiring) Inverse() Wiring {
	var inv Wiring
	for i, l := range w {
		if l.Valid() {
			inv[l.Index()] = FromIndex(i)
		}
	}
	return inv
}

// IsInvolution reports whether applying w twice returns every letter to
// itself.
func (w Wiring) IsInvolution() bool {
	for i, l := range w {
		if !l.Valid() || w[l.Index()] != FromIndex(i) {
			return false
		}
	}
	return true
}

// FixedPoints returns the letters that w maps to themselves, in order.
func (w Wiring) FixedPoints() []Letter {
	var out []Letter
	for i, l := range w {
		if l == FromIndex(i) {
			out = append(out, l)
		}
	}
	return out
}

// String returns the 26-letter form, for example
// "EKMFLGDQVZNTOWYHXUSPAIBRCJ".
func (w Wiring) String() string {
	return FormatLetters(w[:])
}

// Redacted hides the table. Catalog wirings are public, but an inline
// wiring in a settings document may be part of the key.
func (w Wiring) Redacted() string {
	return "Wiring{[REDACTED]}"
}

// TypeName returns "Wiring".
func (w Wiring) TypeName() string {
	return "Wiring"
}

// IsZero reports whether no entry is set.
func (w Wiring) IsZero() bool {
	return w == Wiring{}
}

// Equal reports whether both tables are identical.
func (w Wiring) Equal(other Wiring) bool {
	return w == other
}

// MarshalJSON encodes a valid wiring as its 26-letter string.
func (w Wiring) MarshalJSON() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts either the 26-letter string form or an array of 26
// integers in 1..26.
func (w *Wiring) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return &errors.UnmarshalError{Type: "Wiring", Data: data, Reason: "empty data"}
	}

	if trimmed[0] == '[' {
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return &errors.UnmarshalError{Type: "Wiring", Data: data, Reason: err.Error()}
		}
		parsed, err := WiringFromInts(values)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Wiring", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseWiring(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalYAML encodes a valid wiring as its 26-letter string.
func (w Wiring) MarshalYAML() (any, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w.String(), nil
}

// UnmarshalYAML accepts a scalar (26-letter string) or a sequence of 26
// integers.
func (w *Wiring) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var values []int
		if err := node.Decode(&values); err != nil {
			return &errors.UnmarshalError{Type: "Wiring", Data: []byte(node.Value), Reason: err.Error()}
		}
		parsed, err := WiringFromInts(values)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseWiring(node.Value)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	default:
		return &errors.UnmarshalError{Type: "Wiring", Data: []byte(node.Value), Reason: "want a string or a list of 26 integers"}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Wiring) MarshalText() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseWiring.
func (w *Wiring) UnmarshalText(text []byte) error {
	parsed, err := ParseWiring(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Compile-time checks that Wiring implements the model contracts.
var _ model.Model = (*Wiring)(nil)
var _ model.Comparable[Wiring] = Wiring{}
