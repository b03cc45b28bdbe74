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

// Package alphabet implements the letter-index convention shared by every
// dxenigma component: the 26 letters A..Z are the integers 1..26, and all
// arithmetic on them is modulo 26 with that offset baked in.
//
// Two rules hold throughout the module. First, a Letter outside [1,26] is
// never clamped or wrapped on the way in: public operations reject it with a
// *errors.LetterError (matching errors.ErrInvalidLetter). Second, every
// modular reduction goes through FloorMod, whose result is never negative,
// because intermediate offsets such as "position minus ring setting" are
// routinely negative and Go's % operator keeps the sign of the dividend.
package alphabet

import (
	"encoding/json"
	"strconv"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Size is the number of letters in the machine alphabet.
const Size = 26

// Letter is a machine letter in the 1-based convention: 1 is A and 26 is Z.
//
// The zero value is not a letter. It is used by optional settings to mean
// "not given" and is rejected by Validate.
type Letter int

// The 26 letters of the machine alphabet.
const (
	A Letter = iota + 1
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
)

// FloorMod returns a modulo n reduced into [0, n), also for negative a.
//
//	FloorMod(-4, 26) == 22
//	FloorMod(30, 26) == 4
func FloorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// FromIndex returns the letter at 0-based index i, reducing i with
// FloorMod first. FromIndex(0) is A, FromIndex(-1) is Z.
func FromIndex(i int) Letter {
	return Letter(FloorMod(i, Size) + 1)
}

// FromRune converts 'A'..'Z' or 'a'..'z' to a Letter.
func FromRune(r rune) (Letter, error) {
	switch {
	case r >= 'A' && r <= 'Z':
		return Letter(r-'A') + A, nil
	case r >= 'a' && r <= 'z':
		return Letter(r-'a') + A, nil
	default:
		return 0, &errors.ParseError{Type: "Letter", Value: string(r)}
	}
}

// ParseLetter parses a single letter ("Q", "q") or its 1-based number
// ("17"). Surrounding whitespace is ignored.
func ParseLetter(s string) (Letter, error) {
	t := strings.TrimSpace(s)
	if len(t) == 1 {
		if l, err := FromRune(rune(t[0])); err == nil {
			return l, nil
		}
	}
	n, err := strconv.Atoi(t)
	if err != nil || !Letter(n).Valid() {
		return 0, &errors.ParseError{Type: "Letter", Value: s}
	}
	return Letter(n), nil
}

// ParseLetters parses a string made only of the letters A..Z (either case)
// into a slice of Letters. Any other character is a *errors.ParseError; use
// a lenient adapter when the input is free text.
func ParseLetters(s string) ([]Letter, error) {
	out := make([]Letter, 0, len(s))
	for _, r := range s {
		l, err := FromRune(r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// FormatLetters renders letters as an upper-case string. Invalid entries
// are rendered as '?'.
func FormatLetters(letters []Letter) string {
	var b strings.Builder
	b.Grow(len(letters))
	for _, l := range letters {
		b.WriteRune(l.Rune())
	}
	return b.String()
}

// Valid reports whether l is in [1,26].
func (l Letter) Valid() bool {
	return l >= A && l <= Z
}

// Check returns nil when l is valid and a *errors.LetterError naming op
// otherwise. Every component calls it on entry.
func (l Letter) Check(op string) error {
	if l.Valid() {
		return nil
	}
	return &errors.LetterError{Op: op, Value: int(l)}
}

// Index returns the 0-based index of l (A is 0).
func (l Letter) Index() int {
	return int(l) - 1
}

// Shift returns the letter n places after l, wrapping around the alphabet
// in both directions. l.Shift(-1) of A is Z.
func (l Letter) Shift(n int) Letter {
	return FromIndex(l.Index() + n)
}

// Rune returns 'A'..'Z' for a valid letter and '?' otherwise.
func (l Letter) Rune() rune {
	if !l.Valid() {
		return '?'
	}
	return 'A' + rune(l.Index())
}

// String returns the letter as a one-character string, or "?" when l is
// not valid.
func (l Letter) String() string {
	return string(l.Rune())
}

// Redacted returns "*". A single letter may be part of a key (a start
// position or ring setting), so it is never logged.
func (l Letter) Redacted() string {
	return "*"
}

// TypeName returns "Letter".
func (l Letter) TypeName() string {
	return "Letter"
}

// IsZero reports whether l is the unset value 0.
func (l Letter) IsZero() bool {
	return l == 0
}

// Equal reports whether other is a Letter or *Letter with the same value.
func (l Letter) Equal(other any) bool {
	switch v := other.(type) {
	case Letter:
		return l == v
	case *Letter:
		return v != nil && l == *v
	default:
		return false
	}
}

// Validate returns a *errors.LetterError when l is outside [1,26].
func (l Letter) Validate() error {
	return l.Check("Letter")
}

// MarshalJSON encodes a valid letter as a one-character JSON string
// ("A"). An invalid letter is a *errors.MarshalError.
func (l Letter) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, &errors.MarshalError{Type: "Letter", Value: int(l)}
	}
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string understood by ParseLetter ("A", "1")
// or a JSON number in 1..26.
func (l *Letter) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Letter", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &errors.UnmarshalError{Type: "Letter", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseLetter(s)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return &errors.UnmarshalError{Type: "Letter", Data: data, Reason: err.Error()}
	}
	if !Letter(n).Valid() {
		return &errors.UnmarshalError{Type: "Letter", Data: data, Reason: "number out of range 1..26"}
	}
	*l = Letter(n)
	return nil
}

// MarshalYAML encodes a valid letter as a one-character scalar.
func (l Letter) MarshalYAML() (any, error) {
	if !l.Valid() {
		return nil, &errors.MarshalError{Type: "Letter", Value: int(l)}
	}
	return l.String(), nil
}

// UnmarshalYAML accepts any scalar understood by ParseLetter, so both
// "position: Q" and "position: 17" decode to Q.
func (l *Letter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &errors.UnmarshalError{Type: "Letter", Data: []byte(node.Value), Reason: "want a scalar"}
	}
	parsed, err := ParseLetter(node.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Letter) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, &errors.MarshalError{Type: "Letter", Value: int(l)}
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseLetter.
func (l *Letter) UnmarshalText(text []byte) error {
	parsed, err := ParseLetter(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Compile-time check that Letter implements model.Model interface.
var _ model.Model = (*Letter)(nil)
