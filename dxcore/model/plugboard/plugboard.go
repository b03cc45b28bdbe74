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

// Package plugboard implements the machine's reciprocal front-panel
// substitution.
//
// A Plugboard is built once from at most MaxPairs disjoint cables and is
// immutable afterwards. Letters not named by any cable map to themselves,
// and applying the board twice always returns the original letter.
package plugboard

import (
	"strconv"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
)

// MaxPairs is the number of cables a board can hold: 13 disjoint pairs
// cover all 26 letters.
const MaxPairs = alphabet.Size / 2

// Plugboard is an immutable involution on the machine alphabet.
type Plugboard struct {
	table alphabet.Wiring
	pairs []Pair
}

// New builds a board from the given cables. It returns a
// *errors.PermutationError when more than MaxPairs cables are given, a
// cable joins a letter to itself, or a letter appears in more than one
// cable, and a *errors.LetterError for an out-of-range letter. With no
// cables the board is the identity.
func New(pairs ...Pair) (*Plugboard, error) {
	if len(pairs) > MaxPairs {
		return nil, &errors.PermutationError{
			Type:   "Plugboard",
			Reason: "too many pairs: " + strconv.Itoa(len(pairs)) + " > " + strconv.Itoa(MaxPairs),
		}
	}

	table := alphabet.Identity()
	var used [alphabet.Size]bool
	for _, p := range pairs {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		for _, l := range [...]alphabet.Letter{p.A, p.B} {
			if used[l.Index()] {
				return nil, &errors.PermutationError{Type: "Plugboard", Reason: "letter in more than one pair", Letter: int(l)}
			}
			used[l.Index()] = true
		}
		table[p.A.Index()] = p.B
		table[p.B.Index()] = p.A
	}

	return &Plugboard{
		table: table,
		pairs: append([]Pair(nil), pairs...),
	}, nil
}

// Apply returns the letter l is cabled to, or l itself.
func (pb *Plugboard) Apply(l alphabet.Letter) (alphabet.Letter, error) {
	if err := l.Check("plugboard.Apply"); err != nil {
		return 0, err
	}
	return pb.table[l.Index()], nil
}

// Pairs returns a copy of the cables in construction order.
func (pb *Plugboard) Pairs() []Pair {
	return append([]Pair(nil), pb.pairs...)
}

// Len returns the number of cables.
func (pb *Plugboard) Len() int {
	return len(pb.pairs)
}

// Wiring returns a copy of the full substitution table.
func (pb *Plugboard) Wiring() alphabet.Wiring {
	return pb.table
}

// String lists the cables, for example "ZT AB". It reveals key material.
func (pb *Plugboard) String() string {
	parts := make([]string, len(pb.pairs))
	for i, p := range pb.pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// Redacted reports only the number of cables.
func (pb *Plugboard) Redacted() string {
	return "Plugboard{" + strconv.Itoa(len(pb.pairs)) + " pairs}"
}
