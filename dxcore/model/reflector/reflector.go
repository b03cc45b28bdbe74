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

// Package reflector implements the fixed turnaround wheel that sends the
// signal back through the rotor stack.
package reflector

import (
	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
)

// Reflector is an immutable fixed-point-free involution.
type Reflector struct {
	table alphabet.Wiring
}

// New validates w and returns a reflector over a copy of it. The wiring
// must be a permutation, an involution, and must not map any letter to
// itself; each violation is a *errors.PermutationError.
func New(w alphabet.Wiring) (*Reflector, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	for i, l := range w {
		if w[l.Index()] != alphabet.FromIndex(i) {
			return nil, &errors.PermutationError{Type: "Reflector", Reason: "not an involution", Letter: i + 1}
		}
	}
	if fixed := w.FixedPoints(); len(fixed) > 0 {
		return nil, &errors.PermutationError{Type: "Reflector", Reason: "letter maps to itself", Letter: int(fixed[0])}
	}
	return &Reflector{table: w}, nil
}

// Apply returns the letter l is reflected to.
func (r *Reflector) Apply(l alphabet.Letter) (alphabet.Letter, error) {
	if err := l.Check("reflector.Apply"); err != nil {
		return 0, err
	}
	return r.table[l.Index()], nil
}

// Wiring returns a copy of the table.
func (r *Reflector) Wiring() alphabet.Wiring {
	return r.table
}
