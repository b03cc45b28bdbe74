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

// Package machine composes rotors, a reflector and a plugboard into the
// three-rotor cipher machine.
//
// A Machine is driven one keypress at a time. Each keypress first steps the
// rotors and then carries the letter through nine fixed stages: plugboard,
// right, middle and left rotor forward, reflector, left, middle and right
// rotor backward, plugboard. Because the plugboard and the reflector are
// involutions and every rotor's backward transform inverts its forward
// transform, two machines started from the same settings invert each
// other's output.
//
// A Machine is not safe for concurrent use. Distinct machines share no
// mutable state and may run in parallel.
package machine

import (
	"fmt"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/dxcore/model/reflector"
	"dirpx.dev/dxenigma/dxcore/model/rotor"
)

// Machine is a three-rotor cipher machine.
type Machine struct {
	left   *rotor.Rotor
	middle *rotor.Rotor
	right  *rotor.Rotor

	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
}

// Assemble builds a machine from already constructed parts. The rotors are
// copied, so the caller's rotors never move when the machine runs. A nil
// part is a *errors.ConfigurationError.
func Assemble(left, middle, right *rotor.Rotor, r *reflector.Reflector, pb *plugboard.Plugboard) (*Machine, error) {
	parts := []struct {
		field   string
		missing bool
	}{
		{"Left", left == nil},
		{"Middle", middle == nil},
		{"Right", right == nil},
		{"Reflector", r == nil},
		{"Plugboard", pb == nil},
	}
	for _, p := range parts {
		if p.missing {
			return nil, &errors.ConfigurationError{Field: p.field, Reason: "missing"}
		}
	}

	return &Machine{
		left:      left.Clone(),
		middle:    middle.Clone(),
		right:     right.Clone(),
		reflector: r,
		plugboard: pb,
	}, nil
}

// Step advances the rotors as for one keypress without enciphering.
func (m *Machine) Step() {
	Step(m.left, m.middle, m.right)
}

// EncipherChar steps the rotors once and returns the enciphered letter.
// An invalid letter is rejected before the rotors move.
func (m *Machine) EncipherChar(l alphabet.Letter) (alphabet.Letter, error) {
	if err := l.Check("machine.EncipherChar"); err != nil {
		return 0, err
	}
	m.Step()
	return m.signal(l)
}

// EncipherMessage enciphers letters in order, carrying rotor state from
// one letter to the next. The whole message is checked first, so a
// message holding an invalid letter is rejected without moving the rotors.
func (m *Machine) EncipherMessage(letters []alphabet.Letter) ([]alphabet.Letter, error) {
	for i, l := range letters {
		if err := l.Check("machine.EncipherMessage"); err != nil {
			return nil, fmt.Errorf("letter %d: %w", i, err)
		}
	}

	out := make([]alphabet.Letter, len(letters))
	for i, l := range letters {
		m.Step()
		c, err := m.signal(l)
		if err != nil {
			return nil, fmt.Errorf("letter %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// signal carries a checked letter through the nine stages.
func (m *Machine) signal(l alphabet.Letter) (alphabet.Letter, error) {
	stages := [...]func(alphabet.Letter) (alphabet.Letter, error){
		m.plugboard.Apply,
		m.right.Forward,
		m.middle.Forward,
		m.left.Forward,
		m.reflector.Apply,
		m.left.Backward,
		m.middle.Backward,
		m.right.Backward,
		m.plugboard.Apply,
	}

	var err error
	for _, stage := range stages {
		if l, err = stage(l); err != nil {
			return 0, err
		}
	}
	return l, nil
}

// Left returns a snapshot of the left rotor.
func (m *Machine) Left() rotor.State { return m.left.State() }

// Middle returns a snapshot of the middle rotor.
func (m *Machine) Middle() rotor.State { return m.middle.State() }

// Right returns a snapshot of the right rotor.
func (m *Machine) Right() rotor.State { return m.right.State() }

// State returns the three window letters.
func (m *Machine) State() State {
	return State{
		Left:   m.left.Position(),
		Middle: m.middle.Position(),
		Right:  m.right.Position(),
	}
}

// Reflector returns a copy of the reflector wiring.
func (m *Machine) Reflector() alphabet.Wiring {
	return m.reflector.Wiring()
}

// Plugboard returns a copy of the plugboard cables.
func (m *Machine) Plugboard() []plugboard.Pair {
	return m.plugboard.Pairs()
}

// Clone returns an independent machine in the same state. Enciphering with
// the clone leaves m untouched.
func (m *Machine) Clone() *Machine {
	return &Machine{
		left:      m.left.Clone(),
		middle:    m.middle.Clone(),
		right:     m.right.Clone(),
		reflector: m.reflector,
		plugboard: m.plugboard,
	}
}
