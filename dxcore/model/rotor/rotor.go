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

// Package rotor implements a single cipher wheel: its wiring, its mutable
// position, its ring setting and its stepping notch.
//
// The signal transforms are pure functions of the current position and ring
// setting. Forward carries a letter from the static entry side across the
// wiring, Backward carries it the other way, and for every letter, position
// and ring setting the two are exact inverses. Both transforms reduce every
// intermediate offset with alphabet.FloorMod, so negative offsets such as
// position A with ring setting F are handled without special cases.
//
// A Rotor belongs to exactly one machine. It is not safe for concurrent use.
package rotor

import (
	"strings"

	"dirpx.dev/dxenigma/dxcore/model/alphabet"
)

// NotchWindowOffset calibrates a notch index against the letter shown in
// the position window: the window letter at which a rotor trips its left
// neighbour is FloorMod(notch + ringSetting - 1 - NotchWindowOffset, 26).
const NotchWindowOffset = 8

// Rotor is one wheel of the machine.
type Rotor struct {
	wiring  alphabet.Wiring
	inverse alphabet.Wiring

	position    alphabet.Letter
	ringSetting alphabet.Letter
	notch       alphabet.Letter
}

// New builds a rotor over a copy of wiring. The wiring must be a
// permutation (*errors.PermutationError otherwise) and position,
// ringSetting and notch must be letters (*errors.LetterError otherwise).
func New(wiring alphabet.Wiring, position, ringSetting, notch alphabet.Letter) (*Rotor, error) {
	if err := wiring.Validate(); err != nil {
		return nil, err
	}
	if err := position.Check("rotor.New position"); err != nil {
		return nil, err
	}
	if err := ringSetting.Check("rotor.New ring setting"); err != nil {
		return nil, err
	}
	if err := notch.Check("rotor.New notch"); err != nil {
		return nil, err
	}

	return &Rotor{
		wiring:      wiring,
		inverse:     wiring.Inverse(),
		position:    position,
		ringSetting: ringSetting,
		notch:       notch,
	}, nil
}

// offset is (position-1) - (ringSetting-1): how far the wiring core is
// turned against the entry contacts.
func (r *Rotor) offset() int {
	return int(r.position) - int(r.ringSetting)
}

// Forward carries l from the entry side to the wired side.
func (r *Rotor) Forward(l alphabet.Letter) (alphabet.Letter, error) {
	if err := l.Check("rotor.Forward"); err != nil {
		return 0, err
	}
	off := r.offset()
	wired := r.wiring.At(l.Index() + off)
	return alphabet.FromIndex(wired.Index() - off), nil
}

// Backward carries l from the wired side back to the entry side. It is the
// exact inverse of Forward for the rotor's current position.
func (r *Rotor) Backward(l alphabet.Letter) (alphabet.Letter, error) {
	if err := l.Check("rotor.Backward"); err != nil {
		return 0, err
	}
	off := r.offset()
	source := r.inverse.At(l.Index() + off)
	return alphabet.FromIndex(source.Index() - off), nil
}

// Position returns the letter currently shown in the window.
func (r *Rotor) Position() alphabet.Letter { return r.position }

// RingSetting returns the ring offset.
func (r *Rotor) RingSetting() alphabet.Letter { return r.ringSetting }

// Notch returns the configured notch index.
func (r *Rotor) Notch() alphabet.Letter { return r.notch }

// Wiring returns a copy of the forward wiring.
func (r *Rotor) Wiring() alphabet.Wiring { return r.wiring }

// NotchWindow returns the window letter at which this rotor trips its left
// neighbour. A reduction to 0 denotes Z.
func (r *Rotor) NotchWindow() alphabet.Letter {
	w := alphabet.FloorMod(int(r.notch)+int(r.ringSetting)-1-NotchWindowOffset, alphabet.Size)
	if w == 0 {
		return alphabet.Z
	}
	return alphabet.Letter(w)
}

// AtNotch reports whether the rotor currently shows its notch window
// letter.
func (r *Rotor) AtNotch() bool {
	return r.position == r.NotchWindow()
}

// Advance turns the rotor by one letter, wrapping Z to A.
func (r *Rotor) Advance() {
	r.position = r.position%alphabet.Size + 1
}

// Clone returns an independent rotor in the same state.
func (r *Rotor) Clone() *Rotor {
	c := *r
	return &c
}

// State returns a snapshot of the rotor's settings.
func (r *Rotor) State() State {
	return State{
		Position:    r.position,
		RingSetting: r.ringSetting,
		Notch:       r.notch,
		Window:      r.NotchWindow(),
	}
}

// State is a read-only snapshot of a rotor. It carries no wiring.
type State struct {
	Position    alphabet.Letter `json:"position" yaml:"position"`
	RingSetting alphabet.Letter `json:"ring_setting" yaml:"ring_setting"`
	Notch       alphabet.Letter `json:"notch" yaml:"notch"`
	Window      alphabet.Letter `json:"window" yaml:"window"`
}

// String renders the snapshot, for example
// "position=A ring=A notch=Y window=Q".
func (s State) String() string {
	var b strings.Builder
	b.WriteString("position=")
	b.WriteString(s.Position.String())
	b.WriteString(" ring=")
	b.WriteString(s.RingSetting.String())
	b.WriteString(" notch=")
	b.WriteString(s.Notch.String())
	b.WriteString(" window=")
	b.WriteString(s.Window.String())
	return b.String()
}
