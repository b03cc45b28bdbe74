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
	stderrors "errors"
	"testing"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/dxcore/model/reflector"
	"dirpx.dev/dxenigma/dxcore/model/rotor"
)

// settingsFor builds settings from compact strings: order "I II III",
// positions "AAZ", rings "AAA", reflector "B", plugboard "ZT".
func settingsFor(t *testing.T, order, positions, rings, refl, pairs string) Settings {
	t.Helper()

	o, err := ParseRotorOrder(order)
	if err != nil {
		t.Fatalf("ParseRotorOrder(%q) error = %v", order, err)
	}
	p, err := ParsePositions(positions)
	if err != nil {
		t.Fatalf("ParsePositions(%q) error = %v", positions, err)
	}
	r, err := ParsePositions(rings)
	if err != nil {
		t.Fatalf("ParsePositions(%q) error = %v", rings, err)
	}
	pb, err := plugboard.ParsePairs(pairs)
	if err != nil {
		t.Fatalf("ParsePairs(%q) error = %v", pairs, err)
	}

	s := DefaultSettings().WithOrder(o).WithPositions(p).WithRings(r)
	s.Reflector = ReflectorSetting{Name: refl}
	s.Plugboard = pb
	return s
}

func mustMachine(t *testing.T, s Settings) *Machine {
	t.Helper()
	m, err := New(s, nil)
	if err != nil {
		t.Fatalf("New(%v) error = %v", s, err)
	}
	return m
}

func mustLetters(t *testing.T, s string) []alphabet.Letter {
	t.Helper()
	letters, err := alphabet.ParseLetters(s)
	if err != nil {
		t.Fatalf("ParseLetters(%q) error = %v", s, err)
	}
	return letters
}

func TestEncipherMessage_Vectors(t *testing.T) {
	tests := []struct {
		name      string
		order     string
		positions string
		rings     string
		refl      string
		pairs     string
		input     string
		want      string
		wantState string
	}{
		{
			name:      "double step across thirty keys",
			order:     "I II III",
			positions: "AAZ",
			rings:     "AAA",
			refl:      "B",
			pairs:     "ZT",
			input:     "ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ",
			want:      "FOTHFXRHRHAMENAUWEIGSUXEWKKGGP",
			wantState: "ABD",
		},
		{
			name:      "home position",
			order:     "I II III",
			positions: "AAA",
			rings:     "AAA",
			refl:      "B",
			input:     "AAAAA",
			want:      "BDZGO",
			wantState: "AAF",
		},
		{
			name:      "ring settings",
			order:     "I II III",
			positions: "AAA",
			rings:     "BBB",
			refl:      "B",
			input:     "AAAAA",
			want:      "EWTYX",
			wantState: "AAF",
		},
		{
			name:      "wheels II IV V",
			order:     "II IV V",
			positions: "BLA",
			rings:     "AAA",
			refl:      "B",
			input:     "HELLOWORLD",
			want:      "QPZXXVDAZO",
			wantState: "BLK",
		},
		{
			name:      "wheels II IV V with rings",
			order:     "2 4 5",
			positions: "AAA",
			rings:     "BUL",
			refl:      "B",
			input:     "HELLOWORLD",
			want:      "GACSSHYVBE",
			wantState: "AAK",
		},
		{
			name:      "reflector C with plugboard",
			order:     "IV I V",
			positions: "QEY",
			rings:     "CGS",
			refl:      "C",
			pairs:     "AB QW ZT",
			input:     "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG",
			want:      "BTCXSGNAMBUOQTLGNPCFGPGIBZMHTMMLGLN",
			wantState: "QFH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustMachine(t, settingsFor(t, tt.order, tt.positions, tt.rings, tt.refl, tt.pairs))

			got, err := m.EncipherMessage(mustLetters(t, tt.input))
			if err != nil {
				t.Fatalf("EncipherMessage() error = %v", err)
			}
			if s := alphabet.FormatLetters(got); s != tt.want {
				t.Errorf("EncipherMessage(%s) = %s, want %s", tt.input, s, tt.want)
			}
			if s := m.State().String(); s != tt.wantState {
				t.Errorf("State() = %s, want %s", s, tt.wantState)
			}
		})
	}
}

func TestEncipherChar_MatchesMessage(t *testing.T) {
	s := settingsFor(t, "I II III", "AAZ", "AAA", "B", "ZT")
	m := mustMachine(t, s)

	var got []alphabet.Letter
	for range 30 {
		c, err := m.EncipherChar(alphabet.Z)
		if err != nil {
			t.Fatalf("EncipherChar() error = %v", err)
		}
		got = append(got, c)
	}
	if s := alphabet.FormatLetters(got); s != "FOTHFXRHRHAMENAUWEIGSUXEWKKGGP" {
		t.Errorf("EncipherChar x30 = %s", s)
	}
}

func TestSelfReciprocity(t *testing.T) {
	settings := []Settings{
		settingsFor(t, "I II III", "AAZ", "AAA", "B", "ZT"),
		settingsFor(t, "V III I", "QDV", "ZMB", "C", "AB CD EF GH IJ KL MN OP QR ST UV WX YZ"),
		settingsFor(t, "IV V II", "ZZZ", "FFF", "B", ""),
	}
	plain := mustLetters(t, "ATTACKATDAWNTHEDOUBLESTEPMUSTROUNDTRIPEVERYWHEREXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX")

	for _, s := range settings {
		t.Run(s.String(), func(t *testing.T) {
			enc := mustMachine(t, s)
			dec := mustMachine(t, s)

			cipher, err := enc.EncipherMessage(plain)
			if err != nil {
				t.Fatalf("encipher error = %v", err)
			}
			back, err := dec.EncipherMessage(cipher)
			if err != nil {
				t.Fatalf("decipher error = %v", err)
			}
			if alphabet.FormatLetters(back) != alphabet.FormatLetters(plain) {
				t.Errorf("round trip = %s", alphabet.FormatLetters(back))
			}
			for i := range plain {
				if cipher[i] == plain[i] {
					t.Fatalf("letter %d enciphered to itself", i)
				}
			}
		})
	}
}

func TestEncipherChar_RejectsWithoutStepping(t *testing.T) {
	m := mustMachine(t, settingsFor(t, "I II III", "ADU", "AAA", "B", ""))
	before := m.State()

	for _, bad := range []alphabet.Letter{0, 27, -5} {
		_, err := m.EncipherChar(bad)
		if !stderrors.Is(err, errors.ErrInvalidLetter) {
			t.Errorf("EncipherChar(%d) error = %v, want ErrInvalidLetter", int(bad), err)
		}
	}
	if m.State() != before {
		t.Errorf("State() = %v after rejected input, want %v", m.State(), before)
	}
}

func TestEncipherMessage_RejectsWholeMessage(t *testing.T) {
	m := mustMachine(t, settingsFor(t, "I II III", "AAA", "AAA", "B", ""))
	msg := []alphabet.Letter{alphabet.A, alphabet.B, 27, alphabet.C}

	out, err := m.EncipherMessage(msg)
	if !stderrors.Is(err, errors.ErrInvalidLetter) {
		t.Fatalf("EncipherMessage() error = %v, want ErrInvalidLetter", err)
	}
	if out != nil {
		t.Errorf("EncipherMessage() = %v, want nil", out)
	}
	if s := m.State().String(); s != "AAA" {
		t.Errorf("State() = %s, want AAA", s)
	}

	empty, err := m.EncipherMessage(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("EncipherMessage(nil) = %v, %v, want empty", empty, err)
	}
}

func TestStep_DoubleStep(t *testing.T) {
	m := mustMachine(t, settingsFor(t, "I II III", "ADU", "AAA", "B", ""))

	want := []string{"ADV", "AEW", "BFX", "BFY"}
	for i, w := range want {
		m.Step()
		if got := m.State().String(); got != w {
			t.Fatalf("after key %d: State() = %s, want %s", i+1, got, w)
		}
	}
}

func TestStep_Wraps(t *testing.T) {
	m := mustMachine(t, settingsFor(t, "I II III", "ZZZ", "AAA", "B", ""))
	m.Step()
	if got := m.State().String(); got != "ZZA" {
		t.Errorf("State() = %s, want ZZA", got)
	}
}

func TestStep_Period(t *testing.T) {
	m := mustMachine(t, settingsFor(t, "I II III", "AAA", "AAA", "B", ""))
	start := m.State()

	firstReturn := 0
	rightAtA := 0
	for i := 1; i <= 17576; i++ {
		prevRight := m.State().Right
		m.Step()
		if m.State().Right != prevRight%alphabet.Size+1 {
			t.Fatalf("key %d: right rotor did not step", i)
		}
		if m.State().Right == alphabet.A {
			rightAtA++
		}
		if firstReturn == 0 && m.State() == start {
			firstReturn = i
		}
	}

	if firstReturn != 16900 {
		t.Errorf("first return to AAA after %d keys, want 16900", firstReturn)
	}
	if rightAtA != 676 {
		t.Errorf("right rotor at A %d times, want 676", rightAtA)
	}
}

func TestStep_NotchOverride(t *testing.T) {
	s := settingsFor(t, "I II III", "AAV", "AAA", "B", "")

	m := mustMachine(t, s)
	m.Step()
	if got := m.State().String(); got != "ABW" {
		t.Errorf("catalog notch: State() = %s, want ABW", got)
	}

	s.Right.Notch = 5
	m = mustMachine(t, s)
	m.Step()
	if got := m.State().String(); got != "AAW" {
		t.Errorf("notch override: State() = %s, want AAW", got)
	}
	if w := m.Right().Window; w != alphabet.W {
		t.Errorf("Right().Window = %v, want W", w)
	}
}

func TestStepFunc_UsesPreStepPositions(t *testing.T) {
	spec, _ := DefaultCatalog().Rotor("I")
	// Middle at its window Q and right at its window Q: the left rotor
	// steps once, and the middle rotor steps once even though two
	// conditions ask for it.
	left, _ := spec.Build(alphabet.A, alphabet.A)
	middle, _ := spec.Build(alphabet.Q, alphabet.A)
	right, _ := spec.Build(alphabet.Q, alphabet.A)

	Step(left, middle, right)
	if left.Position() != alphabet.B || middle.Position() != alphabet.R || right.Position() != alphabet.R {
		t.Errorf("positions = %v %v %v, want B R R", left.Position(), middle.Position(), right.Position())
	}
}

func TestClone(t *testing.T) {
	m := mustMachine(t, settingsFor(t, "I II III", "AAA", "AAA", "B", "ZT"))
	c := m.Clone()

	a, _ := c.EncipherMessage(mustLetters(t, "AAAAA"))
	if m.State().String() != "AAA" {
		t.Errorf("original State() = %s after clone use", m.State())
	}
	b, _ := m.EncipherMessage(mustLetters(t, "AAAAA"))
	if alphabet.FormatLetters(a) != alphabet.FormatLetters(b) {
		t.Errorf("clone output %s != original output %s", alphabet.FormatLetters(a), alphabet.FormatLetters(b))
	}
}

func TestAssemble(t *testing.T) {
	cat := DefaultCatalog()
	spec, _ := cat.Rotor("III")
	left, _ := spec.Build(alphabet.A, alphabet.A)
	middle, _ := spec.Build(alphabet.A, alphabet.A)
	right, _ := spec.Build(alphabet.A, alphabet.A)
	w, _ := cat.Reflector("B")
	refl, _ := reflector.New(w)
	pb, _ := plugboard.New()

	m, err := Assemble(left, middle, right, refl, pb)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	m.Step()
	if right.Position() != alphabet.A {
		t.Error("Assemble() did not copy the right rotor")
	}
	if m.Right().Position != alphabet.B {
		t.Errorf("Right().Position = %v, want B", m.Right().Position)
	}

	tests := []struct {
		name                string
		left, middle, right *rotor.Rotor
		refl                *reflector.Reflector
		pb                  *plugboard.Plugboard
	}{
		{"no left", nil, middle, right, refl, pb},
		{"no middle", left, nil, right, refl, pb},
		{"no right", left, middle, nil, refl, pb},
		{"no reflector", left, middle, right, nil, pb},
		{"no plugboard", left, middle, right, refl, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Assemble(tt.left, tt.middle, tt.right, tt.refl, tt.pb); !stderrors.Is(err, errors.ErrConfigurationMismatch) {
				t.Errorf("Assemble() error = %v, want ErrConfigurationMismatch", err)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	m := mustMachine(t, settingsFor(t, "I II III", "ABC", "DEF", "B", "ZT"))

	if got := m.Left(); got.Position != alphabet.A || got.RingSetting != alphabet.D {
		t.Errorf("Left() = %v", got)
	}
	if got := m.Middle(); got.Position != alphabet.B || got.RingSetting != alphabet.E {
		t.Errorf("Middle() = %v", got)
	}
	if got := m.Right(); got.Position != alphabet.C || got.RingSetting != alphabet.F || got.Notch != alphabet.D {
		t.Errorf("Right() = %v", got)
	}
	if got := m.Reflector().String(); got != "YRUHQSLDPXNGOKMIEBFZCWVJAT" {
		t.Errorf("Reflector() = %s", got)
	}
	pairs := m.Plugboard()
	if len(pairs) != 1 || pairs[0].String() != "ZT" {
		t.Errorf("Plugboard() = %v", pairs)
	}
}
