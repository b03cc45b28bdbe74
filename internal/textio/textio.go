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

// Package textio adapts free text to the machine's closed alphabet and
// formats ciphertext for printing.
package textio

import (
	"strings"
	"unicode"

	"dirpx.dev/dxenigma/dxcore/model/alphabet"
)

// ToLetters keeps the letters A..Z of s (either case) and drops every
// other rune. It returns the kept letters and the number of dropped runes,
// not counting whitespace.
func ToLetters(s string) ([]alphabet.Letter, int) {
	letters := make([]alphabet.Letter, 0, len(s))
	skipped := 0
	for _, r := range s {
		l, err := alphabet.FromRune(r)
		if err != nil {
			if !unicode.IsSpace(r) {
				skipped++
			}
			continue
		}
		letters = append(letters, l)
	}
	return letters, skipped
}

// FromLetters renders letters as an upper-case string.
func FromLetters(letters []alphabet.Letter) string {
	return alphabet.FormatLetters(letters)
}

// Group splits s into groups of size letters separated by spaces, with a
// line break after every perLine groups. A size of 0 returns s unchanged,
// and a perLine of 0 never breaks lines.
//
//	Group("FOTHFXRHRHAMENA", 5, 0) == "FOTHF XRHRH AMENA"
func Group(s string, size, perLine int) string {
	if size <= 0 || s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/size + 1)
	group := 0
	for i := 0; i < len(s); i += size {
		if i > 0 {
			if perLine > 0 && group%perLine == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		end := min(i+size, len(s))
		b.WriteString(s[i:end])
		group++
	}
	return b.String()
}
