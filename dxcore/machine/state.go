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
	"strconv"
	"strings"

	"dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
)

// State is the three window letters, left to right.
type State struct {
	Left   alphabet.Letter `json:"left" yaml:"left"`
	Middle alphabet.Letter `json:"middle" yaml:"middle"`
	Right  alphabet.Letter `json:"right" yaml:"right"`
}

// String returns the window letters as read off the machine, for example
// "ADU".
func (s State) String() string {
	return s.Left.String() + s.Middle.String() + s.Right.String()
}

// ParsePositions parses three window letters. It accepts either three
// adjacent letters ("AAZ") or three whitespace-separated letters or
// numbers ("A A Z", "1 1 26").
func ParsePositions(s string) (State, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && len(fields[0]) == 3 {
		fields = []string{fields[0][0:1], fields[0][1:2], fields[0][2:3]}
	}
	if len(fields) != 3 {
		return State{}, &errors.ParseError{Type: "Positions", Value: s}
	}

	var letters [3]alphabet.Letter
	for i, f := range fields {
		l, err := alphabet.ParseLetter(f)
		if err != nil {
			return State{}, &errors.ParseError{Type: "Positions", Value: s}
		}
		letters[i] = l
	}
	return State{Left: letters[0], Middle: letters[1], Right: letters[2]}, nil
}

// RotorOrder names the left, middle and right wheels.
type RotorOrder [3]string

// String joins the names with spaces, for example "I II III".
func (o RotorOrder) String() string {
	return strings.Join(o[:], " ")
}

// ParseRotorOrder parses three wheel names separated by whitespace or
// commas. Names are upper-cased, and the numbers 1 to 8 are read as the
// roman numerals I to VIII, so "1 2 3" and "i,ii,iii" both give
// "I II III".
//
// Names are not checked against a catalog here. A name the catalog does
// not hold, such as "VI" for DefaultCatalog, fails when the settings are
// resolved by New.
func ParseRotorOrder(s string) (RotorOrder, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return RotorOrder{}, &errors.ParseError{Type: "RotorOrder", Value: s}
	}

	var order RotorOrder
	for i, f := range fields {
		name := strings.ToUpper(f)
		if n, err := strconv.Atoi(name); err == nil {
			if n < 1 || n > len(romanNumerals) {
				return RotorOrder{}, &errors.ParseError{Type: "RotorOrder", Value: s}
			}
			name = romanNumerals[n-1]
		}
		order[i] = name
	}
	return order, nil
}

var romanNumerals = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}
