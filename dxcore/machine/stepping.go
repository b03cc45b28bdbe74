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

import "dirpx.dev/dxenigma/dxcore/model/rotor"

// NotchWindowOffset is the calibration between a notch index and the
// window letter at which it trips. See rotor.NotchWindowOffset.
const NotchWindowOffset = rotor.NotchWindowOffset

// Step advances the three rotors for one keypress.
//
// All three decisions are taken from the positions before any rotor moves:
// the left rotor steps when the middle rotor shows its notch window; the
// middle rotor steps when either it or the right rotor shows its notch
// window (the second case is the double step); the right rotor always
// steps.
func Step(left, middle, right *rotor.Rotor) {
	leftSteps := middle.AtNotch()
	middleSteps := leftSteps || right.AtNotch()

	if leftSteps {
		left.Advance()
	}
	if middleSteps {
		middle.Advance()
	}
	right.Advance()
}
