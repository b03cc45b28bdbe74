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

package main

import (
	"fmt"

	"dirpx.dev/dxenigma/dxcore/machine"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"github.com/spf13/cobra"
)

func runCatalog(cmd *cobra.Command, args []string) error {
	c := machine.DefaultCatalog()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "ROTORS")
	for _, name := range c.RotorNames() {
		spec, err := c.Rotor(name)
		if err != nil {
			return err
		}
		// The turnover window shown is for ring setting A.
		r, err := spec.Build(alphabet.A, alphabet.A)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-4s %s  notch=%s turnover=%s\n", name, spec.Wiring, spec.Notch, r.NotchWindow())
	}

	fmt.Fprintln(out, "REFLECTORS")
	for _, name := range c.ReflectorNames() {
		w, err := c.Reflector(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-4s %s\n", name, w)
	}
	return nil
}
