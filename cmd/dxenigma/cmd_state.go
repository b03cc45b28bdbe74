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
	"encoding/json"
	"fmt"

	"dirpx.dev/dxenigma/dxcore/machine"
	"dirpx.dev/dxenigma/dxcore/model/rotor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	stateKeys   int
	stateFormat string
)

// stateReport is what the state command prints.
type stateReport struct {
	Keys   int                `json:"keys" yaml:"keys"`
	Rotors machine.RotorOrder `json:"rotors" yaml:"rotors"`
	Window machine.State      `json:"window" yaml:"window"`
	Left   rotor.State        `json:"left" yaml:"left"`
	Middle rotor.State        `json:"middle" yaml:"middle"`
	Right  rotor.State        `json:"right" yaml:"right"`
}

func runState(cmd *cobra.Command, args []string) error {
	if stateKeys < 0 {
		return fmt.Errorf("--keys must not be negative, got %d", stateKeys)
	}

	s, err := resolveSettings(settingsPath)
	if err != nil {
		return err
	}
	m, err := machine.New(s, nil)
	if err != nil {
		return err
	}
	for i := 0; i < stateKeys; i++ {
		m.Step()
	}
	logger.Debug("machine stepped", zap.Int("keys", stateKeys))

	report := stateReport{
		Keys:   stateKeys,
		Rotors: s.Order(),
		Window: m.State(),
		Left:   m.Left(),
		Middle: m.Middle(),
		Right:  m.Right(),
	}

	out := cmd.OutOrStdout()
	switch stateFormat {
	case "", "text":
		fmt.Fprintf(out, "window  %s after %d keys\n", report.Window, report.Keys)
		fmt.Fprintf(out, "left    %-6s %s\n", report.Rotors[0], report.Left)
		fmt.Fprintf(out, "middle  %-6s %s\n", report.Rotors[1], report.Middle)
		fmt.Fprintf(out, "right   %-6s %s\n", report.Rotors[2], report.Right)
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
	default:
		return fmt.Errorf("unknown output format %q: want text, json or yaml", stateFormat)
	}
	return nil
}
