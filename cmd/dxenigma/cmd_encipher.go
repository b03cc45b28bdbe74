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
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/internal/textio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runEncipher handles encipher and decipher. The machine is
// self-reciprocal, so both run the same path.
func runEncipher(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	letters, skipped := textio.ToLetters(text)
	if skipped > 0 {
		logger.Warn("dropped characters outside A-Z", zap.Int("count", skipped))
	}

	s, err := resolveSettings(settingsPath)
	if err != nil {
		return err
	}
	m, err := machine.New(s, nil)
	if err != nil {
		return err
	}

	out, err := m.EncipherMessage(letters)
	if err != nil {
		return err
	}
	logger.Info("message enciphered",
		zap.String("command", cmd.CalledAs()),
		zap.Int("length", len(out)),
		zap.String("settings", model.SafeString(s, false)))

	fmt.Fprintln(cmd.OutOrStdout(), group(textio.FromLetters(out), cfg.Output.LineGroups))
	return nil
}
