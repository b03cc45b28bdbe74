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
	"dirpx.dev/dxenigma/internal/settingsfile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validateWrite string

func runValidate(cmd *cobra.Command, args []string) error {
	path := settingsPath
	if len(args) == 1 {
		path = args[0]
	}

	s, err := resolveSettings(path)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if _, err := machine.New(s, nil); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", s.Redacted())

	if validateWrite != "" {
		s.Version = s.Version.OrCurrent()
		if err := settingsfile.Save(validateWrite, s); err != nil {
			return err
		}
		logger.Info("settings written", zap.String("path", validateWrite))
	}
	return nil
}
