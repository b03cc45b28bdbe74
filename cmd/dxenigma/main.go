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

// Command dxenigma enciphers and deciphers text on an emulated
// three-rotor cipher machine.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dirpx.dev/dxenigma/dxcore/machine"
	"dirpx.dev/dxenigma/dxcore/model"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"dirpx.dev/dxenigma/internal/config"
	"dirpx.dev/dxenigma/internal/logging"
	"dirpx.dev/dxenigma/internal/settingsfile"
	"dirpx.dev/dxenigma/internal/textio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath    string
	settingsPath  string
	rotorsFlag    string
	positionsFlag string
	ringsFlag     string
	reflectorFlag string
	plugboardFlag string
	groupSize     int
	verbose       bool

	cfg      config.Config
	logger   *zap.Logger
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "dxenigma",
	Short: "Three-rotor cipher machine emulator",
	Long: `dxenigma emulates a three-rotor electromechanical cipher machine with a
plugboard, three stepping rotors and a fixed reflector.

The machine is self-reciprocal: a message enciphered from a given key
deciphers back to the original with the same key.

The key comes from a settings document (YAML, JSON or TOML) or defaults to
rotors I II III at AAA with reflector B. Flags override individual parts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			c.Log.Level = "debug"
		}

		l, closeFn, err := logging.New(logging.Options{
			Level:      c.Log.Level,
			Format:     c.Log.Format,
			File:       c.Log.File,
			MaxSizeMB:  c.Log.MaxSizeMB,
			MaxBackups: c.Log.MaxBackups,
			MaxAgeDays: c.Log.MaxAgeDays,
			Output:     cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, logger, closeLog = c, l, closeFn
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			_ = closeLog()
		}
	},
}

var encipherCmd = &cobra.Command{
	Use:     "encipher [message...]",
	Aliases: []string{"decipher"},
	Short:   "Encipher or decipher a message",
	Long: `Reads the message from the arguments, or from stdin when none are given.
Letters are case-folded; every other character is dropped. The output is
printed in groups of five letters.

Example:
  dxenigma encipher --positions AAZ --plugboard ZT ZZZZZZZZZZ`,
	RunE: runEncipher,
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the rotor state after a number of keypresses",
	RunE:  runState,
}

var validateCmd = &cobra.Command{
	Use:   "validate [settings-file]",
	Short: "Validate a settings document",
	Long: `Checks that the settings document builds a machine with the default
catalog. Without an argument the --settings flag, the configured settings
path, or the default key is checked, with flag overrides applied.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the catalog rotors and reflectors",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Encipher one message per line in parallel",
	Long: `Every line is enciphered on its own machine from the same key, so the
output line n is what encipher would print for input line n. Reads stdin
when no file is given or the file is "-". Lines may be up to 1 MiB.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $DXENIGMA_CONFIG or ~/.config/dxenigma/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", "", "Settings document (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&rotorsFlag, "rotors", "", `Rotor order, left to right (e.g. "I II III" or "1 2 3")`)
	rootCmd.PersistentFlags().StringVar(&positionsFlag, "positions", "", `Start positions (e.g. "AAZ")`)
	rootCmd.PersistentFlags().StringVar(&ringsFlag, "rings", "", `Ring settings (e.g. "AAA" or "1 1 1")`)
	rootCmd.PersistentFlags().StringVar(&reflectorFlag, "reflector", "", "Catalog reflector (B or C)")
	rootCmd.PersistentFlags().StringVar(&plugboardFlag, "plugboard", "", `Plugboard pairs (e.g. "AB QW ZT")`)
	rootCmd.PersistentFlags().IntVar(&groupSize, "group", -1, "Letters per output group, 0 for none (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	stateCmd.Flags().IntVarP(&stateKeys, "keys", "n", 0, "Number of keypresses to step")
	stateCmd.Flags().StringVarP(&stateFormat, "output", "o", "text", "Output format: text, json or yaml")

	validateCmd.Flags().StringVar(&validateWrite, "write", "", "Write the normalized settings to this file")

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Parallel machines (default: from config)")

	// Add commands to root
	rootCmd.AddCommand(encipherCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveSettings loads the key from path, the configured settings path,
// or the default key, then applies the override flags.
func resolveSettings(path string) (machine.Settings, error) {
	if path == "" {
		path = cfg.Settings.Path
	}

	s := machine.DefaultSettings()
	if path != "" {
		loaded, err := settingsfile.Load(path)
		if err != nil {
			return machine.Settings{}, err
		}
		s = loaded
		logger.Debug("settings loaded", zap.String("path", path), zap.String("settings", model.SafeString(s, false)))
	}

	if rotorsFlag != "" {
		order, err := machine.ParseRotorOrder(rotorsFlag)
		if err != nil {
			return machine.Settings{}, fmt.Errorf("--rotors: %w", err)
		}
		s = s.WithOrder(order)
	}
	if positionsFlag != "" {
		p, err := machine.ParsePositions(positionsFlag)
		if err != nil {
			return machine.Settings{}, fmt.Errorf("--positions: %w", err)
		}
		s = s.WithPositions(p)
	}
	if ringsFlag != "" {
		r, err := machine.ParsePositions(ringsFlag)
		if err != nil {
			return machine.Settings{}, fmt.Errorf("--rings: %w", err)
		}
		s = s.WithRings(r)
	}
	if reflectorFlag != "" {
		s.Reflector = machine.ReflectorSetting{Name: strings.ToUpper(reflectorFlag)}
	}
	if plugboardFlag != "" {
		pairs, err := plugboard.ParsePairs(plugboardFlag)
		if err != nil {
			return machine.Settings{}, fmt.Errorf("--plugboard: %w", err)
		}
		s.Plugboard = pairs
	}
	return s, nil
}

// group formats enciphered text for printing. perLine of 0 keeps it on a
// single line.
func group(s string, perLine int) string {
	size := cfg.Output.GroupSize
	if groupSize >= 0 {
		size = groupSize
	}
	return textio.Group(s, size, perLine)
}

// readInput returns the joined arguments, or all of stdin without
// arguments.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
