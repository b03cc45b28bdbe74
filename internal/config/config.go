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

// Package config loads the dxenigma command configuration.
//
// Values come from, in increasing precedence: built-in defaults, a config
// file, and DXENIGMA_* environment variables (DXENIGMA_OUTPUT_GROUP_SIZE
// sets output.group_size). The config file is the path passed to Load,
// else $DXENIGMA_CONFIG, else config.{yaml,toml,json} in
// $HOME/.config/dxenigma. A missing default file is not an error.
//
// The machine key itself is not part of this configuration; it lives in a
// settings document (see internal/settingsfile) named by settings.path.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dxerrors "dirpx.dev/dxenigma/dxcore/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DXENIGMA"

// Config holds the command configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Settings SettingsConfig `mapstructure:"settings"`
}

// LogConfig controls internal/logging.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// OutputConfig controls how ciphertext is printed.
type OutputConfig struct {
	// GroupSize is the number of letters per group; 0 prints one run.
	GroupSize int `mapstructure:"group_size"`

	// LineGroups is the number of groups per line; 0 never breaks.
	LineGroups int `mapstructure:"line_groups"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// SettingsConfig names the default settings document.
type SettingsConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads the configuration. An explicit path that cannot be read is an
// error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("output.group_size", 5)
	v.SetDefault("output.line_groups", 10)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("settings.path", "")

	explicit := path
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "dxenigma"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !stderrors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return &dxerrors.ValidationError{Type: "Config", Field: "log.level", Reason: err.Error(), Value: c.Log.Level}
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return &dxerrors.ValidationError{Type: "Config", Field: "log.format", Reason: "want json or console", Value: c.Log.Format}
	}
	if c.Output.GroupSize < 0 {
		return &dxerrors.ValidationError{Type: "Config", Field: "output.group_size", Reason: "must not be negative", Value: c.Output.GroupSize}
	}
	if c.Output.LineGroups < 0 {
		return &dxerrors.ValidationError{Type: "Config", Field: "output.line_groups", Reason: "must not be negative", Value: c.Output.LineGroups}
	}
	if c.Batch.Workers < 1 {
		return &dxerrors.ValidationError{Type: "Config", Field: "batch.workers", Reason: "must be at least 1", Value: c.Batch.Workers}
	}
	return nil
}
