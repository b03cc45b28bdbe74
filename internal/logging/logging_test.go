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

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("settings loaded", zap.String("settings", "Settings{version=1.0.0 plugboard=1 pairs}"))
	require.NoError(t, closeFn())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "settings loaded", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry["settings"], "plugboard=1 pairs")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	logger.Debug("stepped", zap.Int("keys", 3))
	require.NoError(t, closeFn())

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "stepped")
	assert.Contains(t, buf.String(), `"keys": 3`)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dxenigma.log")

	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Format: "console", File: path, MaxSizeMB: 1, Output: &buf})
	require.NoError(t, err)

	logger.Info("message enciphered", zap.Int("length", 30))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"message enciphered"`)
	assert.Contains(t, buf.String(), "message enciphered")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}
