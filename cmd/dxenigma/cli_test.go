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
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dxerrors "dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/machine"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/internal/config"
	"dirpx.dev/dxenigma/internal/settingsfile"
	"dirpx.dev/dxenigma/internal/textio"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const workedExample = `version: 1.0.0
left:   {name: I,   position: A}
middle: {name: II,  position: A}
right:  {name: III, position: Z}
reflector: {name: B}
plugboard: [ZT]
`

// setup resets the global flags and config and returns a command wired to
// buffers.
func setup(t *testing.T, stdin string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	logger = zap.NewNop()
	cfg = config.Config{
		Output: config.OutputConfig{GroupSize: 5, LineGroups: 10},
		Batch:  config.BatchConfig{Workers: 2},
	}
	settingsPath, rotorsFlag, positionsFlag, ringsFlag, reflectorFlag, plugboardFlag = "", "", "", "", "", ""
	groupSize = -1
	stateKeys, stateFormat = 0, "text"
	validateWrite = ""
	batchWorkers = 0

	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, &out, &errOut
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEncipherCmd_WorkedExample(t *testing.T) {
	cmd, out, _ := setup(t, "")
	settingsPath = writeFile(t, "key.yaml", workedExample)

	err := runEncipher(cmd, []string{strings.Repeat("Z", 30)})
	require.NoError(t, err)
	assert.Equal(t, "FOTHF XRHRH AMENA UWEIG SUXEW KKGGP\n", out.String())
}

func TestEncipherCmd_Flags(t *testing.T) {
	cmd, out, _ := setup(t, "")
	rotorsFlag = "II IV V"
	positionsFlag = "BLA"

	require.NoError(t, runEncipher(cmd, []string{"hello", "world"}))
	assert.Equal(t, "QPZXX VDAZO\n", out.String())
}

func TestEncipherCmd_StdinRoundTrip(t *testing.T) {
	key := func() {
		rotorsFlag = "4 1 5"
		positionsFlag = "QEY"
		ringsFlag = "C G S"
		reflectorFlag = "c"
		plugboardFlag = "AB QW ZT"
	}

	cmd, out, _ := setup(t, "The quick brown fox jumps over the lazy dog.\n")
	key()
	require.NoError(t, runEncipher(cmd, nil))
	assert.Equal(t, "BTCXS GNAMB UOQTL GNPCF GPGIB ZMHTM MLGLN\n", out.String())

	cmd, out, _ = setup(t, "BTCXS GNAMB UOQTL GNPCF GPGIB ZMHTM MLGLN")
	key()
	groupSize = 0
	require.NoError(t, runEncipher(cmd, nil))
	assert.Equal(t, "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG\n", out.String())
}

func TestEncipherCmd_BadOverride(t *testing.T) {
	tests := []struct {
		name  string
		apply func()
		want  error
	}{
		{"positions", func() { positionsFlag = "AA" }, nil},
		{"rotors", func() { rotorsFlag = "I II" }, nil},
		{"plugboard", func() { plugboardFlag = "AB AC" }, dxerrors.ErrInvalidPermutation},
		{"unknown rotor", func() { rotorsFlag = "I II IX" }, dxerrors.ErrConfigurationMismatch},
		{"unknown reflector", func() { reflectorFlag = "A" }, dxerrors.ErrConfigurationMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out, _ := setup(t, "")
			tt.apply()

			err := runEncipher(cmd, []string{"HELLO"})
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				var pe *dxerrors.ParseError
				assert.ErrorAs(t, err, &pe)
			}
			assert.Empty(t, out.String())
		})
	}
}

func TestStateCmd_Text(t *testing.T) {
	cmd, out, _ := setup(t, "")
	positionsFlag = "ADU"
	stateKeys = 3

	require.NoError(t, runState(cmd, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "window  BFX after 3 keys", lines[0])
	assert.Equal(t, "left    I      position=B ring=A notch=Y window=Q", lines[1])
	assert.Equal(t, "middle  II     position=F ring=A notch=M window=E", lines[2])
}

func TestStateCmd_JSON(t *testing.T) {
	cmd, out, _ := setup(t, "")
	positionsFlag = "ADU"
	stateKeys = 2
	stateFormat = "json"

	require.NoError(t, runState(cmd, nil))

	var report stateReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 2, report.Keys)
	assert.Equal(t, machine.RotorOrder{"I", "II", "III"}, report.Rotors)
	assert.Equal(t, machine.State{Left: alphabet.A, Middle: alphabet.E, Right: alphabet.W}, report.Window)
	assert.Equal(t, alphabet.V, report.Right.Window)
}

func TestStateCmd_Errors(t *testing.T) {
	cmd, _, _ := setup(t, "")
	stateKeys = -1
	assert.Error(t, runState(cmd, nil))

	cmd, _, _ = setup(t, "")
	stateFormat = "xml"
	assert.Error(t, runState(cmd, nil))
}

func TestValidateCmd(t *testing.T) {
	cmd, out, _ := setup(t, "")
	path := writeFile(t, "key.yaml", workedExample)
	validateWrite = filepath.Join(t.TempDir(), "key.toml")

	require.NoError(t, runValidate(cmd, []string{path}))
	assert.Equal(t, "ok Settings{version=1.0.0 plugboard=1 pairs}\n", out.String())

	written, err := settingsfile.Load(validateWrite)
	require.NoError(t, err)
	assert.Equal(t, "I II III B positions=AAZ rings=AAA plugboard=ZT", written.String())
}

func TestValidateCmd_ConfiguredPath(t *testing.T) {
	cmd, out, _ := setup(t, "")
	cfg.Settings.Path = writeFile(t, "key.json", `{"left":{"name":"I","position":"A"},"middle":{"name":"II","position":"A"},"right":{"name":"III","position":"A"},"reflector":{"name":"C"}}`)

	require.NoError(t, runValidate(cmd, nil))
	assert.Contains(t, out.String(), "ok Settings{")
}

func TestValidateCmd_Rejects(t *testing.T) {
	cmd, _, _ := setup(t, "")
	path := writeFile(t, "key.yaml", strings.Replace(workedExample, "name: III", "name: IX", 1))
	assert.ErrorIs(t, runValidate(cmd, []string{path}), dxerrors.ErrConfigurationMismatch)

	cmd, _, _ = setup(t, "")
	path = writeFile(t, "key.yaml", strings.Replace(workedExample, "version: 1.0.0", "version: 2.0.0", 1))
	err := runValidate(cmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration mismatch")

	cmd, _, _ = setup(t, "")
	assert.Error(t, runValidate(cmd, []string{filepath.Join(t.TempDir(), "missing.yaml")}))
}

func TestCatalogCmd(t *testing.T) {
	cmd, out, _ := setup(t, "")

	require.NoError(t, runCatalog(cmd, nil))
	got := out.String()
	assert.True(t, strings.HasPrefix(got, "ROTORS\n  I    EKMFLGDQVZNTOWYHXUSPAIBRCJ  notch=Y turnover=Q\n"), got)
	assert.Contains(t, got, "  V    VZBRGITYUPSDNHLXAWMJQOFECK  notch=H turnover=Z\n")
	assert.Contains(t, got, "REFLECTORS\n  B    YRUHQSLDPXNGOKMIEBFZCWVJAT\n  C    FVPJIAOYEDRZXWGCTKUQSBNMHL\n")
}

func TestBatchCmd(t *testing.T) {
	cmd, out, errOut := setup(t, "")
	positionsFlag = "AAZ"
	plugboardFlag = "ZT"
	batchWorkers = 3
	path := writeFile(t, "messages.txt", strings.Repeat("Z", 30)+"\nhello world\n\n"+strings.Repeat("z", 30)+"\n")

	require.NoError(t, runBatch(cmd, []string{path}))
	assert.Empty(t, errOut.String())

	s, err := resolveSettings("")
	require.NoError(t, err)
	m, err := machine.New(s, nil)
	require.NoError(t, err)
	letters, _ := textio.ToLetters("HELLOWORLD")
	hello, err := m.EncipherMessage(letters)
	require.NoError(t, err)

	want := "FOTHF XRHRH AMENA UWEIG SUXEW KKGGP\n" +
		textio.Group(textio.FromLetters(hello), 5, 0) + "\n" +
		"\n" +
		"FOTHF XRHRH AMENA UWEIG SUXEW KKGGP\n"
	assert.Equal(t, want, out.String())
}

func TestBatchCmd_Stdin(t *testing.T) {
	cmd, out, _ := setup(t, "HELLOWORLD\n")
	rotorsFlag = "II IV V"
	positionsFlag = "BLA"

	require.NoError(t, runBatch(cmd, []string{"-"}))
	assert.Equal(t, "QPZXX VDAZO\n", out.String())
}

func TestBatchCmd_MissingFile(t *testing.T) {
	cmd, _, _ := setup(t, "")
	assert.Error(t, runBatch(cmd, []string{filepath.Join(t.TempDir(), "none.txt")}))
}

func TestBatchCmd_LongLine(t *testing.T) {
	cmd, out, _ := setup(t, "")
	groupSize = 0
	path := writeFile(t, "long.txt", strings.Repeat("A", 200*1024)+"\n")

	require.NoError(t, runBatch(cmd, []string{path}))
	assert.Len(t, strings.TrimSpace(out.String()), 200*1024)
}

func TestBatchCmd_LineTooLong(t *testing.T) {
	cmd, _, _ := setup(t, "")
	path := writeFile(t, "huge.txt", strings.Repeat("A", maxMessageLine+1)+"\n")

	err := runBatch(cmd, []string{path})
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}
