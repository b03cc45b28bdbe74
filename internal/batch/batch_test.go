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

package batch

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	dxerrors "dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/machine"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/dxcore/model/plugboard"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func workedExample(t *testing.T) machine.Settings {
	t.Helper()
	s := machine.DefaultSettings().WithPositions(machine.State{Left: alphabet.A, Middle: alphabet.A, Right: alphabet.Z})
	pairs, err := plugboard.ParsePairs("ZT")
	require.NoError(t, err)
	s.Plugboard = pairs
	return s
}

func letters(t *testing.T, s string) []alphabet.Letter {
	t.Helper()
	l, err := alphabet.ParseLetters(s)
	require.NoError(t, err)
	return l
}

func TestRun_MatchesSingleMachine(t *testing.T) {
	s := workedExample(t)
	inputs := []string{
		strings.Repeat("Z", 30),
		"HELLOWORLD",
		"",
		"ATTACKATDAWN",
		strings.Repeat("Q", 500),
	}
	messages := make([][]alphabet.Letter, len(inputs))
	for i, in := range inputs {
		messages[i] = letters(t, in)
	}

	results, err := Run(context.Background(), s, nil, messages, 3, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	assert.Equal(t, "FOTHFXRHRHAMENAUWEIGSUXEWKKGGP", alphabet.FormatLetters(results[0].Output))

	seen := map[uuid.UUID]bool{}
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.NoError(t, res.Err)
		assert.False(t, seen[res.ID], "duplicate job id")
		seen[res.ID] = true

		m, err := machine.New(s, nil)
		require.NoError(t, err)
		want, err := m.EncipherMessage(messages[i])
		require.NoError(t, err)
		if diff := cmp.Diff(alphabet.FormatLetters(want), alphabet.FormatLetters(res.Output)); diff != "" {
			t.Errorf("message %d mismatch (-want +got):\n%s", i, diff)
		}
		assert.Equal(t, m.State(), res.Final)
	}
}

func TestRun_RejectedMessageDoesNotStopOthers(t *testing.T) {
	messages := [][]alphabet.Letter{
		letters(t, "ABC"),
		{alphabet.A, 0, alphabet.C},
		letters(t, "XYZ"),
	}

	results, err := Run(context.Background(), workedExample(t), nil, messages, 2, nil)
	require.NoError(t, err)

	assert.NoError(t, results[0].Err)
	assert.True(t, stderrors.Is(results[1].Err, dxerrors.ErrInvalidLetter))
	assert.Nil(t, results[1].Output)
	assert.Equal(t, "AAZ", results[1].Final.String(), "rejected message leaves the start state")
	assert.NoError(t, results[2].Err)
	assert.Len(t, results[2].Output, 3)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	messages := [][]alphabet.Letter{letters(t, strings.Repeat("A", 1000))}
	results, err := Run(ctx, workedExample(t), nil, messages, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestNewRunner_InvalidSettings(t *testing.T) {
	s := machine.DefaultSettings()
	s.Left.Name = "IX"

	_, err := NewRunner(s, nil, 4, nil)
	assert.True(t, stderrors.Is(err, dxerrors.ErrConfigurationMismatch), "got %v", err)
}

func TestNewRunner_ClampsWorkers(t *testing.T) {
	r, err := NewRunner(machine.DefaultSettings(), nil, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.workers)

	results, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
