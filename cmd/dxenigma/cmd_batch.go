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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"dirpx.dev/dxenigma/internal/batch"
	"dirpx.dev/dxenigma/internal/textio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchWorkers int

// maxMessageLine is the longest input line batch accepts, in bytes.
// bufio.Scanner stops at 64 KiB by default.
const maxMessageLine = 1 << 20

func runBatch(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open messages: %w", err)
		}
		defer f.Close()
		in = f
	}

	var messages [][]alphabet.Letter
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageLine)
	for scanner.Scan() {
		letters, skipped := textio.ToLetters(scanner.Text())
		if skipped > 0 {
			logger.Warn("dropped characters outside A-Z",
				zap.Int("line", len(messages)+1),
				zap.Int("count", skipped))
		}
		messages = append(messages, letters)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read messages: %w", err)
	}

	s, err := resolveSettings(settingsPath)
	if err != nil {
		return err
	}
	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	results, err := batch.Run(ctx, s, nil, messages, workers, logger)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", res.Index+1, res.Err)
			fmt.Fprintln(cmd.OutOrStdout())
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), group(textio.FromLetters(res.Output), 0))
	}
	logger.Info("batch finished",
		zap.Int("messages", len(results)),
		zap.Int("failed", failed),
		zap.Int("workers", workers))

	if failed > 0 {
		return fmt.Errorf("%d of %d messages rejected", failed, len(results))
	}
	return nil
}
