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

// Package batch enciphers many messages in parallel.
//
// Every message gets its own machine built from the same settings, so each
// result is exactly what a single machine started from those settings would
// produce for that message alone. Machines share nothing, which is what
// makes the parallelism safe.
package batch

import (
	"context"
	"fmt"

	"dirpx.dev/dxenigma/dxcore/machine"
	"dirpx.dev/dxenigma/dxcore/model/alphabet"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one message. Err is set when the message itself
// was rejected; the other messages are still processed.
type Result struct {
	ID     uuid.UUID
	Index  int
	Output []alphabet.Letter
	Final  machine.State
	Err    error
}

// Runner enciphers messages with a bounded number of workers.
type Runner struct {
	settings machine.Settings
	catalog  *machine.Catalog
	workers  int
	logger   *zap.Logger
}

// NewRunner checks that settings build a machine and returns a runner.
// A nil catalog means machine.DefaultCatalog, a nil logger discards logs,
// and workers below 1 run one message at a time.
func NewRunner(settings machine.Settings, catalog *machine.Catalog, workers int, logger *zap.Logger) (*Runner, error) {
	if catalog == nil {
		catalog = machine.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	if _, err := machine.New(settings, catalog); err != nil {
		return nil, fmt.Errorf("batch settings: %w", err)
	}

	return &Runner{
		settings: settings.Clone(),
		catalog:  catalog,
		workers:  workers,
		logger:   logger,
	}, nil
}

// Run enciphers every message and returns the results in input order.
// It stops early only when ctx is done, in which case it returns ctx's
// error; cancellation is noticed between letters.
func (r *Runner) Run(ctx context.Context, messages [][]alphabet.Letter) ([]Result, error) {
	results := make([]Result, len(messages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, msg := range messages {
		id := uuid.New()
		results[i] = Result{ID: id, Index: i}

		g.Go(func() error {
			out, final, err := r.one(ctx, msg)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			results[i].Output = out
			results[i].Final = final
			results[i].Err = err

			if err != nil {
				r.logger.Warn("message rejected", zap.Stringer("job", id), zap.Int("index", i), zap.Error(err))
			} else {
				r.logger.Debug("message enciphered", zap.Stringer("job", id), zap.Int("index", i), zap.Int("length", len(out)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) one(ctx context.Context, msg []alphabet.Letter) ([]alphabet.Letter, machine.State, error) {
	m, err := machine.New(r.settings, r.catalog)
	if err != nil {
		return nil, machine.State{}, err
	}
	for i, l := range msg {
		if err := l.Check("batch"); err != nil {
			return nil, m.State(), fmt.Errorf("letter %d: %w", i, err)
		}
	}

	out := make([]alphabet.Letter, len(msg))
	for i, l := range msg {
		if err := ctx.Err(); err != nil {
			return nil, m.State(), err
		}
		c, err := m.EncipherChar(l)
		if err != nil {
			return nil, m.State(), fmt.Errorf("letter %d: %w", i, err)
		}
		out[i] = c
	}
	return out, m.State(), nil
}

// Run is a shorthand for NewRunner followed by Runner.Run.
func Run(ctx context.Context, settings machine.Settings, catalog *machine.Catalog, messages [][]alphabet.Letter, workers int, logger *zap.Logger) ([]Result, error) {
	r, err := NewRunner(settings, catalog, workers, logger)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, messages)
}
