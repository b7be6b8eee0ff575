/*
   Copyright 2026 The DIRPX Authors

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

package validate

import (
	"context"
	"fmt"

	"dirpx.dev/rxmerr"
	"dirpx.dev/tgdf/tgcore/item"
	"dirpx.dev/tgdf/tgcore/model"
	"golang.org/x/sync/errgroup"
)

// BatchResult holds one outcome per input of ValidateBatch.
type BatchResult struct {
	items []*Validated
	errs  []error
}

// Len returns the number of inputs.
func (b *BatchResult) Len() int {
	return len(b.items)
}

// Result returns the outcome of input i.
func (b *BatchResult) Result(i int) (*Validated, error) {
	return b.items[i], b.errs[i]
}

// OK reports whether input i validated.
func (b *BatchResult) OK(i int) bool {
	return b.errs[i] == nil
}

// Failures maps the index of every failed input to its error.
func (b *BatchResult) Failures() map[int]error {
	out := make(map[int]error)
	for i, err := range b.errs {
		if err != nil {
			out[i] = err
		}
	}
	return out
}

// Err aggregates all failures, each prefixed with its index, or returns nil
// when every input validated.
func (b *BatchResult) Err() error {
	c := rxmerr.NewCollector()
	for i, err := range b.errs {
		if err != nil {
			c.Append(fmt.Errorf("items[%d]: %w", i, err))
		}
	}
	return c.Err()
}

// ValidateBatch parses and validates every raw tree on a bounded pool of
// workers. A failing input never affects its siblings. Inputs not started
// when ctx is done fail with ctx.Err().
func (v *Validator) ValidateBatch(ctx context.Context, raws []any) *BatchResult {
	res := &BatchResult{
		items: make([]*Validated, len(raws)),
		errs:  make([]error, len(raws)),
	}
	descs := make([]string, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)

	for i, raw := range raws {
		if err := gctx.Err(); err != nil {
			res.errs[i] = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				res.errs[i] = err
				return nil
			}
			it, err := item.Parse(raw)
			if err != nil {
				res.errs[i] = err
				return nil
			}
			descs[i] = model.SafeString(it, false)
			res.items[i], res.errs[i] = v.Validate(it)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range res.errs {
		if err == nil {
			continue
		}
		failed++
		v.logger.Debug().
			Int("index", i).
			Str("item", descs[i]).
			Err(err).
			Msg("item rejected")
	}
	v.logger.Info().
		Int("items", len(raws)).
		Int("failed", failed).
		Msg("batch validated")

	return res
}
