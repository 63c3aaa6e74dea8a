// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/pkg/log"
	"github.com/walteh/buildtemplate/pkg/status"
)

// 🏃 Runner executes stages one after the other
type Runner struct {
	dir       string
	formatter status.FileFormatter
}

// 🏗️ NewRunner creates a runner; dir is shown in stage headers
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir, formatter: status.NewDefaultFileFormatter()}
}

// 🏃 Run executes ops in order and stops at the first failure.
// Cancellation is only observed between stages.
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled before %s: %w", op.Name(), err)
		}

		logger.Debug().Str("stage", op.Name()).Int("index", i).Msg("running stage")
		console.StartStage(ctx, op.Name(), r.dir)

		err := op.Execute(ctx)
		console.EndStage(ctx)
		if err != nil {
			logger.Error().Err(err).Str("stage", op.Name()).Msg(r.formatter.FormatError(err))
			return errors.Errorf("running %s: %w", op.Name(), err)
		}
		logger.Debug().Str("stage", op.Name()).Msg(r.formatter.FormatProgress(i+1, len(ops)))
	}
	return nil
}
