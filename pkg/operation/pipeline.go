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

	"gitlab.com/tozd/go/errors"
)

// 🏭 NewPipeline returns the build stages in dependency order. All stages
// share one Report, Replacer and State.
func NewPipeline(opts Options) ([]Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	return []Operation{
		NewSeedOperation(opts),
		NewSubstituteOperation(opts),
		NewTemplatizeOperation(opts),
		NewConditionalOperation(opts),
		NewMergeOperation(opts),
	}, nil
}

// 🔨 Build runs the whole pipeline against opts.FS
func Build(ctx context.Context, opts Options) error {
	ops, err := NewPipeline(opts)
	if err != nil {
		return errors.Errorf("creating pipeline: %w", err)
	}
	return NewRunner(opts.Layout.TemplateDir).Run(ctx, ops...)
}
