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
	"path"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/pkg/status"
	"github.com/walteh/buildtemplate/pkg/tree"
)

// 🌱 NewSeedOperation recreates the template directory from the source tree
func NewSeedOperation(opts Options) Operation {
	return &seedOperation{BaseOperation: NewBaseOperation(opts)}
}

type seedOperation struct {
	BaseOperation
}

func (op *seedOperation) Name() string { return "seed" }

func (op *seedOperation) Execute(ctx context.Context) error {
	dst := op.Layout.TemplateDir

	if err := tree.EnsureRemoved(op.FS, dst); err != nil {
		return errors.Errorf("cleaning template directory: %w", err)
	}
	if err := op.FS.MkdirAll(dst, 0o755); err != nil {
		return errors.Errorf("creating template directory: %w", err)
	}

	for _, item := range op.Layout.Include {
		src := path.Join(op.Layout.SourceDir, item)
		if err := tree.CopyAny(op.FS, src, dst, op.ignore()); err != nil {
			if errors.Is(err, tree.ErrSourceMissing) {
				op.skip(ctx, src, err)
				continue
			}
			return errors.Errorf("copying %s: %w", src, err)
		}
		op.record(ctx, status.Event{
			Kind:   status.KindSeeded,
			Path:   src,
			Target: path.Join(dst, path.Base(src)),
		})
	}

	for _, item := range op.Layout.Exclude {
		target := path.Join(dst, item)
		exists, err := tree.Exists(op.FS, target)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := tree.EnsureRemoved(op.FS, target); err != nil {
			return errors.Errorf("excluding %s: %w", item, err)
		}
		op.record(ctx, status.Event{Kind: status.KindExcluded, Path: target})
	}

	return nil
}
