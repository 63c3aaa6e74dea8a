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

// 📌 NewMergeOperation overlays the static directory onto the template
func NewMergeOperation(opts Options) Operation {
	return &mergeOperation{BaseOperation: NewBaseOperation(opts)}
}

type mergeOperation struct {
	BaseOperation
}

func (op *mergeOperation) Name() string { return "merge" }

func (op *mergeOperation) Execute(ctx context.Context) error {
	staticDir := op.Layout.StaticDir

	exists, err := tree.Exists(op.FS, staticDir)
	if err != nil {
		return err
	}
	if !exists {
		op.skip(ctx, staticDir, tree.ErrSourceMissing)
		return nil
	}

	overlay, err := tree.List(op.FS, staticDir, op.ignore())
	if err != nil {
		return errors.Errorf("listing static dir: %w", err)
	}
	for _, e := range overlay {
		if e.IsDir {
			return errors.Errorf("%w: %s", ErrUnsupportedStructure, e.Path)
		}
	}

	// taken once so files copied in below are never matched
	current, err := tree.Files(op.FS, op.Layout.TemplateDir, op.ignore())
	if err != nil {
		return errors.Errorf("listing template files: %w", err)
	}

	for _, src := range overlay {
		if found, ok := findByName(current, src.Name()); ok {
			target := path.Join(path.Dir(found.Path), src.Name())
			if err := tree.EnsureRemoved(op.FS, found.Path); err != nil {
				return err
			}
			if err := tree.CopyFile(op.FS, src.Path, target); err != nil {
				return errors.Errorf("overlaying %s: %w", src.Path, err)
			}
			op.record(ctx, status.Event{Kind: status.KindOverlaid, Path: found.Path, Target: target})
			continue
		}

		target := path.Join(op.Layout.TemplateDir, src.Name())
		if err := tree.CopyFile(op.FS, src.Path, target); err != nil {
			return errors.Errorf("adding %s: %w", src.Path, err)
		}
		op.record(ctx, status.Event{Kind: status.KindAdded, Path: src.Path, Target: target})
	}
	return nil
}

// findByName returns the first entry, in path order, with the given base name
func findByName(entries []tree.Entry, name string) (tree.Entry, bool) {
	for _, e := range entries {
		if e.Name() == name {
			return e, true
		}
	}
	return tree.Entry{}, false
}
