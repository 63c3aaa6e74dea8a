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
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/pkg/config"
	"github.com/walteh/buildtemplate/pkg/status"
	"github.com/walteh/buildtemplate/pkg/tree"
)

// 🏷️ NewTemplatizeOperation marks changed files and renames paths whose
// names still hold a keyword literal
func NewTemplatizeOperation(opts Options) Operation {
	return &templatizeOperation{BaseOperation: NewBaseOperation(opts)}
}

type templatizeOperation struct {
	BaseOperation
}

func (op *templatizeOperation) Name() string { return "templatize" }

func (op *templatizeOperation) Execute(ctx context.Context) error {
	if err := op.mark(ctx); err != nil {
		return err
	}
	return op.renameUntilStable(ctx)
}

func (op *templatizeOperation) mark(ctx context.Context) error {
	suffix := op.Layout.TemplateSuffix
	for _, p := range op.State.Changed.Paths() {
		if strings.HasSuffix(p, suffix) {
			continue
		}
		target := p + suffix
		if err := tree.Move(op.FS, p, target); err != nil {
			if errors.Is(err, tree.ErrSourceMissing) {
				op.skip(ctx, p, err)
				continue
			}
			return errors.Errorf("marking %s: %w", p, err)
		}
		op.record(ctx, status.Event{Kind: status.KindMarked, Path: p, Target: target})
	}
	return nil
}

// match is the first keyword literal found in a base name
type match struct {
	entry   tree.Entry
	keyword config.Keyword
}

func (op *templatizeOperation) firstMatch() (*match, int, error) {
	entries, err := tree.List(op.FS, op.Layout.TemplateDir, op.ignore())
	if err != nil {
		return nil, 0, errors.Errorf("listing template dir: %w", err)
	}
	for _, e := range entries {
		for _, kw := range op.Config.Keywords {
			if strings.Contains(e.Name(), kw.Literal) {
				return &match{entry: e, keyword: kw}, len(entries), nil
			}
		}
	}
	return nil, len(entries), nil
}

// renameUntilStable renames one path per scan and rescans from the top
// until a scan finds nothing. Renames are capped at paths × keywords + 1,
// with paths counted on the first scan.
func (op *templatizeOperation) renameUntilStable(ctx context.Context) error {
	limit := -1
	renames := 0
	var last string

	for {
		m, total, err := op.firstMatch()
		if err != nil {
			return err
		}
		if limit < 0 {
			limit = total*len(op.Config.Keywords) + 1
		}
		if m == nil {
			return nil
		}
		if renames >= limit {
			return errors.Errorf("%w after %d renames, last %s", ErrNoConvergence, renames, last)
		}
		renames++

		name := strings.ReplaceAll(m.entry.Name(), m.keyword.Literal, config.Placeholder(m.keyword.Key))
		target := path.Join(path.Dir(m.entry.Path), name)

		if err := tree.Move(op.FS, m.entry.Path, target); err != nil {
			if errors.Is(err, tree.ErrSourceMissing) {
				op.skip(ctx, m.entry.Path, err)
				continue
			}
			return errors.Errorf("renaming %s: %w", m.entry.Path, err)
		}

		last = m.entry.Path + " -> " + target
		op.record(ctx, status.Event{
			Kind:   status.KindRenamed,
			Path:   m.entry.Path,
			Target: target,
			Detail: m.keyword.Key,
		})
	}
}
