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
	"bytes"
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/pkg/status"
	"github.com/walteh/buildtemplate/pkg/text"
	"github.com/walteh/buildtemplate/pkg/tree"
)

// 📝 NewSubstituteOperation rewrites literals into placeholders inside files
func NewSubstituteOperation(opts Options) Operation {
	return &substituteOperation{BaseOperation: NewBaseOperation(opts)}
}

type substituteOperation struct {
	BaseOperation
}

func (op *substituteOperation) Name() string { return "substitute" }

func (op *substituteOperation) Execute(ctx context.Context) error {
	passes := []struct {
		name  string
		rules []text.Rule
	}{
		{"keywords", text.KeywordRules(op.Config)},
		{"fixups", text.FixupRules()},
	}

	for _, pass := range passes {
		if err := op.Replacer.ValidateRules(pass.rules); err != nil {
			return errors.Errorf("validating %s rules: %w", pass.name, err)
		}
		if err := op.apply(ctx, pass.name, pass.rules); err != nil {
			return err
		}
	}
	return nil
}

// apply runs every rule, in order, over each file under the template dir
func (op *substituteOperation) apply(ctx context.Context, pass string, rules []text.Rule) error {
	files, err := tree.Files(op.FS, op.Layout.TemplateDir, op.ignore())
	if err != nil {
		return errors.Errorf("listing template files: %w", err)
	}

	for _, f := range files {
		content, err := tree.ReadFile(op.FS, f.Path)
		if err != nil {
			return err
		}

		result, err := op.Replacer.ReplaceText(ctx, bytes.NewReader(content), rules)
		if err != nil {
			return errors.Errorf("replacing text in %s: %w", f.Path, err)
		}
		if !result.WasModified {
			continue
		}

		if err := tree.WriteFile(op.FS, f.Path, result.ModifiedContent); err != nil {
			return err
		}
		op.State.Changed.Add(f.Path)
		op.record(ctx, status.Event{
			Kind:   status.KindSubstituted,
			Path:   f.Path,
			Detail: pass,
			Count:  result.ReplacementCount,
		})
	}
	return nil
}
