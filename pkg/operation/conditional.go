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

	"github.com/walteh/buildtemplate/pkg/status"
	"github.com/walteh/buildtemplate/pkg/tree"
)

// 🚦 NewConditionalOperation wraps matching file names in an if-guard
func NewConditionalOperation(opts Options) Operation {
	return &conditionalOperation{BaseOperation: NewBaseOperation(opts)}
}

type conditionalOperation struct {
	BaseOperation
}

func (op *conditionalOperation) Name() string { return "conditional" }

func (op *conditionalOperation) Execute(ctx context.Context) error {
	for _, cond := range op.Config.Conditionals {
		files, err := tree.Files(op.FS, op.Layout.TemplateDir, op.ignore())
		if err != nil {
			return errors.Errorf("listing template files: %w", err)
		}

		for _, f := range files {
			if !strings.Contains(f.Name(), cond.Substring) {
				continue
			}

			target := path.Join(path.Dir(f.Path), GuardedName(f.Name(), cond.Guard, op.Layout.TemplateSuffix))
			if err := tree.Move(op.FS, f.Path, target); err != nil {
				if errors.Is(err, tree.ErrSourceMissing) {
					op.skip(ctx, f.Path, err)
					continue
				}
				return errors.Errorf("wrapping %s: %w", f.Path, err)
			}
			op.record(ctx, status.Event{
				Kind:   status.KindWrapped,
				Path:   f.Path,
				Target: target,
				Detail: cond.Guard,
			})
		}
	}
	return nil
}

// GuardedName returns "{% if guard %}<stem>{% endif %}<suffix>"
func GuardedName(name, guard, suffix string) string {
	return "{% if " + guard + " %}" + Stem(name) + "{% endif %}" + suffix
}

// Stem strips the last extension of name. A leading dot does not start an
// extension, so ".gitignore" is its own stem.
func Stem(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name
	}
	return name[:i]
}
