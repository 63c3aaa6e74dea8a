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

	"github.com/go-git/go-billy/v5"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/pkg/config"
	"github.com/walteh/buildtemplate/pkg/log"
	"github.com/walteh/buildtemplate/pkg/status"
	"github.com/walteh/buildtemplate/pkg/text"
	"github.com/walteh/buildtemplate/pkg/tree"
)

var (
	// ErrUnsupportedStructure is returned when the static overlay is not flat
	ErrUnsupportedStructure = errors.Base("directory structures in the static overlay are not supported")
	// ErrNoConvergence is returned when the rename loop hits its iteration cap
	ErrNoConvergence = errors.Base("filename substitution did not converge")
)

// 🎯 Operation is one stage of the template build
type Operation interface {
	// Name identifies the stage in logs
	Name() string
	// Execute runs the stage against the destination tree
	Execute(ctx context.Context) error
}

// 🗂️ State is what stages hand to each other besides the tree itself
type State struct {
	// Changed holds destination files rewritten by substitution
	Changed *status.ChangeSet
}

// NewState creates an empty State
func NewState() *State {
	return &State{Changed: status.NewChangeSet()}
}

// 🔧 Options contains everything a stage needs
type Options struct {
	// FS is rooted at the invocation root
	FS billy.Filesystem
	// Layout locates the source, template and static directories
	Layout config.Layout
	// Config holds the keyword and conditional maps
	Config *config.Config
	// Report collects what every stage did
	Report *status.Report
	// Replacer rewrites file content
	Replacer text.TextReplacer
	// State is shared between stages of one build
	State *State
}

func (o Options) withDefaults() Options {
	if o.Report == nil {
		o.Report = status.NewReport(nil)
	}
	if o.Replacer == nil {
		o.Replacer = text.NewSimpleTextReplacer()
	}
	if o.State == nil {
		o.State = NewState()
	}
	return o
}

// Validate checks that the options can drive a build
func (o Options) Validate() error {
	if o.FS == nil {
		return errors.Errorf("filesystem is required")
	}
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if err := o.Config.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}
	if err := o.Layout.Validate(); err != nil {
		return errors.Errorf("validating layout: %w", err)
	}
	return nil
}

// 🏗️ BaseOperation provides common functionality for stages
type BaseOperation struct {
	Options
}

// NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts.withDefaults()}
}

func (op *BaseOperation) ignore() tree.Ignore {
	return tree.Ignore(op.Layout.IgnorePatterns)
}

// record stores an event in the report and prints it
func (op *BaseOperation) record(ctx context.Context, ev status.Event) {
	op.Report.Record(ctx, ev)
	log.FromContext(ctx).LogEvent(ctx, ev)
}

// skip records a non-fatal problem and keeps going
func (op *BaseOperation) skip(ctx context.Context, path string, err error) {
	log.FromContext(ctx).Warningf("%s: %v; skipping", path, err)
	op.record(ctx, status.Event{Kind: status.KindSkipped, Path: path, Detail: err.Error()})
}
