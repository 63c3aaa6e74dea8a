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

package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/cmd/buildtemplate/opts"
	"github.com/walteh/buildtemplate/pkg/config"
	"github.com/walteh/buildtemplate/pkg/drift"
	"github.com/walteh/buildtemplate/pkg/log"
	"github.com/walteh/buildtemplate/pkg/operation"
	"github.com/walteh/buildtemplate/pkg/status"
	"github.com/walteh/buildtemplate/pkg/tree"
)

// Build loads the keyword map, rebuilds the template and optionally checks it for drift
func Build(ctx context.Context, o *opts.RootOpts, out io.Writer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	zlog := zerolog.Ctx(ctx).With().Str("command", "build").Logger()
	ctx = zlog.WithContext(ctx)

	console := log.NewWithZerolog(out, zlog)
	ctx = log.NewContext(ctx, console)

	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	root, err := filepath.Abs(o.Root)
	if err != nil {
		return errors.Errorf("resolving root: %w", err)
	}
	fs := osfs.New(root)

	// the tree backend compares against whatever is on disk before seeding
	var checker drift.Checker
	if o.Check {
		checker, err = newChecker(o, fs, root)
		if err != nil {
			return err
		}
	}

	console.Header(fmt.Sprintf("building %s from %s", o.Layout.TemplateDir, o.Layout.SourceDir))

	report := status.NewReport(nil)
	err = operation.Build(ctx, operation.Options{
		FS:     fs,
		Layout: o.Layout,
		Config: cfg,
		Report: report,
	})
	if err != nil {
		return errors.Errorf("building template: %w", err)
	}

	summary, err := report.Table()
	if err != nil {
		return err
	}
	console.LogNewline()
	fmt.Fprintln(out, summary)
	console.Success("Build complete.")

	if checker == nil {
		return nil
	}

	res, err := drift.Verify(ctx, checker)
	if err != nil {
		if errors.Is(err, drift.ErrDrift) {
			console.Error("Check failed: template directory has changed.")
			if o.Debug && res != nil && res.Details != "" {
				fmt.Fprintln(out, res.Details)
			}
		}
		return err
	}
	console.Success("Check succeeded: template directory is up to date.")
	return nil
}

func newChecker(o *opts.RootOpts, fs billy.Filesystem, root string) (drift.Checker, error) {
	if o.CheckBackend == opts.BackendTree {
		checker, err := drift.NewTreeChecker(fs, o.Layout.TemplateDir, tree.Ignore(o.Layout.IgnorePatterns))
		if err != nil {
			return nil, errors.Errorf("creating tree checker: %w", err)
		}
		return checker, nil
	}
	return drift.NewGitChecker(root, o.Layout.TemplateDir), nil
}
