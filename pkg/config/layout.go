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

package config

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 📁 Layout describes where the pipeline reads and writes. All paths are
// slash separated and relative to the invocation root.
type Layout struct {
	SourceDir      string   // Working project copied into the template
	TemplateDir    string   // Rebuilt from scratch on every run
	StaticDir      string   // Flat overlay applied last
	Include        []string // Copied from SourceDir into TemplateDir
	Exclude        []string // Removed from TemplateDir after copying
	IgnorePatterns []string // Base-name globs skipped by every traversal
	TemplateSuffix string   // Marks files holding placeholder syntax
}

// DefaultLayout returns the layout of a fractal tasks template project.
func DefaultLayout() Layout {
	return Layout{
		SourceDir:   ".",
		TemplateDir: "template",
		StaticDir:   "static_template",
		Include: []string{
			"src",
			"tests",
			"pyproject.toml",
			".gitignore",
			".pre-commit-config.yaml",
			".github",
		},
		Exclude: []string{
			"src/build_template",
			"tests/copier",
			".github/workflows/copier_ci.yml",
			".github/workflows/github_release.yaml",
			".github/workflows/github_release.yml",
		},
		IgnorePatterns: []string{
			"*.pyc",
			"*.pyo",
			"*.pyd",
			"__pycache__",
			".DS_Store",
			".ipynb_checkpoints",
		},
		TemplateSuffix: ".jinja",
	}
}

// 🔍 Validate checks that every path stays inside the root
func (l Layout) Validate() error {
	dirs := map[string]string{
		"source_dir":   l.SourceDir,
		"template_dir": l.TemplateDir,
		"static_dir":   l.StaticDir,
	}
	for name, p := range dirs {
		if err := checkRelative(name, p); err != nil {
			return err
		}
	}

	if path.Clean(l.TemplateDir) == "." {
		return errors.Errorf("template_dir must not be the root")
	}
	if path.Clean(l.TemplateDir) == path.Clean(l.SourceDir) {
		return errors.Errorf("template_dir must differ from source_dir")
	}

	for _, p := range l.Include {
		if err := checkRelative("include", p); err != nil {
			return err
		}
	}
	for _, p := range l.Exclude {
		if err := checkRelative("exclude", p); err != nil {
			return err
		}
	}
	for _, pattern := range l.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore pattern %q is invalid", pattern)
		}
	}
	if !strings.HasPrefix(l.TemplateSuffix, ".") || len(l.TemplateSuffix) < 2 {
		return errors.Errorf("template suffix %q must start with a dot", l.TemplateSuffix)
	}

	return nil
}

func checkRelative(name, p string) error {
	if p == "" {
		return errors.Errorf("%s is required", name)
	}
	if path.IsAbs(p) {
		return errors.Errorf("%s %q must be relative", name, p)
	}
	clean := path.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Errorf("%s %q escapes the root", name, p)
	}
	return nil
}
