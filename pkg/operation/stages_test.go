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
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/buildtemplate/pkg/config"
	"github.com/walteh/buildtemplate/pkg/status"
	"github.com/walteh/buildtemplate/pkg/tree"
)

func TestSeedOperation(t *testing.T) {
	ctx := newTestContext(t)
	fs := osfs.New(t.TempDir())
	writeFiles(t, fs, map[string]string{
		"src/pkg/a.py":               "a\n",
		"src/pkg/__pycache__/a.pyc":  "\x00",
		"src/pkg/.DS_Store":          "\x00",
		"src/build_template/main.py": "main\n",
		"pyproject.toml":             "toml\n",
		"template/stale.txt":         "left over from a previous run\n",
	})

	report := status.NewReport(nil)
	op := NewSeedOperation(Options{
		FS:     fs,
		Layout: config.DefaultLayout(),
		Config: testConfig(),
		Report: report,
	})
	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, map[string]string{
		"template/src/pkg/a.py":   "a\n",
		"template/pyproject.toml": "toml\n",
	}, readTree(t, fs, "template"))

	counts := report.Counts()
	assert.Equal(t, 2, counts[status.KindSeeded])
	assert.Equal(t, 4, counts[status.KindSkipped], "tests, .gitignore, .pre-commit-config.yaml and .github are missing")
	assert.Equal(t, 1, counts[status.KindExcluded])
}

func TestSubstituteOperation(t *testing.T) {
	ctx := newTestContext(t)
	fs := osfs.New(t.TempDir())
	writeFiles(t, fs, map[string]string{
		"template/a.txt":            "fractal_tasks_template and fractal_tasks_template\n",
		"template/b.txt":            "untouched\n",
		"template/ci.yml":           "python: ${{ matrix.python-version }}\n",
		"template/uncomment.yaml":   "# --- #key: value\n",
		"template/cache/x.pyc":      "\xff\xfe",
		"template/both.md":          "fractal_tasks_template # --- #\n",
		"template/__pycache__/y.md": "fractal_tasks_template\n",
	})

	state := NewState()
	report := status.NewReport(nil)
	op := NewSubstituteOperation(Options{
		FS:     fs,
		Layout: config.DefaultLayout(),
		Config: testConfig(),
		Report: report,
		State:  state,
	})
	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, map[string]string{
		"template/a.txt":            "{{ project_name }} and {{ project_name }}\n",
		"template/b.txt":            "untouched\n",
		"template/ci.yml":           "python: ${{ '{{' }} matrix.python-version {{ '}}' }}\n",
		"template/uncomment.yaml":   "key: value\n",
		"template/cache/x.pyc":      "\xff\xfe",
		"template/both.md":          "{{ project_name }} \n",
		"template/__pycache__/y.md": "fractal_tasks_template\n",
	}, readTree(t, fs, "template"))

	assert.Equal(t, []string{
		"template/a.txt",
		"template/both.md",
		"template/ci.yml",
		"template/uncomment.yaml",
	}, state.Changed.Paths(), "changed files are listed once, keyword pass first")

	assert.Equal(t, 5, report.Counts()[status.KindSubstituted], "both.md changes in both passes")
}

func TestTemplatizeOperation(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		keywords []config.Keyword
		changed  []string
		want     []string
		wantErr  error
	}{
		{
			name:     "marks_changed_files_once",
			files:    map[string]string{"template/a.py": "", "template/b.py.jinja": "", "template/c.py": ""},
			keywords: []config.Keyword{{Key: "project_name", Literal: "fractal_tasks_template"}},
			changed:  []string{"template/a.py", "template/b.py.jinja"},
			want:     []string{"template/a.py.jinja", "template/b.py.jinja", "template/c.py"},
		},
		{
			name: "renames_directories_then_children",
			files: map[string]string{
				"template/fractal_tasks_template/fractal_tasks_template_task.py": "",
				"template/fractal_tasks_template/other.py":                       "",
			},
			keywords: []config.Keyword{{Key: "project_name", Literal: "fractal_tasks_template"}},
			want: []string{
				"template/{{ project_name }}/other.py",
				"template/{{ project_name }}/{{ project_name }}_task.py",
			},
		},
		{
			name:  "applies_keywords_in_order",
			files: map[string]string{"template/acme_widget.py": ""},
			keywords: []config.Keyword{
				{Key: "org", Literal: "acme"},
				{Key: "thing", Literal: "widget"},
			},
			want: []string{"template/{{ org }}_{{ thing }}.py"},
		},
		{
			name:     "placeholder_containing_literal_never_converges",
			files:    map[string]string{"template/package.py": ""},
			keywords: []config.Keyword{{Key: "package_name", Literal: "package"}},
			wantErr:  ErrNoConvergence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			fs := osfs.New(t.TempDir())
			writeFiles(t, fs, tt.files)

			state := NewState()
			for _, p := range tt.changed {
				state.Changed.Add(p)
			}

			op := NewTemplatizeOperation(Options{
				FS:     fs,
				Layout: config.DefaultLayout(),
				Config: &config.Config{Keywords: tt.keywords},
				State:  state,
			})
			err := op.Execute(ctx)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			files, err := tree.Files(fs, "template", nil)
			require.NoError(t, err)
			got := make([]string, 0, len(files))
			for _, f := range files {
				got = append(got, f.Path)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConditionalOperation(t *testing.T) {
	ctx := newTestContext(t)
	fs := osfs.New(t.TempDir())
	writeFiles(t, fs, map[string]string{
		"template/tasks/thresholding_label_task.py": "t\n",
		"template/tasks/gaussian_blur_task.py":      "g\n",
		"template/tasks/measure_features.py.jinja":  "m\n",
		"template/thresholding/keep.txt":            "k\n",
	})

	op := NewConditionalOperation(Options{
		FS:     fs,
		Layout: config.DefaultLayout(),
		Config: &config.Config{Conditionals: []config.Conditional{
			{Substring: "thresholding_label", Guard: "include_segmentation_task"},
			{Substring: "measure", Guard: "include_measurement_task"},
		}},
	})
	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, map[string]string{
		"template/thresholding/keep.txt":                                                            "k\n",
		"template/tasks/gaussian_blur_task.py":                                                      "g\n",
		"template/tasks/{% if include_measurement_task %}measure_features.py{% endif %}.jinja":      "m\n",
		"template/tasks/{% if include_segmentation_task %}thresholding_label_task{% endif %}.jinja": "t\n",
	}, readTree(t, fs, "template"))
}

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"task.py", "task"},
		{"task.py.jinja", "task.py"},
		{".gitignore", ".gitignore"},
		{".pre-commit-config.yaml", ".pre-commit-config"},
		{"Makefile", "Makefile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.name))
		})
	}
}

func TestMergeOperation(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    map[string]string
		wantErr error
	}{
		{
			name: "overlay_replaces_first_match_in_place",
			files: map[string]string{
				"template/a/b/config.yaml":    "old a\n",
				"template/c/config.yaml":      "old c\n",
				"static_template/config.yaml": "static\n",
			},
			want: map[string]string{
				"template/a/b/config.yaml": "static\n",
				"template/c/config.yaml":   "old c\n",
			},
		},
		{
			name: "unmatched_overlay_goes_to_root",
			files: map[string]string{
				"template/src/a.py":       "a\n",
				"static_template/LICENSE": "license\n",
			},
			want: map[string]string{
				"template/LICENSE":  "license\n",
				"template/src/a.py": "a\n",
			},
		},
		{
			name: "missing_static_dir_is_noop",
			files: map[string]string{
				"template/src/a.py": "a\n",
			},
			want: map[string]string{
				"template/src/a.py": "a\n",
			},
		},
		{
			name: "nested_overlay_is_rejected_before_merging",
			files: map[string]string{
				"template/LICENSE":          "old\n",
				"static_template/LICENSE":   "new\n",
				"static_template/docs/x.md": "x\n",
			},
			want: map[string]string{
				"template/LICENSE": "old\n",
			},
			wantErr: ErrUnsupportedStructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			fs := osfs.New(t.TempDir())
			writeFiles(t, fs, tt.files)

			op := NewMergeOperation(Options{
				FS:     fs,
				Layout: config.DefaultLayout(),
				Config: testConfig(),
			})
			err := op.Execute(ctx)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, readTree(t, fs, "template"))
		})
	}
}
