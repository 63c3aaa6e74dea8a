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

package tree

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeFiles(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644), "writing %s", path)
	}
}

func paths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestList(t *testing.T) {
	fs := osfs.New(t.TempDir())
	writeFiles(t, fs, map[string]string{
		"root/b.txt":                       "b",
		"root/a/one.py":                    "1",
		"root/a/__pycache__/one.pyc":       "x",
		"root/a/two.pyc":                   "x",
		"root/.DS_Store":                   "x",
		"root/a/deep/.ipynb_checkpoints/c": "x",
	})

	ignore := Ignore{"*.pyc", "__pycache__", ".DS_Store", ".ipynb_checkpoints"}
	entries, err := List(fs, "root", ignore)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"root/a",
		"root/a/deep",
		"root/a/one.py",
		"root/b.txt",
	}, paths(entries), "ignored names and their subtrees should be skipped")

	assert.True(t, entries[0].IsDir)
	assert.Equal(t, "a", entries[0].Name())

	files, err := Files(fs, "root", ignore)
	require.NoError(t, err)
	assert.Equal(t, []string{"root/a/one.py", "root/b.txt"}, paths(files))
}

func TestListMissingRoot(t *testing.T) {
	_, err := List(memfs.New(), "missing", nil)
	require.Error(t, err)
}

func TestCopyAny(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		src     string
		dstDir  string
		want    map[string]string
		missing []string
		wantErr error
	}{
		{
			name:   "copy_file",
			files:  map[string]string{"pyproject.toml": "name"},
			src:    "pyproject.toml",
			dstDir: "template",
			want:   map[string]string{"template/pyproject.toml": "name"},
		},
		{
			name: "copy_directory_replaces_existing",
			files: map[string]string{
				"src/pkg/a.py":          "a",
				"src/pkg/__pycache__/x": "cache",
				"template/src/stale.py": "stale",
			},
			src:     "src",
			dstDir:  "template",
			want:    map[string]string{"template/src/pkg/a.py": "a"},
			missing: []string{"template/src/stale.py", "template/src/pkg/__pycache__"},
		},
		{
			name:    "missing_source",
			src:     "nope",
			dstDir:  "template",
			wantErr: ErrSourceMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := osfs.New(t.TempDir())
			writeFiles(t, fs, tt.files)

			err := CopyAny(fs, tt.src, tt.dstDir, Ignore{"__pycache__"})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)

			for path, content := range tt.want {
				data, err := util.ReadFile(fs, path)
				require.NoError(t, err, "reading %s", path)
				assert.Equal(t, content, string(data))
			}
			for _, path := range tt.missing {
				ok, err := Exists(fs, path)
				require.NoError(t, err)
				assert.False(t, ok, "%s should not exist", path)
			}
		})
	}
}

func TestEnsureRemoved(t *testing.T) {
	fs := osfs.New(t.TempDir())
	writeFiles(t, fs, map[string]string{"a/b/c.txt": "c", "d.txt": "d"})

	require.NoError(t, EnsureRemoved(fs, "a"))
	require.NoError(t, EnsureRemoved(fs, "d.txt"))
	require.NoError(t, EnsureRemoved(fs, "never-existed"), "absence is not an error")

	for _, p := range []string{"a", "d.txt"} {
		ok, err := Exists(fs, p)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestMove(t *testing.T) {
	t.Run("rename_directory_moves_subtree", func(t *testing.T) {
		fs := osfs.New(t.TempDir())
		writeFiles(t, fs, map[string]string{"t/old/x.py": "x"})

		require.NoError(t, Move(fs, "t/old", "t/new"))

		data, err := util.ReadFile(fs, "t/new/x.py")
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
		ok, _ := Exists(fs, "t/old")
		assert.False(t, ok)
	})

	t.Run("overwrites_existing_directory", func(t *testing.T) {
		fs := osfs.New(t.TempDir())
		writeFiles(t, fs, map[string]string{"t/old/x.py": "x", "t/new/stale.py": "s"})

		require.NoError(t, Move(fs, "t/old", "t/new"))

		ok, _ := Exists(fs, "t/new/stale.py")
		assert.False(t, ok, "target directory should be replaced")
		ok, _ = Exists(fs, "t/new/x.py")
		assert.True(t, ok)
	})

	t.Run("overwrites_existing_file", func(t *testing.T) {
		fs := osfs.New(t.TempDir())
		writeFiles(t, fs, map[string]string{"a.txt": "new", "b.txt": "old"})

		require.NoError(t, Move(fs, "a.txt", "b.txt"))

		data, err := util.ReadFile(fs, "b.txt")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("same_path_is_noop", func(t *testing.T) {
		fs := memfs.New()
		writeFiles(t, fs, map[string]string{"a.txt": "a"})
		require.NoError(t, Move(fs, "a.txt", "./a.txt"))
		ok, _ := Exists(fs, "a.txt")
		assert.True(t, ok)
	})

	t.Run("missing_source", func(t *testing.T) {
		err := Move(memfs.New(), "nope", "other")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSourceMissing))
	})
}

func TestWriteFileKeepsContent(t *testing.T) {
	fs := memfs.New()
	writeFiles(t, fs, map[string]string{"a.txt": "one"})

	require.NoError(t, WriteFile(fs, "a.txt", []byte("two")))
	data, err := ReadFile(fs, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
