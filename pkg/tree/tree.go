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

// Package tree holds the filesystem primitives the template pipeline is
// built from. Every function works on a billy.Filesystem so the pipeline
// runs the same against the real disk and an in-memory tree.
package tree

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gitlab.com/tozd/go/errors"
)

// ErrSourceMissing is returned when the path to copy or move does not exist
var ErrSourceMissing = errors.Base("source path does not exist")

// 🙈 Ignore holds base-name glob patterns skipped by every traversal
type Ignore []string

// Match reports whether the base name of path matches any pattern
func (ig Ignore) Match(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range ig {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// 📄 Entry is one path found below a root
type Entry struct {
	Path  string      // Path relative to the filesystem root
	IsDir bool        // Whether this is a directory
	Mode  os.FileMode // File permissions
}

// Name returns the base name of the entry
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// List returns every path below root, sorted so parents precede children.
// Ignored directories are skipped together with their subtree.
func List(fs billy.Filesystem, root string, ignore Ignore) ([]Entry, error) {
	var out []Entry
	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if filepath.Clean(path) == filepath.Clean(root) {
			return nil
		}
		if ignore.Match(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		out = append(out, Entry{Path: path, IsDir: info.IsDir(), Mode: info.Mode()})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Files returns only the regular files of List
func Files(fs billy.Filesystem, root string, ignore Ignore) ([]Entry, error) {
	all, err := List(fs, root, ignore)
	if err != nil {
		return nil, err
	}
	files := all[:0]
	for _, e := range all {
		if !e.IsDir {
			files = append(files, e)
		}
	}
	return files, nil
}

// Exists reports whether path exists
func Exists(fs billy.Filesystem, path string) (bool, error) {
	_, err := fs.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking %s: %w", path, err)
}

// CopyAny copies a file or directory into dstDir, keeping its base name.
// A directory already present at the target is replaced, never merged.
func CopyAny(fs billy.Filesystem, src, dstDir string, ignore Ignore) error {
	info, err := fs.Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return errors.Errorf("checking %s: %w", src, err)
	}

	dst := filepath.Join(dstDir, filepath.Base(src))
	if !info.IsDir() {
		if err := fs.MkdirAll(dstDir, 0o755); err != nil {
			return errors.Errorf("creating directory %s: %w", dstDir, err)
		}
		return copyFile(fs, src, dst, info)
	}

	if err := EnsureRemoved(fs, dst); err != nil {
		return err
	}
	return copyTree(fs, src, dst, ignore)
}

func copyTree(fs billy.Filesystem, src, dst string, ignore Ignore) error {
	info, err := fs.Lstat(src)
	if err != nil {
		return errors.Errorf("checking %s: %w", src, err)
	}
	if err := fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("creating directory %s: %w", dst, err)
	}

	entries, err := List(fs, src, ignore)
	if err != nil {
		return err
	}
	for _, e := range entries {
		rel, err := filepath.Rel(src, e.Path)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", e.Path, err)
		}
		target := filepath.Join(dst, rel)
		if e.IsDir {
			if err := fs.MkdirAll(target, e.Mode.Perm()); err != nil {
				return errors.Errorf("creating directory %s: %w", target, err)
			}
			continue
		}
		fi, err := fs.Stat(e.Path)
		if err != nil {
			return errors.Errorf("checking %s: %w", e.Path, err)
		}
		if err := copyFile(fs, e.Path, target, fi); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(fs billy.Filesystem, src, dst string, info os.FileInfo) error {
	source, err := fs.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying %s: %w", src, err)
	}
	if err := destination.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dst, err)
	}

	if ch, ok := fs.(billy.Change); ok {
		if err := ch.Chmod(dst, info.Mode().Perm()); err != nil {
			return errors.Errorf("setting mode of %s: %w", dst, err)
		}
		if err := ch.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
			return errors.Errorf("setting times of %s: %w", dst, err)
		}
	}
	return nil
}

// CopyFile copies a single file to an explicit target path
func CopyFile(fs billy.Filesystem, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return errors.Errorf("checking %s: %w", src, err)
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Errorf("creating directory %s: %w", filepath.Dir(dst), err)
	}
	return copyFile(fs, src, dst, info)
}

// EnsureRemoved deletes path recursively; a missing path is not an error
func EnsureRemoved(fs billy.Filesystem, path string) error {
	if err := util.RemoveAll(fs, path); err != nil {
		return errors.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Move renames oldPath to newPath, replacing whatever is at newPath.
func Move(fs billy.Filesystem, oldPath, newPath string) error {
	if filepath.Clean(oldPath) == filepath.Clean(newPath) {
		return nil
	}

	if _, err := fs.Lstat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrSourceMissing, oldPath)
		}
		return errors.Errorf("checking %s: %w", oldPath, err)
	}

	if err := fs.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return errors.Errorf("creating directory %s: %w", filepath.Dir(newPath), err)
	}
	if err := EnsureRemoved(fs, newPath); err != nil {
		return err
	}
	if err := fs.Rename(oldPath, newPath); err != nil {
		return errors.Errorf("renaming %s -> %s: %w", oldPath, newPath, err)
	}
	return nil
}

// ReadFile reads a whole file
func ReadFile(fs billy.Filesystem, path string) ([]byte, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteFile overwrites an existing file keeping its permissions
func WriteFile(fs billy.Filesystem, path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := util.WriteFile(fs, path, data, perm); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
