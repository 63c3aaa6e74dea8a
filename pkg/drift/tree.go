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

package drift

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/pkg/tree"
)

// 📸 Snapshot maps paths relative to a directory to file content
type Snapshot map[string][]byte

// TakeSnapshot reads every file below dir. A missing dir gives an empty snapshot.
func TakeSnapshot(fs billy.Filesystem, dir string, ignore tree.Ignore) (Snapshot, error) {
	snap := Snapshot{}

	exists, err := tree.Exists(fs, dir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return snap, nil
	}

	files, err := tree.Files(fs, dir, ignore)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", dir, err)
	}
	for _, f := range files {
		data, err := tree.ReadFile(fs, f.Path)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(dir, f.Path)
		if err != nil {
			return nil, errors.Errorf("relative path of %s: %w", f.Path, err)
		}
		snap[filepath.ToSlash(rel)] = data
	}
	return snap, nil
}

// 🌳 TreeChecker compares the template against a snapshot taken before the build
type TreeChecker struct {
	FS     billy.Filesystem
	Dir    string
	Ignore tree.Ignore
	Before Snapshot
}

// NewTreeChecker snapshots dir now so a later Check can compare against it
func NewTreeChecker(fs billy.Filesystem, dir string, ignore tree.Ignore) (*TreeChecker, error) {
	before, err := TakeSnapshot(fs, dir, ignore)
	if err != nil {
		return nil, errors.Errorf("taking snapshot: %w", err)
	}
	return &TreeChecker{FS: fs, Dir: dir, Ignore: ignore, Before: before}, nil
}

func (c *TreeChecker) Name() string { return "tree" }

func (c *TreeChecker) Check(ctx context.Context) (*Result, error) {
	after, err := TakeSnapshot(c.FS, c.Dir, c.Ignore)
	if err != nil {
		return nil, errors.Errorf("taking snapshot: %w", err)
	}
	return Compare(c.Before, after), nil
}

// Compare lists every path added, removed or modified between two snapshots
func Compare(before, after Snapshot) *Result {
	paths := make([]string, 0, len(before)+len(after))
	for p := range before {
		paths = append(paths, p)
	}
	for p := range after {
		if _, ok := before[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	dmp := diffmatchpatch.New()
	res := &Result{Clean: true}
	var details strings.Builder

	for _, p := range paths {
		old, hadOld := before[p]
		cur, hasCur := after[p]

		switch {
		case !hasCur:
			fmt.Fprintf(&details, "removed %s\n", p)
		case !hadOld:
			fmt.Fprintf(&details, "added %s\n", p)
		case string(old) != string(cur):
			diffs := dmp.DiffMain(string(old), string(cur), false)
			diffs = dmp.DiffCleanupSemantic(diffs)
			patch := dmp.PatchToText(dmp.PatchMake(string(old), diffs))
			fmt.Fprintf(&details, "modified %s\n%s", p, patch)
		default:
			continue
		}
		res.Clean = false
		res.Files = append(res.Files, p)
	}

	res.Details = details.String()
	return res
}
