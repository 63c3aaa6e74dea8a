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
	"os/exec"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// CommandRunner runs name with args in dir and returns combined output and
// the exit code. err is only set when the command could not run at all.
type CommandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, int, error)

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, dir string, name string, args ...string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, exitErr.ExitCode(), nil
		}
		return out, -1, errors.Errorf("running %s: %w", name, err)
	}
	return out, 0, nil
}

// 🌿 GitChecker asks git whether the template differs from the index
type GitChecker struct {
	Root string        // Working tree root
	Dir  string        // Template directory relative to Root
	Run  CommandRunner // Defaults to ExecRunner
}

// NewGitChecker creates a GitChecker using ExecRunner
func NewGitChecker(root, dir string) *GitChecker {
	return &GitChecker{Root: root, Dir: dir, Run: ExecRunner}
}

func (g *GitChecker) Name() string { return "git" }

// Check runs git diff --exit-code on the template directory. A failing git
// counts as drift.
func (g *GitChecker) Check(ctx context.Context) (*Result, error) {
	run := g.Run
	if run == nil {
		run = ExecRunner
	}

	out, code, err := run(ctx, g.Root, "git", "diff", "--exit-code", "--", g.Dir)
	if err != nil {
		return &Result{Clean: false, Details: err.Error()}, nil
	}
	if code == 0 {
		return &Result{Clean: true}, nil
	}
	return &Result{Clean: false, Details: strings.TrimSpace(string(out))}, nil
}
