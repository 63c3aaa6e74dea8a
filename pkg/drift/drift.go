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

// Package drift decides whether a freshly built template differs from the
// copy that was there before, either through git or by comparing trees.
package drift

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrDrift is returned when the built template differs from the committed one
var ErrDrift = errors.Base("template directory has changed")

// 🔍 Checker compares the built template against a reference
type Checker interface {
	// Name identifies the backend in messages
	Name() string
	// Check reports whether the template is unchanged
	Check(ctx context.Context) (*Result, error)
}

// 📋 Result is the outcome of one check
type Result struct {
	Clean   bool     // No difference found
	Files   []string // Paths that differ, when the backend knows them
	Details string   // Diff output or failure reason
}

// ✅ Verify runs c and turns a dirty result into ErrDrift
func Verify(ctx context.Context, c Checker) (*Result, error) {
	res, err := c.Check(ctx)
	if err != nil {
		return nil, errors.Errorf("running %s check: %w", c.Name(), err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("backend", c.Name()).
		Bool("clean", res.Clean).
		Strs("files", res.Files).
		Msg("drift check finished")

	if !res.Clean {
		return res, errors.Errorf("%w (%s): %s", ErrDrift, c.Name(), summary(res))
	}
	return res, nil
}

func summary(res *Result) string {
	if len(res.Files) > 0 {
		return strings.Join(res.Files, ", ")
	}
	line, _, _ := strings.Cut(strings.TrimSpace(res.Details), "\n")
	if line == "" {
		return "differences found"
	}
	return line
}
