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

package opts

import (
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/buildtemplate/pkg/config"
)

const (
	BackendGit  = "git"
	BackendTree = "tree"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile   string        // Keyword map file
	Root         string        // Invocation root holding source, template and static dirs
	Check        bool          // Fail when the rebuilt template differs
	CheckBackend string        // git or tree
	Debug        bool          // Debug level logging
	Layout       config.Layout // Directory layout, DefaultLayout unless a test overrides it
}

// Validate checks flag combinations
func (o *RootOpts) Validate() error {
	if o.ConfigFile == "" {
		return errors.Errorf("config file is required")
	}
	if o.Root == "" {
		return errors.Errorf("root is required")
	}
	switch o.CheckBackend {
	case BackendGit, BackendTree:
	default:
		return errors.Errorf("unknown check backend %q (want %s or %s)", o.CheckBackend, BackendGit, BackendTree)
	}
	if err := o.Layout.Validate(); err != nil {
		return errors.Errorf("validating layout: %w", err)
	}
	return nil
}
