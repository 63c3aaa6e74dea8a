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

package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/buildtemplate/cmd/buildtemplate/commands"
	"github.com/walteh/buildtemplate/cmd/buildtemplate/opts"
	"github.com/walteh/buildtemplate/pkg/config"
)

// newRootOpts returns the options behind the root flags
func newRootOpts() *opts.RootOpts {
	return &opts.RootOpts{
		Layout: config.DefaultLayout(),
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "keywords_map.yml", "keyword map file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVar(&o.Root, "root", ".", "project root holding the source, template and static directories")
	cmd.Flags().BoolVar(&o.Check, "check", false, "fail if the rebuilt template differs from the committed one")
	cmd.Flags().StringVar(&o.CheckBackend, "check-backend", opts.BackendGit, "drift check backend: git or tree")
}

// newRootCmd builds the command tree writing user output to out
func newRootCmd(o *opts.RootOpts, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildtemplate",
		Short: "Build a parameterized template directory from a working project",
		Long: `buildtemplate rebuilds the template directory from the working project.
It will:
1. Copy the included paths into a fresh template directory
2. Replace keyword literals with {{ key }} placeholders in files and names
3. Wrap optional files in {% if guard %} names
4. Overlay the static template directory
5. With --check, fail if the result differs from the committed template`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(o.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Build(cmd.Context(), o, out)
		},
	}

	addRootFlags(cmd, o)
	cmd.SetOut(out)
	cmd.AddCommand(commands.NewVersionCmd())

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
