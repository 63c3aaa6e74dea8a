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

/*
Package operation implements the template build pipeline.

	+--------+   +------------+   +------------+   +-------------+   +-------+
	|  seed  |-->| substitute |-->| templatize |-->| conditional |-->| merge |
	+--------+   +------------+   +------------+   +-------------+   +-------+
	 copy and     literals to      mark changed     guard file        static
	 exclude      placeholders     files, rename    names             overlay

🎯 Purpose:
- Rebuilds the template directory from scratch on every run
- Turns literal project names into {{ key }} placeholders in content and names
- Wraps optional files in {% if guard %} names
- Lets a flat static directory override or extend the result

🔄 Flow:
Every stage is an Operation sharing one Options value. The Runner executes
them strictly in order and stops at the first error; the tree may then be
half built and the next run starts over from the seed stage.

⚡ Invariants:
- Two builds from the same source produce byte-identical trees
- The rename loop stops on a clean scan or fails with ErrNoConvergence
- Nothing named in the exclude list survives the seed stage

🔍 Example:

	err := operation.Build(ctx, operation.Options{
		FS:     osfs.New("."),
		Layout: config.DefaultLayout(),
		Config: cfg,
	})
*/
package operation
