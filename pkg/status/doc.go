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
Package status tracks what a template build did to the destination tree.

	            +-------------+
	            |   Report    |
	            |  (events)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+           +------+-----+
	| ChangeSet  |           | Formatting |
	| (changed)  |           | (UI/UX)    |
	+------------+           +------------+

🎯 Purpose:
- Keeps the ordered set of files whose content was rewritten
- Records one Event per copy, rewrite, rename, wrap and overlay
- Summarises a run as a table of per-kind totals

The ChangeSet drives the template-suffix pass: every path in it holds
placeholder syntax and gets the suffix appended.
*/
package status
