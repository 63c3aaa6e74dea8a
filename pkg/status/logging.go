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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // Base width for the path
	kindWidth  = 12 // Width for the event kind
)

// 🎯 FormatLine formats an event as an aligned console line
func FormatLine(ev Event) string {
	var prefix string
	switch ev.Kind {
	case KindSeeded, KindAdded:
		prefix = color.GreenString("✓")
	case KindSubstituted, KindMarked, KindRenamed, KindWrapped, KindOverlaid:
		prefix = color.YellowString("⟳")
	case KindExcluded:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	path := ev.Path
	if ev.Target != "" && ev.Target != ev.Path {
		path = ev.Target
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	kindPart := fmt.Sprintf("%-*s", kindWidth, ev.Kind.String())

	detail := ev.Detail
	if ev.Count > 0 {
		detail = strings.TrimSpace(fmt.Sprintf("%s x%d", detail, ev.Count))
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		kindPart,
		detail,
	), " ")
}
