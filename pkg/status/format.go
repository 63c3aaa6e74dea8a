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
)

// FileFormatter defines how build events and progress are formatted
type FileFormatter interface {
	// FormatEvent formats a single build event
	FormatEvent(ev Event) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatEvent formats a build event with emojis
func (f *DefaultFileFormatter) FormatEvent(ev Event) string {
	switch ev.Kind {
	case KindSeeded:
		return fmt.Sprintf("📥 Copied %s", ev.Path)
	case KindExcluded:
		return fmt.Sprintf("🗑️  Excluded %s", ev.Path)
	case KindSubstituted:
		return fmt.Sprintf("📝 Substituted %s (%d)", ev.Path, ev.Count)
	case KindMarked:
		return fmt.Sprintf("🏷️  Marked %s -> %s", ev.Path, ev.Target)
	case KindRenamed:
		return fmt.Sprintf("🔀 Renamed %s -> %s", ev.Path, ev.Target)
	case KindWrapped:
		return fmt.Sprintf("🚦 Wrapped %s -> %s", ev.Path, ev.Target)
	case KindOverlaid:
		return fmt.Sprintf("📌 Overlaid %s -> %s", ev.Path, ev.Target)
	case KindAdded:
		return fmt.Sprintf("✨ Added %s", ev.Target)
	case KindSkipped:
		return fmt.Sprintf("⏭️  Skipped %s (%s)", ev.Path, ev.Detail)
	default:
		return fmt.Sprintf("❔ %s", ev.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
