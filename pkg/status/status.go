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
	"context"
	"strconv"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 EventKind is what happened to a path during a build
type EventKind int

const (
	KindUnknown     EventKind = iota
	KindSeeded                // Copied from the source tree
	KindExcluded              // Removed by the exclude list
	KindSubstituted           // Content rewritten with placeholders
	KindMarked                // Template suffix appended
	KindRenamed               // Name rewritten with a placeholder
	KindWrapped               // Name wrapped in a conditional guard
	KindOverlaid              // Replaced by a static overlay file
	KindAdded                 // Static overlay file added at the root
	KindSkipped               // Missing source, nothing done
)

// kinds lists every reportable kind in display order
var kinds = []EventKind{
	KindSeeded,
	KindExcluded,
	KindSubstituted,
	KindMarked,
	KindRenamed,
	KindWrapped,
	KindOverlaid,
	KindAdded,
	KindSkipped,
}

// String returns a string representation of EventKind
func (k EventKind) String() string {
	switch k {
	case KindSeeded:
		return "seeded"
	case KindExcluded:
		return "excluded"
	case KindSubstituted:
		return "substituted"
	case KindMarked:
		return "marked"
	case KindRenamed:
		return "renamed"
	case KindWrapped:
		return "wrapped"
	case KindOverlaid:
		return "overlaid"
	case KindAdded:
		return "added"
	case KindSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📄 Event records one change to the destination tree
type Event struct {
	Kind   EventKind
	Path   string // Path the event applies to
	Target string // New path for renames and overlays
	Detail string // Free-form context (rule, guard, reason)
	Count  int    // Number of replacements, when relevant
}

// 🔧 Report collects the events of one build
type Report struct {
	formatter FileFormatter

	mu     sync.Mutex
	events []Event
}

// 🏭 NewReport creates an empty report
func NewReport(formatter FileFormatter) *Report {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Report{formatter: formatter}
}

// Record appends ev and logs it at debug level
func (r *Report) Record(ctx context.Context, ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Str("kind", ev.Kind.String()).
		Str("path", ev.Path).
		Str("target", ev.Target).
		Int("count", ev.Count).
		Msg(r.formatter.FormatEvent(ev))
}

// Events returns a copy of the recorded events
func (r *Report) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Counts returns the number of events per kind
func (r *Report) Counts() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[EventKind]int)
	for _, ev := range r.events {
		counts[ev.Kind]++
	}
	return counts
}

// Table renders the per-kind totals as a table
func (r *Report) Table() (string, error) {
	counts := r.Counts()

	data := pterm.TableData{{"change", "paths"}}
	for _, k := range kinds {
		if counts[k] == 0 {
			continue
		}
		data = append(data, []string{k.String(), strconv.Itoa(counts[k])})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary table: %w", err)
	}
	return out, nil
}

// 🗂️ ChangeSet is an ordered set of paths without duplicates
type ChangeSet struct {
	order []string
	seen  map[string]struct{}
}

// NewChangeSet creates an empty ChangeSet
func NewChangeSet() *ChangeSet {
	return &ChangeSet{seen: make(map[string]struct{})}
}

// Add inserts path and reports whether it was new
func (c *ChangeSet) Add(path string) bool {
	if _, ok := c.seen[path]; ok {
		return false
	}
	c.seen[path] = struct{}{}
	c.order = append(c.order, path)
	return true
}

// Paths returns the paths in insertion order
func (c *ChangeSet) Paths() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
