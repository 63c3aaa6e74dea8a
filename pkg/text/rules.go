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

package text

import (
	"fmt"
	"strings"

	"github.com/walteh/buildtemplate/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RuleKind tags the variant of a Rule
type RuleKind int

const (
	KindLiteral       RuleKind = iota // Replace a literal with another literal
	KindLineUncomment                 // Strip a comment marker to re-enable a line
)

// String returns a string representation of RuleKind
func (k RuleKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindLineUncomment:
		return "uncomment"
	default:
		return "unknown"
	}
}

// 🔄 Rule is a single content transformation
type Rule interface {
	// Kind reports the variant of the rule
	Kind() RuleKind
	// Apply returns the transformed content and the number of matches
	Apply(content string) (string, int)
	// Validate rejects rules that would match everywhere
	Validate() error
	fmt.Stringer
}

// Literal replaces every occurrence of Search with Replace
type Literal struct {
	Search  string
	Replace string
}

func (r Literal) Kind() RuleKind { return KindLiteral }

func (r Literal) Apply(content string) (string, int) {
	if r.Search == "" {
		return content, 0
	}
	n := strings.Count(content, r.Search)
	if n == 0 {
		return content, 0
	}
	return strings.ReplaceAll(content, r.Search, r.Replace), n
}

func (r Literal) Validate() error {
	if r.Search == "" {
		return errors.Errorf("literal search text is required")
	}
	return nil
}

func (r Literal) String() string {
	return fmt.Sprintf("%q -> %q", r.Search, r.Replace)
}

// LineUncomment deletes every occurrence of Marker, turning
// "# --- #enabled: true" into "enabled: true".
type LineUncomment struct {
	Marker string
}

func (r LineUncomment) Kind() RuleKind { return KindLineUncomment }

func (r LineUncomment) Apply(content string) (string, int) {
	if r.Marker == "" {
		return content, 0
	}
	n := strings.Count(content, r.Marker)
	if n == 0 {
		return content, 0
	}
	return strings.ReplaceAll(content, r.Marker, ""), n
}

func (r LineUncomment) Validate() error {
	if r.Marker == "" {
		return errors.Errorf("uncomment marker is required")
	}
	return nil
}

func (r LineUncomment) String() string {
	return fmt.Sprintf("uncomment %q", r.Marker)
}

// UncommentMarker re-enables lines that must stay commented in the source
// project but be live in the generated template.
const UncommentMarker = "# --- #"

// KeywordRules builds one literal -> placeholder rule per keyword, in order.
func KeywordRules(cfg *config.Config) []Rule {
	rules := make([]Rule, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		rules = append(rules, Literal{Search: kw.Literal, Replace: config.Placeholder(kw.Key)})
	}
	return rules
}

// FixupRules returns the fixed corrections applied after the keyword pass.
// GitHub Actions expressions share the placeholder syntax, so they are
// escaped to survive template rendering.
func FixupRules() []Rule {
	return []Rule{
		Literal{Search: "{{ matrix.python-version }}", Replace: escapeExpression("matrix.python-version")},
		Literal{Search: "{{ matrix.os }}", Replace: escapeExpression("matrix.os")},
		LineUncomment{Marker: UncommentMarker},
	}
}

func escapeExpression(expr string) string {
	return "{{ '{{' }} " + expr + " {{ '}}' }}"
}
