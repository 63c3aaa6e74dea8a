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
	"context"
	"io"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// ErrNotText is returned for content that is not valid UTF-8
var ErrNotText = errors.Base("content is not valid UTF-8 text")

// SimpleTextReplacer implements TextReplacer using byte-exact string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	// binary files are not special-cased; they fail like any undecodable text
	if !utf8.Valid(originalContent) {
		return nil, errors.WithStack(ErrNotText)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		newContent, n := rule.Apply(currentContent)
		if n > 0 {
			result.WasModified = true
			result.ReplacementCount += n
		}
		currentContent = newContent
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule == nil {
			return errors.Errorf("rule %d: rule is nil", i)
		}
		if err := rule.Validate(); err != nil {
			return errors.Errorf("rule %d (%s): %w", i, rule.Kind(), err)
		}
	}
	return nil
}
