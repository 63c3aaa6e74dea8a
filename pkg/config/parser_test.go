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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	parsers = nil

	mockParser := &struct {
		Parser
		canParse bool
	}{
		canParse: true,
	}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: "keywords_map.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "keywords_map.yml", want: &YAMLParser{}},
		{name: "hcl_file", filename: "keywords_map.hcl", want: &HCLParser{}},
		{name: "json_file", filename: "keywords_map.json", want: &JSONParser{}},
		{name: "unknown_extension", filename: "keywords_map.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(l *Layout)
		errContains string
	}{
		{name: "default_is_valid", mutate: func(l *Layout) {}},
		{
			name:        "absolute_template_dir",
			mutate:      func(l *Layout) { l.TemplateDir = "/tmp/template" },
			errContains: "must be relative",
		},
		{
			name:        "template_dir_is_root",
			mutate:      func(l *Layout) { l.TemplateDir = "./" },
			errContains: "must not be the root",
		},
		{
			name:        "escaping_include",
			mutate:      func(l *Layout) { l.Include = append(l.Include, "../secrets") },
			errContains: "escapes the root",
		},
		{
			name:        "bad_suffix",
			mutate:      func(l *Layout) { l.TemplateSuffix = "jinja" },
			errContains: "must start with a dot",
		},
		{
			name:        "bad_pattern",
			mutate:      func(l *Layout) { l.IgnorePatterns = []string{"[abc"} },
			errContains: "is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			tt.mutate(&l)
			err := l.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
