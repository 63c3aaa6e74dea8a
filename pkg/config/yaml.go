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
	"context"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML. Mapping order is significant, so the
// document is walked as a yaml.Node instead of decoded into Go maps.
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("%w: parsing YAML: %v", ErrConfigMalformed, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Errorf("%w: top level must be a mapping", ErrConfigMalformed)
	}

	var keywords, conditionals []pair
	var seenKeywords, seenConditionals bool

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case KeyKeywordMap:
			pairs, err := yamlPairs(key.Value, value)
			if err != nil {
				return nil, err
			}
			keywords, seenKeywords = pairs, true
		case KeyConditionalPatterns:
			pairs, err := yamlPairs(key.Value, value)
			if err != nil {
				return nil, err
			}
			conditionals, seenConditionals = pairs, true
		default:
			return nil, errors.Errorf("%w: line %d: unknown key %q", ErrConfigMalformed, key.Line, key.Value)
		}
	}

	if !seenKeywords {
		return nil, errors.Errorf("%w: %s is required", ErrConfigMalformed, KeyKeywordMap)
	}
	if !seenConditionals {
		return nil, errors.Errorf("%w: %s is required", ErrConfigMalformed, KeyConditionalPatterns)
	}

	return newConfig(keywords, conditionals), nil
}

// yamlPairs flattens a mapping node into ordered pairs of scalars
func yamlPairs(name string, node *yaml.Node) ([]pair, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.Errorf("%w: line %d: %s must be a mapping", ErrConfigMalformed, node.Line, name)
	}

	out := make([]pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("%w: line %d: %s entries must be scalars", ErrConfigMalformed, k.Line, name)
		}
		out = append(out, pair{key: k.Value, value: v.Value})
	}
	return out, nil
}
