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
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
//
//	keyword_map = {
//	  project_name = "fractal_tasks_template"
//	}
//	conditional_patterns = {
//	  thresholding = "include_segmentation_task"
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: parsing HCL: %s", ErrConfigMalformed, diags.Error())
	}

	attrs, diags := hclFile.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: decoding HCL: %s", ErrConfigMalformed, diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var keywords, conditionals []pair
	var seenKeywords, seenConditionals bool
	for _, name := range names {
		attr := attrs[name]
		switch name {
		case KeyKeywordMap:
			pairs, err := hclPairs(evalCtx, attr)
			if err != nil {
				return nil, err
			}
			keywords, seenKeywords = pairs, true
		case KeyConditionalPatterns:
			pairs, err := hclPairs(evalCtx, attr)
			if err != nil {
				return nil, err
			}
			conditionals, seenConditionals = pairs, true
		default:
			return nil, errors.Errorf("%w: %s: unknown attribute %q", ErrConfigMalformed, attr.NameRange, name)
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

// hclPairs reads an object constructor in source order
func hclPairs(evalCtx *hcl.EvalContext, attr *hcl.Attribute) ([]pair, error) {
	items, diags := hcl.ExprMap(attr.Expr)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: %s must be an object: %s", ErrConfigMalformed, attr.Name, diags.Error())
	}

	out := make([]pair, 0, len(items))
	for _, item := range items {
		k, err := hclString(evalCtx, item.Key)
		if err != nil {
			return nil, errors.Errorf("%w: %s key: %v", ErrConfigMalformed, attr.Name, err)
		}
		v, err := hclString(evalCtx, item.Value)
		if err != nil {
			return nil, errors.Errorf("%w: %s.%s: %v", ErrConfigMalformed, attr.Name, k, err)
		}
		out = append(out, pair{key: k, value: v})
	}
	return out, nil
}

func hclString(evalCtx *hcl.EvalContext, expr hcl.Expression) (string, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", errors.New(diags.Error())
	}
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return "", errors.Errorf("expected a string, got %s", val.Type().FriendlyName())
	}
	return val.AsString(), nil
}
