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
Package config loads the keyword and conditional maps that drive a template
build, and describes the fixed directory layout the build operates on.

	            +-------------+
	            |   Config    |
	            | (ordered)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Reads keyword_map (placeholder key -> literal) in file order
- Reads conditional_patterns (file name substring -> guard expression)
- Rejects missing, malformed or ambiguous maps before any file is touched

🔄 Flow:
1. Picks a parser by file extension
2. Walks the document keeping mapping order
3. Validates keys, literals and duplicates
4. Warns about placeholders that contain another literal

📝 Order matters: literals are substituted in the order they are listed, so a
literal that is a substring of another must come after it.

🔍 Example:

	cfg, err := config.Load(ctx, "keywords_map.yml")
	if errors.Is(err, config.ErrConfigNotFound) {
		return err
	}
	for _, kw := range cfg.Keywords {
		fmt.Println(kw.Literal, "->", config.Placeholder(kw.Key))
	}
*/
package config
