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

// pair is a parser-neutral ordered mapping entry
type pair struct {
	key   string
	value string
}

func newConfig(keywords, conditionals []pair) *Config {
	cfg := &Config{
		Keywords:     make([]Keyword, 0, len(keywords)),
		Conditionals: make([]Conditional, 0, len(conditionals)),
	}
	for _, p := range keywords {
		cfg.Keywords = append(cfg.Keywords, Keyword{Key: p.key, Literal: p.value})
	}
	for _, p := range conditionals {
		cfg.Conditionals = append(cfg.Conditionals, Conditional{Substring: p.key, Guard: p.value})
	}
	return cfg
}
