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
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist
	ErrConfigNotFound = errors.Base("config not found")
	// ErrConfigMalformed is returned when required keys are absent or invalid
	ErrConfigMalformed = errors.Base("config malformed")
)

const (
	// KeyKeywordMap is the top-level key holding placeholder -> literal pairs
	KeyKeywordMap = "keyword_map"
	// KeyConditionalPatterns is the top-level key holding substring -> guard pairs
	KeyConditionalPatterns = "conditional_patterns"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Keyword maps a placeholder key to the literal it replaces
type Keyword struct {
	Key     string // Placeholder name, rendered as {{ Key }}
	Literal string // Literal text searched in file contents and names
}

// 🚦 Conditional wraps matching files in an inclusion guard
type Conditional struct {
	Substring string // Matched against file base names
	Guard     string // Opaque guard expression, written verbatim
}

// 📚 Config holds the substitution and conditional maps, in file order
type Config struct {
	Keywords     []Keyword
	Conditionals []Conditional
}

// Placeholder renders the template placeholder for key.
func Placeholder(key string) string {
	return "{{ " + key + " }}"
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%w: no parser found for file: %s", ErrConfigMalformed, path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	for _, o := range cfg.Overlaps() {
		logger.Warn().
			Str("key", o.Key).
			Str("literal", o.Literal).
			Msg("placeholder contains a substitution literal; renames may not converge")
	}

	logger.Debug().
		Int("keywords", len(cfg.Keywords)).
		Int("conditionals", len(cfg.Conditionals)).
		Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	keys := make(map[string]struct{}, len(cfg.Keywords))
	for i, kw := range cfg.Keywords {
		if kw.Key == "" {
			return errors.Errorf("%w: %s[%d]: key is required", ErrConfigMalformed, KeyKeywordMap, i)
		}
		if kw.Literal == "" {
			return errors.Errorf("%w: %s.%s: literal must not be empty", ErrConfigMalformed, KeyKeywordMap, kw.Key)
		}
		if _, ok := keys[kw.Key]; ok {
			return errors.Errorf("%w: %s: duplicate key %q", ErrConfigMalformed, KeyKeywordMap, kw.Key)
		}
		keys[kw.Key] = struct{}{}
	}

	subs := make(map[string]struct{}, len(cfg.Conditionals))
	for i, c := range cfg.Conditionals {
		if c.Substring == "" {
			return errors.Errorf("%w: %s[%d]: pattern must not be empty", ErrConfigMalformed, KeyConditionalPatterns, i)
		}
		if strings.TrimSpace(c.Guard) == "" {
			return errors.Errorf("%w: %s.%s: guard is required", ErrConfigMalformed, KeyConditionalPatterns, c.Substring)
		}
		if _, ok := subs[c.Substring]; ok {
			return errors.Errorf("%w: %s: duplicate pattern %q", ErrConfigMalformed, KeyConditionalPatterns, c.Substring)
		}
		subs[c.Substring] = struct{}{}
	}

	return nil
}

// Overlaps returns every keyword whose rendered placeholder contains a
// literal of the map. Renaming such a name never reaches a fixed point.
func (cfg *Config) Overlaps() []Keyword {
	var out []Keyword
	for _, kw := range cfg.Keywords {
		rendered := Placeholder(kw.Key)
		for _, other := range cfg.Keywords {
			if strings.Contains(rendered, other.Literal) {
				out = append(out, kw)
				break
			}
		}
	}
	return out
}

// 📝 String returns a short description of the config
func (cfg *Config) String() string {
	keys := make([]string, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		keys = append(keys, kw.Key)
	}
	return "keywords[" + strings.Join(keys, ",") + "]"
}
