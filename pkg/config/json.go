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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".json")
}

// 📝 Parse parses the config from JSON bytes. Objects are read token by
// token because decoding into a map would lose key order.
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var keywords, conditionals []pair
	var seenKeywords, seenConditionals bool
	for dec.More() {
		name, err := jsonKey(dec)
		if err != nil {
			return nil, err
		}
		switch name {
		case KeyKeywordMap:
			if keywords, err = jsonPairs(dec, name); err != nil {
				return nil, err
			}
			seenKeywords = true
		case KeyConditionalPatterns:
			if conditionals, err = jsonPairs(dec, name); err != nil {
				return nil, err
			}
			seenConditionals = true
		default:
			return nil, errors.Errorf("%w: unknown key %q", ErrConfigMalformed, name)
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("%w: unexpected data after top-level object", ErrConfigMalformed)
	}

	if !seenKeywords {
		return nil, errors.Errorf("%w: %s is required", ErrConfigMalformed, KeyKeywordMap)
	}
	if !seenConditionals {
		return nil, errors.Errorf("%w: %s is required", ErrConfigMalformed, KeyConditionalPatterns)
	}

	return newConfig(keywords, conditionals), nil
}

func jsonPairs(dec *json.Decoder, name string) ([]pair, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, errors.Errorf("%s: %w", name, err)
	}

	var out []pair
	for dec.More() {
		k, err := jsonKey(dec)
		if err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("%w: parsing JSON: %v", ErrConfigMalformed, err)
		}
		v, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("%w: %s.%s must be a string", ErrConfigMalformed, name, k)
		}
		out = append(out, pair{key: k, value: v})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, errors.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func jsonKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", errors.Errorf("%w: parsing JSON: %v", ErrConfigMalformed, err)
	}
	k, ok := tok.(string)
	if !ok {
		return "", errors.Errorf("%w: expected an object key, got %v", ErrConfigMalformed, tok)
	}
	return k, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.Errorf("%w: parsing JSON: %v", ErrConfigMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.Errorf("%w: expected %q, got %v", ErrConfigMalformed, want, tok)
	}
	return nil
}
