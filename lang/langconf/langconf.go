// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package langconf holds per-language editing configuration: bracket pairs
// and indentation rules, as contributed by language extensions.
package langconf

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bytedance/sonic"
)

// BracketPair is one open/close bracket couple, e.g. {"(", ")"}.
type BracketPair struct {
	Open  string
	Close string
}

// Configuration files carry bracket pairs as two-element arrays,
// ["(", ")"], so the pair (un)marshals from/to that shape.
func (b *BracketPair) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := sonic.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("bracket pair must have exactly 2 elements, got %d", len(pair))
	}
	b.Open, b.Close = pair[0], pair[1]
	return nil
}

func (b BracketPair) MarshalJSON() ([]byte, error) {
	return sonic.Marshal([]string{b.Open, b.Close})
}

// IndentationRules are the four line patterns the indent engine evaluates
// against processed lines. All fields are optional regex sources.
type IndentationRules struct {
	IncreaseIndentPattern string `json:"increaseIndentPattern,omitempty"`
	DecreaseIndentPattern string `json:"decreaseIndentPattern,omitempty"`
	IndentNextLinePattern string `json:"indentNextLinePattern,omitempty"`
	UnIndentedLinePattern string `json:"unIndentedLinePattern,omitempty"`
}

// LanguageConfiguration is the editing configuration one language
// contributes.
type LanguageConfiguration struct {
	Language    string            `json:"language"`
	Brackets    []BracketPair     `json:"brackets,omitempty"`
	Indentation *IndentationRules `json:"indentationRules,omitempty"`
}

// BracketStrings flattens the configured pairs into the ordered list of
// open-bracket strings followed by close-bracket strings. Duplicates are
// kept; the consumer strips every occurrence of every entry anyway.
func (c *LanguageConfiguration) BracketStrings() []string {
	if c == nil || len(c.Brackets) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(c.Brackets))
	for _, p := range c.Brackets {
		out = append(out, p.Open)
	}
	for _, p := range c.Brackets {
		out = append(out, p.Close)
	}
	return out
}

// Registry maps language ids to their configuration. Safe for concurrent
// use; lookups for unknown languages return nil, which consumers treat as
// "no configuration" rather than an error.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]*LanguageConfiguration
}

func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]*LanguageConfiguration)}
}

// Register installs (or replaces) the configuration for conf.Language.
func (r *Registry) Register(conf *LanguageConfiguration) {
	r.mu.Lock()
	r.configs[conf.Language] = conf
	r.mu.Unlock()
}

func (r *Registry) Get(language string) *LanguageConfiguration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configs[language]
}

func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]string, 0, len(r.configs))
	for l := range r.configs {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
