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

package selector

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// Parse decodes a selector from its declarative JSON manifest form:
// a bare language-id string, a filter object, or an array of either.
func Parse(data []byte) (Selector, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	switch data[0] {
	case '"':
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse selector string failed: %w", err)
		}
		return Language(s), nil
	case '[':
		var raws []json.RawMessage
		if err := sonic.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parse selector array failed: %w", err)
		}
		list := make(List, 0, len(raws))
		for _, raw := range raws {
			sel, err := Parse(raw)
			if err != nil {
				return nil, err
			}
			list = append(list, sel)
		}
		return list, nil
	case '{':
		var f Filter
		if err := sonic.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse selector filter failed: %w", err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("invalid selector json: %s", data)
}

// Marshal encodes a selector back to the same manifest shapes Parse reads.
func Marshal(sel Selector) ([]byte, error) {
	switch s := sel.(type) {
	case nil:
		return []byte("null"), nil
	case Language:
		return sonic.Marshal(string(s))
	case List:
		raws := make([]json.RawMessage, 0, len(s))
		for _, e := range s {
			raw, err := Marshal(e)
			if err != nil {
				return nil, err
			}
			raws = append(raws, raw)
		}
		return sonic.Marshal(raws)
	case Filter:
		return sonic.Marshal(s)
	case *Filter:
		return sonic.Marshal(*s)
	default:
		return nil, fmt.Errorf("unknown selector kind %T", sel)
	}
}

type patternJSON struct {
	Base    string `json:"base"`
	Pattern string `json:"pattern"`
}

// A pattern is either a bare glob string or a {base, pattern} object.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Base, p.Glob = "", s
		return nil
	}
	var obj patternJSON
	if err := sonic.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Base, p.Glob = obj.Base, obj.Pattern
	return nil
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	if p.Base == "" {
		return sonic.Marshal(p.Glob)
	}
	return sonic.Marshal(patternJSON{Base: p.Base, Pattern: p.Glob})
}

type notebookJSON struct {
	Type    string   `json:"notebookType"`
	Scheme  string   `json:"scheme,omitempty"`
	Pattern *Pattern `json:"pattern,omitempty"`
}

// A notebook clause is either a bare type-id string (scheme and pattern
// unset) or a {notebookType, scheme, pattern} object.
func (n *Notebook) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Notebook{Type: s}
		return nil
	}
	var obj notebookJSON
	if err := sonic.Unmarshal(data, &obj); err != nil {
		return err
	}
	*n = Notebook{Type: obj.Type, Scheme: obj.Scheme, Pattern: obj.Pattern}
	return nil
}

func (n Notebook) MarshalJSON() ([]byte, error) {
	if n.Scheme == "" && n.Pattern == nil {
		return sonic.Marshal(n.Type)
	}
	return sonic.Marshal(notebookJSON{Type: n.Type, Scheme: n.Scheme, Pattern: n.Pattern})
}
