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

// Package selector scores declarative document selectors against candidate
// documents. Providers register under a selector; for each document the
// caller ranks providers by score and picks the best. Scores are integers
// in [0, 10]: 10 for an exact clause match, 5 for a wildcard match, 0 for
// no match. A present-but-failing clause vetoes the whole selector.
package selector

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"go.lsp.dev/uri"
)

// MaxScore is the best possible match strength; array scoring
// short-circuits once any element reaches it.
const MaxScore = 10

// Document is the candidate a selector is scored against. Synchronized is
// true only for documents whose content is mirrored to the scoring
// caller's execution context.
type Document struct {
	URI          uri.URI
	LanguageID   string
	Synchronized bool
	Notebook     *NotebookInfo
}

// NotebookInfo is the notebook a cell document belongs to, if any.
type NotebookInfo struct {
	URI  uri.URI
	Type string
}

// Selector is a declarative match expression: a language id string
// (Language, with "*" as wildcard), a Filter, or a List of either.
type Selector interface {
	score(doc Document) int
}

// Score computes the match strength of sel against doc. It never fails:
// a nil or malformed selector simply scores 0.
func Score(sel Selector, doc Document) int {
	if sel == nil {
		return 0
	}
	return sel.score(doc)
}

// Language selects documents by exact language id, or any synchronized
// document when it is "*".
type Language string

func (l Language) score(doc Document) int {
	// Plain language-id strings never match documents that are not
	// synchronized to the caller.
	if !doc.Synchronized {
		return 0
	}
	if l == "*" {
		return 5
	}
	if string(l) == doc.LanguageID {
		return MaxScore
	}
	return 0
}

// List matches if any element matches; its score is the max over elements.
type List []Selector

func (s List) score(doc Document) int {
	best := 0
	for _, e := range s {
		v := Score(e, doc)
		if v == MaxScore {
			return v
		}
		if v > best {
			best = v
		}
	}
	return best
}

// Filter constrains several document axes at once. Every set field must
// match or the filter scores 0; unset fields do not constrain.
type Filter struct {
	Language string    `json:"language,omitempty"`
	Scheme   string    `json:"scheme,omitempty"`
	Pattern  *Pattern  `json:"pattern,omitempty"`
	Notebook *Notebook `json:"notebook,omitempty"`

	// HasAccessToAllModels lets the filter match documents that are not
	// synchronized to the caller.
	HasAccessToAllModels bool `json:"hasAccessToAllModels,omitempty"`

	// Exclusive marks the provider as the only one that should be asked.
	// Registries may consume it; the scorer does not.
	Exclusive bool `json:"exclusive,omitempty"`
}

func (f Filter) score(doc Document) int {
	if !doc.Synchronized && !f.HasAccessToAllModels {
		return 0
	}
	if f.Notebook != nil {
		// The notebook clause is a hard gate: without a notebook
		// association nothing else can save the filter.
		if doc.Notebook == nil {
			return 0
		}
		nb := scoreOne(f.Notebook.Scheme, f.Notebook.Type, f.Notebook.Pattern, doc.Notebook.URI, doc.Notebook.Type)
		if nb == 0 {
			return 0
		}
		if f.Scheme == "" && f.Language == "" && f.Pattern == nil {
			return nb
		}
		d := scoreOne(f.Scheme, f.Language, f.Pattern, doc.URI, doc.LanguageID)
		if d == 0 {
			return 0
		}
		if nb > d {
			return nb
		}
		return d
	}
	return scoreOne(f.Scheme, f.Language, f.Pattern, doc.URI, doc.LanguageID)
}

// scoreOne scores a single scheme/language/pattern clause against one
// URI/language pair. Each set field either raises the score or vetoes the
// clause to 0; evaluation order only decides which veto fires first.
func scoreOne(scheme, language string, pattern *Pattern, u uri.URI, candidateLanguage string) int {
	ret := 0
	if scheme != "" {
		if scheme == schemeOf(u) {
			ret = MaxScore
		} else if scheme == "*" {
			ret = 5
		} else {
			return 0
		}
	}
	if language != "" {
		if language == candidateLanguage {
			ret = MaxScore
		} else if language == "*" {
			if ret < 5 {
				ret = 5
			}
		} else {
			return 0
		}
	}
	if pattern != nil {
		if !pattern.Matches(fsPath(u)) {
			return 0
		}
		ret = MaxScore
	}
	return ret
}

// Pattern matches document paths: a bare glob matched against the full
// path, or a glob relative to a base directory.
type Pattern struct {
	Base string
	Glob string
}

// Matches reports whether the candidate filesystem path satisfies the
// pattern, by exact string equality or by glob match.
func (p *Pattern) Matches(path string) bool {
	if p == nil {
		return false
	}
	path = filepath.ToSlash(path)
	glob := p.Glob
	if p.Base != "" {
		base := filepath.ToSlash(filepath.Clean(p.Base))
		rel := strings.TrimPrefix(path, base)
		// A sibling like base+"other" shares the prefix but is not under
		// the base; only a separator (or nothing) may follow it.
		if rel == path || (rel != "" && rel[0] != '/') {
			return false
		}
		path = strings.TrimPrefix(rel, "/")
	}
	if path == glob {
		return true
	}
	ok, err := doublestar.Match(glob, path)
	return err == nil && ok
}

// Notebook constrains the notebook a cell document belongs to, by type id
// and optionally by the notebook document's scheme and path.
type Notebook struct {
	Type    string
	Scheme  string
	Pattern *Pattern
}

func schemeOf(u uri.URI) string {
	s := string(u)
	if i := strings.Index(s, ":"); i > 0 {
		return s[:i]
	}
	return ""
}

// fsPath extracts the path component of the URI. Path-less opaque URIs
// fall back to their opaque part so exact-equality patterns can still hit.
func fsPath(u uri.URI) string {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	if parsed.Path != "" {
		return parsed.Path
	}
	return parsed.Opaque
}
