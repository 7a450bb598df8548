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
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lsp.dev/uri"
)

var tsDoc = Document{
	URI:          uri.URI("file:///work/src/main.ts"),
	LanguageID:   "typescript",
	Synchronized: true,
}

func TestScoreLanguageWildcard(t *testing.T) {
	assert.Equal(t, 5, Score(Language("*"), tsDoc))

	unsynced := tsDoc
	unsynced.Synchronized = false
	assert.Equal(t, 0, Score(Language("*"), unsynced))
}

func TestScoreLanguageExact(t *testing.T) {
	assert.Equal(t, 10, Score(Language("typescript"), tsDoc))
	assert.Equal(t, 0, Score(Language("rust"), tsDoc))
	assert.Equal(t, 0, Score(Language(""), tsDoc))

	unsynced := tsDoc
	unsynced.Synchronized = false
	assert.Equal(t, 0, Score(Language("typescript"), unsynced))
}

func TestScoreNil(t *testing.T) {
	assert.Equal(t, 0, Score(nil, tsDoc))
}

// mustNotScore fails the surrounding test when it is ever evaluated.
type mustNotScore struct {
	t *testing.T
}

func (m mustNotScore) score(doc Document) int {
	m.t.Fatal("selector evaluated after a max score was already found")
	return 0
}

func TestScoreList(t *testing.T) {
	assert.Equal(t, 0, Score(List{}, tsDoc))
	assert.Equal(t, 5, Score(List{Language("rust"), Language("*")}, tsDoc))
	assert.Equal(t, 10, Score(List{Language("*"), Language("typescript")}, tsDoc))

	// a max-scoring element short-circuits the rest of the array
	assert.Equal(t, 10, Score(List{Language("typescript"), mustNotScore{t}}, tsDoc))
}

func TestScoreFilterSchemeVeto(t *testing.T) {
	httpDoc := tsDoc
	httpDoc.URI = uri.URI("http://example.com/work/src/main.rs")
	httpDoc.LanguageID = "rust"

	// language matches but the scheme veto fires first
	assert.Equal(t, 0, Score(Filter{Scheme: "file", Language: "rust"}, httpDoc))
	assert.Equal(t, 10, Score(Filter{Scheme: "http", Language: "rust"}, httpDoc))
	assert.Equal(t, 5, Score(Filter{Scheme: "*"}, httpDoc))
}

func TestScoreFilterLanguage(t *testing.T) {
	assert.Equal(t, 10, Score(Filter{Language: "typescript"}, tsDoc))
	assert.Equal(t, 5, Score(Filter{Language: "*"}, tsDoc))
	assert.Equal(t, 0, Score(Filter{Language: "rust"}, tsDoc))

	// exact language overwrites a wildcard scheme's 5
	assert.Equal(t, 10, Score(Filter{Scheme: "*", Language: "typescript"}, tsDoc))
	// wildcard language never lowers an exact scheme's 10
	assert.Equal(t, 10, Score(Filter{Scheme: "file", Language: "*"}, tsDoc))
}

func TestScoreFilterEmpty(t *testing.T) {
	assert.Equal(t, 0, Score(Filter{}, tsDoc))
}

func TestScoreFilterHasAccessToAllModels(t *testing.T) {
	unsynced := tsDoc
	unsynced.Synchronized = false

	assert.Equal(t, 0, Score(Filter{Language: "*"}, unsynced))
	assert.Equal(t, 5, Score(Filter{Language: "*", HasAccessToAllModels: true}, unsynced))
	assert.Equal(t, 10, Score(Filter{Language: "typescript", HasAccessToAllModels: true}, unsynced))
}

func TestScoreFilterPattern(t *testing.T) {
	assert.Equal(t, 10, Score(Filter{Pattern: &Pattern{Glob: "/work/**/*.ts"}}, tsDoc))
	assert.Equal(t, 0, Score(Filter{Pattern: &Pattern{Glob: "/other/**"}}, tsDoc))

	// exact path equality matches without glob semantics
	assert.Equal(t, 10, Score(Filter{Pattern: &Pattern{Glob: "/work/src/main.ts"}}, tsDoc))

	// relative pattern: candidate must live under base
	assert.Equal(t, 10, Score(Filter{Pattern: &Pattern{Base: "/work", Glob: "src/*.ts"}}, tsDoc))
	assert.Equal(t, 0, Score(Filter{Pattern: &Pattern{Base: "/elsewhere", Glob: "src/*.ts"}}, tsDoc))

	// a sibling directory that merely string-prefixes the base is not
	// under it
	assert.Equal(t, 0, Score(Filter{Pattern: &Pattern{Base: "/wo", Glob: "**/*.ts"}}, tsDoc))

	// pattern mismatch vetoes an otherwise-matching language
	assert.Equal(t, 0, Score(Filter{Language: "typescript", Pattern: &Pattern{Glob: "/other/**"}}, tsDoc))
}

func TestScoreFilterNotebook(t *testing.T) {
	nbDoc := tsDoc
	nbDoc.LanguageID = "python"
	nbDoc.Notebook = &NotebookInfo{
		URI:  uri.URI("file:///work/nb/analysis.ipynb"),
		Type: "jupyter-notebook",
	}

	jupyter := Filter{Notebook: &Notebook{Type: "jupyter-notebook"}}
	assert.Equal(t, 10, Score(jupyter, nbDoc))

	// notebook clause is a hard gate: no notebook info means 0, even when
	// document-level fields would match
	assert.Equal(t, 0, Score(jupyter, tsDoc))
	withLang := Filter{Language: "typescript", Notebook: &Notebook{Type: "jupyter-notebook"}}
	assert.Equal(t, 0, Score(withLang, tsDoc))

	// mismatching notebook type
	assert.Equal(t, 0, Score(Filter{Notebook: &Notebook{Type: "kusto"}}, nbDoc))

	// notebook scheme and pattern score like any other clause
	assert.Equal(t, 10, Score(Filter{Notebook: &Notebook{Scheme: "file"}}, nbDoc))
	assert.Equal(t, 5, Score(Filter{Notebook: &Notebook{Scheme: "*"}}, nbDoc))
	assert.Equal(t, 0, Score(Filter{Notebook: &Notebook{Scheme: "vscode-vfs"}}, nbDoc))
}

func TestScoreFilterNotebookAndDocument(t *testing.T) {
	nbDoc := tsDoc
	nbDoc.LanguageID = "python"
	nbDoc.Notebook = &NotebookInfo{
		URI:  uri.URI("file:///work/nb/analysis.ipynb"),
		Type: "jupyter-notebook",
	}

	// both sub-scores nonzero: result is their max
	both := Filter{Language: "python", Notebook: &Notebook{Scheme: "*"}}
	assert.Equal(t, 10, Score(both, nbDoc))
	wildBoth := Filter{Language: "*", Notebook: &Notebook{Scheme: "*"}}
	assert.Equal(t, 5, Score(wildBoth, nbDoc))

	// a zero document sub-score zeroes the whole filter even though the
	// notebook clause matched
	assert.Equal(t, 0, Score(Filter{Language: "rust", Notebook: &Notebook{Type: "jupyter-notebook"}}, nbDoc))
}

func TestPatternMatches(t *testing.T) {
	assert.False(t, (*Pattern)(nil).Matches("/a/b.ts"))
	assert.True(t, (&Pattern{Glob: "/a/*.ts"}).Matches("/a/b.ts"))
	assert.False(t, (&Pattern{Glob: "/a/*.ts"}).Matches("/a/b/c.ts"))
	assert.True(t, (&Pattern{Glob: "/a/**/*.ts"}).Matches("/a/b/c.ts"))
	assert.True(t, (&Pattern{Base: "/a/", Glob: "*.ts"}).Matches("/a/b.ts"))
	assert.False(t, (&Pattern{Base: "/a", Glob: "**/*.ts"}).Matches("/another/b.ts"))
	assert.True(t, (&Pattern{Base: "/a", Glob: ""}).Matches("/a"))
}
