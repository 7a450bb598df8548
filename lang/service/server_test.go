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

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/langcore/lang/langconf"
	"github.com/cloudwego/langcore/lang/token"
)

func newTestServer() *Server {
	conf := langconf.NewRegistry()
	conf.Register(&langconf.LanguageConfiguration{
		Language: "typescript",
		Brackets: []langconf.BracketPair{{Open: "(", Close: ")"}},
	})
	return NewServer(conf)
}

func call(t *testing.T, s *Server, method string, params interface{}) (interface{}, error) {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	req := &jsonrpc2.Request{Method: method, Params: (*json.RawMessage)(&raw)}
	return s.handle(context.Background(), nil, req)
}

func TestHandleScore(t *testing.T) {
	s := newTestServer()

	res, err := call(t, s, MethodScore, ScoreParams{
		Selector:     json.RawMessage(`{"language": "typescript", "scheme": "file"}`),
		URI:          "file:///work/main.ts",
		LanguageID:   "typescript",
		Synchronized: true,
	})
	require.NoError(t, err)
	assert.Equal(t, &ScoreResult{Score: 10}, res)

	res, err = call(t, s, MethodScore, ScoreParams{
		Selector:     json.RawMessage(`"rust"`),
		URI:          "file:///work/main.ts",
		LanguageID:   "typescript",
		Synchronized: true,
	})
	require.NoError(t, err)
	assert.Equal(t, &ScoreResult{Score: 0}, res)
}

func TestHandleScoreInvalidSelector(t *testing.T) {
	s := newTestServer()
	_, err := call(t, s, MethodScore, ScoreParams{Selector: json.RawMessage(`42`)})
	var rpcErr *jsonrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, int64(jsonrpc2.CodeInvalidParams), rpcErr.Code)
}

func TestHandleProcessLine(t *testing.T) {
	s := newTestServer()
	line := token.LineTokens{
		Text: `f("(x")`,
		Tokens: []token.Token{
			{EndOffset: 2, Type: token.TypeOther, Language: "typescript"},
			{EndOffset: 6, Type: token.TypeString, Language: "typescript"},
			{EndOffset: 7, Type: token.TypeOther, Language: "typescript"},
		},
	}

	res, err := call(t, s, MethodProcessLine, ProcessLineParams{Line: line})
	require.NoError(t, err)
	got := res.(*ProcessLineResult)
	assert.Equal(t, `f("x")`, got.ProcessedLine)
	require.Len(t, got.Tokens, 3)
	assert.Equal(t, 5, got.Tokens[1].EndOffset)

	indentation := "  "
	res, err = call(t, s, MethodProcessLine, ProcessLineParams{Line: line, NewIndentation: &indentation})
	require.NoError(t, err)
	got = res.(*ProcessLineResult)
	assert.Equal(t, `  f("x")`, got.ProcessedLine)
	assert.Empty(t, got.Tokens)
}

func TestHandleContext(t *testing.T) {
	s := newTestServer()
	pos := token.Position{Line: 1, Character: 2}
	res, err := call(t, s, MethodContext, ContextParams{
		Lines: []token.LineTokens{{
			Text:   `f(")")`,
			Tokens: []token.Token{{EndOffset: 6, Type: token.TypeOther, Language: "typescript"}},
		}},
		Range: token.Range{Start: pos, End: pos},
	})
	require.NoError(t, err)
	got := res.(*ContextResult)
	assert.Equal(t, `f(`, got.BeforeRange.Text)
	assert.Equal(t, `")")`, got.AfterRange.Text)
	assert.Empty(t, got.PreviousLine.Text)
}

func TestHandleUnknownMethod(t *testing.T) {
	s := newTestServer()
	_, err := call(t, s, "nope", struct{}{})
	var rpcErr *jsonrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, int64(jsonrpc2.CodeMethodNotFound), rpcErr.Code)
}
