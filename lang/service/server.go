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

// Package service exposes the scoring and line-processing engines over
// JSON-RPC 2.0 for editor hosts that keep them out of process.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/uri"

	"github.com/cloudwego/langcore/lang/indent"
	"github.com/cloudwego/langcore/lang/langconf"
	"github.com/cloudwego/langcore/lang/log"
	"github.com/cloudwego/langcore/lang/selector"
	"github.com/cloudwego/langcore/lang/token"
)

const (
	MethodScore       = "selector/score"
	MethodProcessLine = "indent/processLine"
	MethodContext     = "indent/context"
)

type ScoreParams struct {
	Selector     json.RawMessage `json:"selector"`
	URI          string          `json:"uri"`
	LanguageID   string          `json:"languageId"`
	Synchronized bool            `json:"synchronized"`
	Notebook     *NotebookParams `json:"notebook,omitempty"`
}

type NotebookParams struct {
	URI  string `json:"uri"`
	Type string `json:"notebookType"`
}

type ScoreResult struct {
	Score int `json:"score"`
}

type ProcessLineParams struct {
	Line token.LineTokens `json:"line"`
	// NewIndentation, when present, replaces the processed line's leading
	// whitespace; the result then carries no token table.
	NewIndentation *string `json:"newIndentation,omitempty"`
}

type ProcessLineResult struct {
	ProcessedLine string        `json:"processedLine"`
	Tokens        []token.Token `json:"tokens,omitempty"`
}

type ContextParams struct {
	Lines []token.LineTokens `json:"lines"`
	Range token.Range        `json:"range"`
}

type ContextResult struct {
	BeforeRange  token.LineTokens `json:"beforeRange"`
	AfterRange   token.LineTokens `json:"afterRange"`
	PreviousLine token.LineTokens `json:"previousLine"`
}

// Server answers scoring and processing requests. It is stateless apart
// from the shared language-configuration registry.
type Server struct {
	conf *langconf.Registry
}

func NewServer(conf *langconf.Registry) *Server {
	return &Server{conf: conf}
}

// ServeStdio serves one JSON-RPC connection over stdin/stdout until the
// peer disconnects or ctx is done.
func (s *Server) ServeStdio(ctx context.Context) error {
	stream := jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))
	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	}
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	log.Debug("handle method: %s", req.Method)
	if req.Params == nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	switch req.Method {
	case MethodScore:
		var p ScoreParams
		if err := sonic.Unmarshal(*req.Params, &p); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
		}
		return s.score(p)
	case MethodProcessLine:
		var p ProcessLineParams
		if err := sonic.Unmarshal(*req.Params, &p); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
		}
		return s.processLine(p), nil
	case MethodContext:
		var p ContextParams
		if err := sonic.Unmarshal(*req.Params, &p); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
		}
		return s.context(p), nil
	default:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method),
		}
	}
}

func (s *Server) score(p ScoreParams) (*ScoreResult, error) {
	sel, err := selector.Parse(p.Selector)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	doc := selector.Document{
		URI:          uri.URI(p.URI),
		LanguageID:   p.LanguageID,
		Synchronized: p.Synchronized,
	}
	if p.Notebook != nil {
		doc.Notebook = &selector.NotebookInfo{URI: uri.URI(p.Notebook.URI), Type: p.Notebook.Type}
	}
	return &ScoreResult{Score: selector.Score(sel, doc)}, nil
}

func (s *Server) processLine(p ProcessLineParams) *ProcessLineResult {
	proc := indent.NewLineProcessor(indent.LinesModel{p.Line}, s.conf)
	if p.NewIndentation != nil {
		return &ProcessLineResult{ProcessedLine: proc.ProcessedLineWithIndentation(1, *p.NewIndentation)}
	}
	processed := proc.ProcessLineTokens(p.Line)
	return &ProcessLineResult{ProcessedLine: processed.Text, Tokens: processed.Tokens}
}

func (s *Server) context(p ContextParams) *ContextResult {
	proc := indent.NewLineProcessor(indent.LinesModel(p.Lines), s.conf)
	ctx := proc.ProcessedContextAroundRange(p.Range)
	return &ContextResult{
		BeforeRange:  ctx.BeforeRange,
		AfterRange:   ctx.AfterRange,
		PreviousLine: ctx.PreviousLine,
	}
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
